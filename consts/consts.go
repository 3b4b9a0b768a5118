package consts

const (
	VERSION = "0.3.1"
	NAME    = "distil"

	ConfigFileName = "distil.toml"
)

var (
	// Debug enables logger output. Set by -v.
	Debug = false
)
