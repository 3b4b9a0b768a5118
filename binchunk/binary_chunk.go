package binchunk

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

const (
	TAG_NIL     = 0x00
	TAG_BOOLEAN = 0x01
	TAG_NUMBER  = 0x03
	TAG_STRING  = 0x04

	LUA_SIGNATURE   = "\x1bLua"
	LUAC_VERSION    = 0x51
	LUAC_FORMAT     = 0
	LUAC_HEADERSIZE = 12

	BIG_ENDIAN    = 0
	LITTLE_ENDIAN = 1
)

// Config is threaded by value through every recursive read.
type Config struct {
	// StripDebugging drops line positions, locals and upvalue names from
	// the tree. They are still read.
	StripDebugging bool `toml:"strip-debugging"`
	// UseInstructionObjects emits {op,A,B,C} objects instead of flat
	// 4-tuples.
	UseInstructionObjects bool `toml:"instruction-objects"`
}

type Result struct {
	Header Header
	Main   *Chunk
	Config Config
	// Consumed is the cursor position after the main function.
	Consumed int
}

func IsBinaryChunk(data []byte) bool {
	return bytes.HasPrefix(data, []byte(LUA_SIGNATURE))
}

// Undump decodes a whole Lua 5.1 chunk file. It is all or nothing: on
// error no tree is returned.
func Undump(data []byte, cfg Config) (*Result, error) {
	r := newReader(data)
	h, err := readHeader(r)
	if err != nil {
		return nil, &DecodeError{Pos: r.pos, What: "header", Err: err}
	}

	main, err := readChunk(r, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Result{Header: h, Main: main, Config: cfg, Consumed: r.pos}, nil
}

func (res *Result) Trailing(data []byte) int {
	return len(data) - res.Consumed
}
