package consts

import "regexp"

const (
	LuacSuffixReStr = `(.*)\.luac$`
	LuaSourceReStr  = `^[@=]`
)

var (
	LuacSuffixRe = _re(LuacSuffixReStr)
	LuaSourceRe  = _re(LuaSourceReStr)
)

func _re(s string) *regexp.Regexp {
	return regexp.MustCompile(s)
}
