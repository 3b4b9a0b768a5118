package utils

import (
	"path/filepath"

	"github.com/lollipopkit/distil/consts"
)

// OutputPath derives the artifact name for input: a trailing ".luac" is
// dropped and ext appended. A non-empty dir relocates the file there.
func OutputPath(input, dir, ext string) string {
	base := input
	if m := consts.LuacSuffixRe.FindStringSubmatch(input); m != nil {
		base = m[1]
	}
	out := base + ext
	if dir != "" {
		out = filepath.Join(dir, filepath.Base(out))
	}
	return out
}
