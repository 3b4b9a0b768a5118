package utils

import (
	"crypto/md5"
	"encoding/hex"
	"os"
)

// Md5 is the hex digest of data, used as the decode cache key.
func Md5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Exist reports whether path can be stat'ed.
func Exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
