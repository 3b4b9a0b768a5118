package term

import (
	"fmt"
)

func prefix(color, tag string) string {
	return paint(color, "["+tag+"]") + " "
}

func printf(format string, args ...any) {
	print(fmt.Sprintf(format+"\n", args...))
}

func Warn(format string, args ...any) {
	printf(prefix(YELLOW, "WAR")+format, args...)
}

func Info(format string, args ...any) {
	printf(prefix(CYAN, "INF")+format, args...)
}

func Err(format string, args ...any) {
	printf(prefix(RED, "ERR")+format, args...)
}

func Suc(format string, args ...any) {
	printf(prefix(GREEN, "SUC")+format, args...)
}
