package term

import (
	"io"
	"os"
	"strings"

	xterm "golang.org/x/term"
)

const (
	RED     = "\033[91m"
	GREEN   = "\033[32m"
	YELLOW  = "\033[93m"
	CYAN    = "\033[96m"
	NOCOLOR = "\033[0m"
)

var (
	// Out receives every log line. The CLI points it at stderr when stdout
	// carries data.
	Out io.Writer = os.Stdout
	// Colorful is false when stdout is not a terminal.
	Colorful = IsTerminal(os.Stdout)
)

func IsTerminal(f *os.File) bool {
	return xterm.IsTerminal(int(f.Fd()))
}

func paint(color, s string) string {
	if !Colorful {
		return s
	}
	return color + s + NOCOLOR
}

func print(s string) {
	io.WriteString(Out, s)
}

func Cyan(s string) {
	print(paint(CYAN, s))
}

// Box frames s with a titled double-line border.
func Box(s, title string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	longest := 4
	for idx := range lines {
		if len(lines[idx]) > longest {
			longest = len(lines[idx])
		}
	}

	w := longest + 6
	titleW := len(title)
	if w < titleW+4 {
		w = titleW + 4
	}
	result := "╔═ " + title + " " + strings.Repeat("═", w-titleW-3) + "╗\n"
	for idx := range lines {
		blankWidth := w - len(lines[idx])
		blank := strings.Repeat(" ", blankWidth/2)
		moreBlank := strings.Repeat(" ", blankWidth%2)
		result += "║" + blank + lines[idx] + blank + moreBlank + "║\n"
	}
	result += "╚" + strings.Repeat("═", w) + "╝\n"
	return result
}
