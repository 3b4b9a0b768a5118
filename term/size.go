package term

import (
	"errors"
	"os"

	xterm "golang.org/x/term"
)

type termSize struct {
	Height int
	Width  int
}

var (
	ErrNotTerminal = errors.New("stdout is not a terminal")
)

func Size() (*termSize, error) {
	fd := int(os.Stdout.Fd())
	if !xterm.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	width, height, err := xterm.GetSize(fd)
	if err != nil {
		return nil, err
	}
	return &termSize{
		Height: height,
		Width:  width,
	}, nil
}

// Width is the terminal width, or def when it cannot be determined.
func Width(def int) int {
	size, err := Size()
	if err != nil || size.Width <= 0 {
		return def
	}
	return size.Width
}
