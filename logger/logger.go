package logger

import (
	"github.com/lollipopkit/distil/consts"
	"github.com/lollipopkit/distil/term"
)

func I(fm string, a ...any) {
	if consts.Debug {
		term.Info(fm, a...)
	}
}

func E(fm string, a ...any) {
	if consts.Debug {
		term.Err(fm, a...)
	}
}

func W(fm string, a ...any) {
	if consts.Debug {
		term.Warn(fm, a...)
	}
}
