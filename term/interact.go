package term

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"atomicgo.dev/cursor"
	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
)

var (
	doubleByteCharacterRegexp = regexp.MustCompile(`[^\x00-\xff]`)
)

const (
	_prompt = "> "
)

type ReadLineConfig struct {
	// Prompt is the prompt to show.
	Prompt string
}

// ReadLine reads one line from the keyboard with basic editing.
// Ctrl+C and Esc return an empty line. It fails when stdin is not a
// terminal.
func ReadLine(config ReadLineConfig) (string, error) {
	if len(config.Prompt) == 0 {
		config.Prompt = _prompt
	}
	os.Stdout.WriteString(config.Prompt)
	rs := []rune{}
	runeIdx := 0

	err := keyboard.Listen(func(key keys.Key) (stop bool, err error) {
		switch key.Code {
		case keys.CtrlC, keys.Escape:
			rs = rs[:0]
			os.Stdout.WriteString("\n")
			return true, nil
		case keys.RuneKey:
			runes := key.Runes
			rs = append(rs[:runeIdx], append(runes, rs[runeIdx:]...)...)
			runeIdx += len(runes)
			resetLine(rs, config.Prompt)
		case keys.Space:
			rs = append(rs[:runeIdx], append([]rune(" "), rs[runeIdx:]...)...)
			runeIdx++
			resetLine(rs, config.Prompt)
		case keys.Enter:
			os.Stdout.WriteString("\n")
			return true, nil
		case keys.Backspace:
			if len(rs) > 0 && runeIdx > 0 {
				rs = append(rs[:runeIdx-1], rs[runeIdx:]...)
				runeIdx--
				resetLine(rs, config.Prompt)
			}
		case keys.Left:
			if runeIdx > 0 {
				runeIdx--
			}
		case keys.Right:
			if runeIdx < len(rs) {
				runeIdx++
			}
		}

		idx := calcIdx(rs, runeIdx)
		pRunes := []rune(config.Prompt)
		pIdx := calcIdx(pRunes, len(pRunes))
		cursor.HorizontalAbsolute(idx + pIdx)
		return false, nil
	})
	if err != nil {
		return "", err
	}
	return string(rs), nil
}

func resetLine(rs []rune, prompt string) {
	cursor.ClearLine()
	cursor.StartOfLine()
	os.Stdout.WriteString(prompt + string(rs))
}

func calcIdx(rs []rune, runeIdx int) int {
	idx := 0
	for rIdx, r := range rs {
		if rIdx >= runeIdx {
			break
		}
		if isHan(r) {
			idx += 2
		} else {
			idx++
		}
	}
	return idx
}

func isHan(r rune) bool {
	return doubleByteCharacterRegexp.MatchString(string(r))
}

// Confirm asks a yes/no question. An empty answer picks default_.
func Confirm(question string, default_ bool) (bool, error) {
	suffix := func() string {
		if default_ {
			return " [Y/n]"
		}
		return " [y/N]"
	}()

	input, err := ReadLine(ReadLineConfig{
		Prompt: fmt.Sprintf("%s%s: ", question, suffix),
	})
	if err != nil {
		return false, err
	}
	return parseAnswer(input, default_), nil
}

func parseAnswer(input string, default_ bool) bool {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return default_
	}
	return input == "y" || input == "yes"
}
