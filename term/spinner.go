package term

import (
	"strings"
	"sync"
	"time"

	"atomicgo.dev/cursor"
)

var Frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner is a simple animation for terminal.
type spinner struct {
	// frames is the list of frames to use for the animation.
	frames []string
	// interval is the interval to use for the animation.
	interval time.Duration
	// index is the current index of the frames.
	index int
	// suffix is the string behind animation.
	suffix string
	// ticker is the ticker used for the animation.
	ticker *time.Ticker
	done   chan struct{}
	mu     sync.Mutex
}

func NewCustomSpinner(frames []string, interval time.Duration) *spinner {
	return &spinner{
		frames:   frames,
		interval: interval,
	}
}

func NewSpinner() *spinner {
	return NewCustomSpinner(Frames, time.Millisecond*77)
}

// Stop stops the spinner.
func (s *spinner) Stop(clearLine bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
	}
	s.ticker = nil
	if clearLine {
		cursor.ClearLine()
		cursor.StartOfLine()
	} else {
		print("\n")
	}
}

func (s *spinner) start() {
	s.ticker = time.NewTicker(s.interval)
	s.done = make(chan struct{})
	go func(ticker *time.Ticker, done chan struct{}) {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.mu.Lock()
				s.index = (s.index + 1) % len(s.frames)
				cursor.StartOfLine()
				print(s.frames[s.index] + s.suffix)
				s.mu.Unlock()
			}
		}
	}(s.ticker, s.done)
}

// SetString sets the suffix of the spinner.
// The suffix is trimmed, cut to its first line and to the terminal width.
func (s *spinner) SetString(suffix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	suffix = strings.TrimSpace(suffix)
	suffix = strings.Split(suffix, "\n")[0]
	if limit := Width(80) - 3; limit > 0 && len(suffix) > limit {
		suffix = suffix[:limit]
	}
	s.suffix = " " + suffix
	if s.ticker == nil {
		s.start()
	}
}
