package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lollipopkit/distil/binchunk"
	"github.com/lollipopkit/distil/config"
	"github.com/lollipopkit/distil/export"
	"github.com/lollipopkit/distil/inspect"
	"github.com/lollipopkit/distil/logger"
	"github.com/lollipopkit/distil/term"
	"github.com/lollipopkit/distil/utils"
)

const cacheSize = 64

var (
	ErrNotChunk = errors.New("not a Lua binary chunk")
	ErrNoMatch  = errors.New("query matched nothing")
)

type runner struct {
	cfg    *config.Config
	format export.Format
	cache  *utils.Cache[*binchunk.Result]

	query   string
	inspect bool
	stats   bool

	// stdout receives query results and stats
	stdout io.Writer
	// confirm asks before an existing output is replaced
	confirm func(question string) (bool, error)
}

func newRunner(cfg *config.Config, f export.Format) *runner {
	return &runner{
		cfg:    cfg,
		format: f,
		cache:  utils.NewCache[*binchunk.Result](cacheSize),
		stdout: os.Stdout,
		confirm: func(q string) (bool, error) {
			return term.Confirm(q, false)
		},
	}
}

// noPrompt downgrades overwrite = "ask" to "never" when nobody can
// answer the prompt.
func noPrompt(cfg *config.Config, stdinTTY bool) {
	if cfg.Output.Overwrite == config.OverwriteAsk && !stdinTTY {
		term.Warn("stdin is not a terminal, existing outputs are kept (use -y to overwrite)")
		cfg.Output.Overwrite = config.OverwriteNever
	}
}

func (r *runner) decode(file string) (*binchunk.Result, error) {
	if !utils.Exist(file) {
		return nil, fmt.Errorf("file not found")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("can't read file: %w", err)
	}
	if !binchunk.IsBinaryChunk(data) {
		return nil, ErrNotChunk
	}

	if res, ok := r.cache.Get(data); ok {
		logger.I("%s: same content as an earlier input, reusing its decode", file)
		return res, nil
	}

	res, err := binchunk.Undump(data, r.cfg.Decode)
	if err != nil {
		return nil, err
	}
	if n := res.Trailing(data); n > 0 {
		logger.W("%s: %d trailing bytes after the main function", file, n)
	}
	r.cache.Set(data, res)
	return res, nil
}

func (r *runner) process(ctx context.Context, file string) error {
	res, err := r.decode(file)
	if err != nil {
		return err
	}

	if r.stats {
		r.printStats(file, res)
	}
	switch {
	case r.query != "":
		return r.runQuery(res)
	case r.inspect:
		return inspect.Run(res, file)
	}
	return r.write(ctx, file, res)
}

func (r *runner) printStats(file string, res *binchunk.Result) {
	s := res.Main.Stats()
	body := fmt.Sprintf(
		"version       %s\nfunctions     %d\ninstructions  %d\nconstants     %d\nlocals        %d\nupvalues      %d\nmax depth     %d",
		res.Header.Version, s.Functions, s.Instructions, s.Constants, s.Locals, s.Upvalues, s.MaxDepth,
	)
	fmt.Fprint(r.stdout, term.Box(body, file))
}

func (r *runner) runQuery(res *binchunk.Result) error {
	doc, err := export.JSON(res, r.cfg.Output.Pretty)
	if err != nil {
		return err
	}
	out, ok := export.Query(doc, r.query)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoMatch, r.query)
	}
	fmt.Fprintln(r.stdout, out)
	return nil
}

func (r *runner) write(ctx context.Context, file string, res *binchunk.Result) error {
	out := utils.OutputPath(file, r.cfg.Output.Dir, r.format.Ext())
	if r.cfg.Output.Dir != "" {
		if err := os.MkdirAll(r.cfg.Output.Dir, 0755); err != nil {
			return err
		}
	}

	if utils.Exist(out) {
		switch r.cfg.Output.Overwrite {
		case config.OverwriteNever:
			term.Warn("%s exists, skipped", out)
			return nil
		case config.OverwriteAsk:
			ok, err := r.confirm(fmt.Sprintf("%s exists, overwrite?", out))
			if err != nil {
				return fmt.Errorf("overwrite prompt for %s: %w", out, err)
			}
			if !ok {
				term.Warn("%s skipped", out)
				return nil
			}
		}
	}

	stop := func() {}
	if term.Colorful {
		s := term.NewSpinner()
		s.SetString("Writing " + out)
		stop = func() { s.Stop(true) }
	}
	err := export.WriteFile(ctx, out, res, export.Options{
		Format: r.format,
		Pretty: r.cfg.Output.Pretty,
	})
	stop()
	if err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	term.Suc("File written: %s", out)
	return nil
}
