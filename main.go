package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lollipopkit/distil/config"
	"github.com/lollipopkit/distil/consts"
	"github.com/lollipopkit/distil/export"
	"github.com/lollipopkit/distil/logger"
	"github.com/lollipopkit/distil/term"
)

func main() {
	strip := flag.Bool("s", false, "Strip debugging information (line positions, locals, upvalue names)")
	objects := flag.Bool("o", false, "Emit instructions as {op, A, B, C} objects")
	format := flag.String("f", "", "Output format: json, cbor, sqlite or listing")
	dir := flag.String("d", "", "Write outputs into this directory")
	pretty := flag.Bool("p", false, "Indent JSON output")
	query := flag.String("q", "", "Print the value at this JSON path instead of writing a file")
	interactive := flag.Bool("i", false, "Browse the decoded chunk in the terminal")
	stats := flag.Bool("stats", false, "Print function and instruction counts")
	yes := flag.Bool("y", false, "Overwrite existing outputs without asking")
	verbose := flag.Bool("v", false, "Verbose output")
	configPath := flag.String("c", "", "Config file (default: nearest "+consts.ConfigFileName+")")
	version := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] file.luac...\n\n", consts.NAME)
		fmt.Fprintf(os.Stderr, "Decodes Lua 5.1 bytecode into a JSON tree (or CBOR, SQLite, a listing).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s a.luac                     # writes a.json\n", consts.NAME)
		fmt.Fprintf(os.Stderr, "  %s -s -o -p a.luac            # stripped, object instructions, indented\n", consts.NAME)
		fmt.Fprintf(os.Stderr, "  %s -f sqlite -d out *.luac    # one database per chunk in out/\n", consts.NAME)
		fmt.Fprintf(os.Stderr, "  %s -q functions.# a.luac      # number of nested functions\n", consts.NAME)
	}
	flag.Parse()

	if *version {
		term.Cyan(fmt.Sprintf("%s v%s\n", consts.NAME, consts.VERSION))
		return
	}
	consts.Debug = *verbose

	files := flag.Args()
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		term.Err("%v", err)
		os.Exit(1)
	}
	if cfg.Path != "" {
		logger.I("Using config %s", cfg.Path)
	}

	// explicitly set flags win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			cfg.Decode.StripDebugging = *strip
		case "o":
			cfg.Decode.UseInstructionObjects = *objects
		case "f":
			cfg.Output.Format = *format
		case "d":
			cfg.Output.Dir = *dir
		case "p":
			cfg.Output.Pretty = *pretty
		case "y":
			if *yes {
				cfg.Output.Overwrite = config.OverwriteAlways
			}
		}
	})

	if *query == "" && !*interactive {
		noPrompt(cfg, term.IsTerminal(os.Stdin))
	}

	f, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		term.Err("%v", err)
		os.Exit(1)
	}

	r := newRunner(cfg, f)
	r.query = *query
	r.inspect = *interactive
	r.stats = *stats
	if r.query != "" {
		// keep stdout clean for the query result
		term.Out = os.Stderr
	}

	failed := 0
	for _, file := range files {
		if err := r.process(context.Background(), file); err != nil {
			term.Err("%s: %v", file, err)
			failed++
		}
	}
	if failed > 0 {
		logger.E("%d of %d files failed", failed, len(files))
		os.Exit(1)
	}
}
