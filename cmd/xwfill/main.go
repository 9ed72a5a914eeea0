// Command xwfill is the local/offline entry point: read a grid file, fill
// it against a named wordlist, and print either the raw grid or an Across
// Puzzle V2 container.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aleris/xwords/across"
	"github.com/aleris/xwords/config"
	"github.com/aleris/xwords/fill"
	"github.com/aleris/xwords/grid"
	"github.com/aleris/xwords/wordindex"
	"github.com/aleris/xwords/wordlist"
)

func main() {
	input := flag.String("input", "", "Path to a grid text file (required)")
	words := flag.String("words", "", "Wordlist name, without extension (default from config, usually en)")
	random := flag.Bool("random", false, "Enable randomized fill")
	seedFlag := flag.Uint64("seed", 0, "Seed for --random; ignored without --random")
	format := flag.String("format", "grid", "Output format: grid or across")
	title := flag.String("title", "", "Puzzle title for across output")
	author := flag.String("author", "", "Author name for across output")
	copyrightFlag := flag.String("copyright", "", "Copyright text for across output")
	timeout := flag.Duration("timeout", 0, "Fill timeout; default is the config's fill.default_timeout (2m unless configured)")
	configPath := flag.String("config", "", "Path to a TOML run configuration file")
	profile := flag.Bool("profile", false, "Enable CPU profiling")
	profileFile := flag.String("profile-file", "cpu.pprof", "Where to write the CPU profile")

	flag.Parse()
	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})

	logger := log.Default()

	if *input == "" {
		logger.Error("xwfill: --input is required")
		os.Exit(2)
	}

	cfg := config.Load(*configPath)

	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			logger.Error("xwfill: could not create profile file", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Error("xwfill: could not start CPU profile", "err", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	gridText, err := os.ReadFile(*input)
	if err != nil {
		logger.Error("xwfill: could not read input file", "path", *input, "err", err)
		os.Exit(1)
	}

	g, err := grid.ParseGrid(string(gridText))
	if err != nil {
		logger.Error("xwfill: structural error parsing grid", "err", err)
		os.Exit(1)
	}

	wordlistName := *words
	if wordlistName == "" {
		wordlistName = cfg.Wordlist.DefaultName
	}
	loader := wordlist.NewLoader(cfg.Wordlist.Dir, cfg.Cloud.Project, cfg.Cloud.Dataset)

	ctx := context.Background()
	rawWords, err := loader.Load(ctx, wordlistName)
	if err != nil {
		logger.Error("xwfill: could not load wordlist", "name", wordlistName, "err", err)
		os.Exit(1)
	}
	ix := wordindex.BuildOrLoad(cfg.Wordlist.CacheDir, wordlistName, rawWords)
	logger.Info("xwfill: built index", "wordlist", wordlistName, "words", ix.Size())

	fillTimeout := *timeout
	if fillTimeout == 0 {
		fillTimeout = cfg.FillTimeout()
	}
	fillCtx, cancel := context.WithTimeout(ctx, fillTimeout)
	defer cancel()

	opts := fill.Options{
		Randomize:          *random,
		ThroughputLogEvery: cfg.Fill.ThroughputLogEvery,
		Logger:             logger,
	}
	if *random {
		seed := *seedFlag
		if !seedSet {
			seed = rand.Uint64()
		}
		opts.Seed = &seed
	}

	result, err := fill.Fill(fillCtx, g, ix, opts)
	if err != nil {
		exitForFillError(logger, err)
	}

	output, err := render(result, *format, *input, *title, *author, *copyrightFlag)
	if err != nil {
		logger.Error("xwfill: could not render result", "err", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func exitForFillError(logger *log.Logger, err error) {
	switch {
	case errors.Is(err, fill.ErrInfeasible):
		logger.Error("xwfill: no fill exists for this grid and dictionary")
		os.Exit(1)
	case errors.Is(err, fill.ErrCancelled):
		logger.Error("xwfill: fill cancelled (timeout exceeded)")
		os.Exit(1)
	default:
		logger.Error("xwfill: structural error", "err", err)
		os.Exit(1)
	}
}

func render(g *grid.Grid, format, inputPath, title, author, copyrightText string) (string, error) {
	switch format {
	case "across":
		if title == "" {
			title = titleCase(strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)))
		}
		if author == "" {
			author = "xwords"
		}
		if copyrightText == "" {
			copyrightText = fmt.Sprintf("%d Public domain.", time.Now().Year())
		}
		return across.Render(g, title, author, copyrightText)
	case "grid", "":
		return grid.RenderGrid(g), nil
	default:
		return "", fmt.Errorf("xwfill: unknown format %q", format)
	}
}

func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
