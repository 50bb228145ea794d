// Command annotate scans a LaTeX (or R-Sweave) file and prints its plain
// text or the segment breakdown, optionally followed by summary
// statistics.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"latexannotate/internal/latex"
	"latexannotate/internal/logger"
	"latexannotate/internal/settings"
	"latexannotate/internal/sink"
)

type cli struct {
	File        string `arg:"" help:"Path to the .tex or .rnw file to scan." type:"existingfile"`
	Settings    string `help:"Path to a JSON settings file." type:"path"`
	Strict      bool   `help:"Fail on the first no-progress stall instead of force-advancing."`
	Segments    bool   `help:"Print the segment table instead of plain text."`
	Stats       bool   `help:"Print summary statistics after the output."`
	CodeLang    string `help:"Code language id (latex or rsweave)." default:"latex"`
	LogLevel    string `help:"debug, info, warn, or error." default:"info"`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("annotate"),
		kong.Description("Reduce LaTeX source to grammar-checkable plain text."),
	)

	if err := logger.Init(&logger.Config{Level: parseLevel(c.LogLevel), EnableConsole: true}); err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}

	s := settings.Default()
	if c.Settings != "" {
		loaded, err := settings.Load(c.Settings)
		if err != nil {
			fmt.Fprintln(os.Stderr, "load settings:", err)
			os.Exit(1)
		}
		s = loaded
	}
	s.StrictMode = c.Strict

	src, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read file:", err)
		os.Exit(1)
	}

	codeLangID := c.CodeLang
	if strings.EqualFold(filepath.Ext(c.File), ".rnw") {
		codeLangID = "rsweave"
	}

	b := latex.NewBuilder(codeLangID)
	b.SetSettings(s)
	b.SetStrictMode(s.StrictMode)

	out, err := b.AddCode(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, "scan failed:", err)
		os.Exit(1)
	}

	if c.Segments {
		printSegments(out)
	} else {
		fmt.Println(out.PlainText())
	}

	if c.Stats {
		printStats(out, len(src))
	}
}

func printSegments(out *sink.AnnotatedText) {
	for _, seg := range out.Segments() {
		fmt.Printf("%-7s [%5d,%5d) %q\n", seg.Kind, seg.SourceStart, seg.SourceEnd, seg.PlainText)
	}
}

func printStats(out *sink.AnnotatedText, sourceBytes int) {
	plain := out.PlainText()
	fmt.Fprintf(os.Stderr, "source: %s, plain text: %s, segments: %s\n",
		humanize.Bytes(uint64(sourceBytes)),
		humanize.Bytes(uint64(len(plain))),
		humanize.Comma(int64(len(out.Segments()))))
}

func parseLevel(s string) logger.Level {
	switch strings.ToLower(s) {
	case "debug":
		return logger.LevelDebug
	case "warn":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}
