package main

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jcorbin/tally/internal/report"
	"github.com/jcorbin/tally/internal/textutil"
)

// DiffCmd compares two saved reports line by line.
type DiffCmd struct {
	Old   string `arg:"" type:"existingfile" help:"Earlier report"`
	New   string `arg:"" type:"existingfile" help:"Later report"`
	Color string `name:"color" default:"auto" enum:"auto,always,never" help:"Colorize output (auto, always, never)"`
}

func (c *DiffCmd) Run() error {
	from, err := report.Load(report.File{Name: c.Old})
	if err != nil {
		return err
	}
	to, err := report.Load(report.File{Name: c.New})
	if err != nil {
		return err
	}

	switch c.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		color.NoColor = !isatty.IsTerminal(os.Stdout.Fd())
	}

	_, err = writeDiff(os.Stdout, from, to)
	return err
}

// diffLines returns a line level diff from a to b.
func diffLines(a, b string) []diffpatch.Diff {
	dmp := diffpatch.New()
	ac, bc, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ac, bc, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// writeDiff writes every line of the diff from a to b, prefixed "+ ", "- ",
// or "  ", and reports whether any line changed.
func writeDiff(w io.Writer, a, b string) (changed bool, _ error) {
	ew := &textutil.ErrWriter{Writer: w}
	for _, d := range diffLines(a, b) {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffpatch.DiffInsert:
				changed = true
				ew.WriteString(color.GreenString("+ %s", line))
			case diffpatch.DiffDelete:
				changed = true
				ew.WriteString(color.RedString("- %s", line))
			default:
				ew.WriteString("  " + line)
			}
			ew.WriteString("\n")
		}
	}
	return changed, ew.Err
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
