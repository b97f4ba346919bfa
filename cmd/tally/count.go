package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jcorbin/tally/internal/postfilter"
	"github.com/jcorbin/tally/internal/preview"
	"github.com/jcorbin/tally/internal/report"
	"github.com/jcorbin/tally/internal/tally"
	"github.com/jcorbin/tally/internal/textutil"
)

// configFileName is looked for in the working directory and its parents
// when no --config is given.
const configFileName = "tally.yaml"

// CountCmd tallies a single request.
type CountCmd struct {
	File    string `arg:"" optional:"" type:"existingfile" help:"Request JSON file (default: stdin)"`
	Config  string `name:"config" short:"c" type:"existingfile" help:"YAML config file (default: nearest tally.yaml)"`
	Filter  string `name:"filter" short:"f" help:"Only count posts matching this expression, e.g. 'Index > 10'"`
	HTML    bool   `name:"html" help:"Write an HTML preview instead of BBCode"`
	Output  string `name:"output" short:"o" type:"path" help:"Also save the BBCode report to this file"`
	Verbose bool   `name:"verbose" short:"v" help:"List every extracted ballot on stderr"`
}

func (c *CountCmd) Run() error {
	ctx := context.Background()

	base, err := c.loadConfig()
	if err != nil {
		return err
	}

	req, err := c.readRequest(base)
	if err != nil {
		return err
	}

	if c.Filter != "" {
		filter, err := postfilter.Compile(c.Filter)
		if err != nil {
			return err
		}
		n := len(req.Posts)
		if req.Posts, err = filter.Apply(req.Posts); err != nil {
			return err
		}
		slog.Debug("filtered posts", "filter", filter, "posts", n, "kept", len(req.Posts))
	}

	if c.Verbose {
		if err := listBallots(ctx, os.Stderr, req); err != nil {
			return err
		}
	}

	result, err := tally.Run(ctx, req, nil)
	if err != nil {
		return err
	}

	if c.Output != "" {
		if err := report.Save(report.File{Name: c.Output}, result); err != nil {
			return fmt.Errorf("unable to save report: %w", err)
		}
		slog.Info("saved report", "file", c.Output)
	}

	if c.HTML {
		return preview.WriteHTML(os.Stdout, "Vote tally", result)
	}
	_, err = fmt.Fprintln(os.Stdout, result)
	return err
}

func (c *CountCmd) loadConfig() (tally.Config, error) {
	name := c.Config
	if name == "" {
		found, err := textutil.FindWDFile(configFileName)
		if errors.Is(err, fs.ErrNotExist) {
			return tally.DefaultConfig(), nil
		} else if err != nil {
			return tally.Config{}, err
		}
		name = found
	}
	cfg, err := tally.LoadConfig(name)
	if err != nil {
		return tally.Config{}, err
	}
	slog.Debug("loaded config", "file", name)
	return cfg, nil
}

func (c *CountCmd) readRequest(base tally.Config) (tally.Request, error) {
	var r io.Reader = os.Stdin
	if c.File != "" && c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return tally.Request{}, err
		}
		defer f.Close()
		r = f
	}
	return tally.DecodeRequest(r, base)
}

// listBallots writes every ballot that the request's posts cast, before any
// consolidation.
func listBallots(ctx context.Context, w io.Writer, req tally.Request) error {
	t, err := tally.New(req.Config, nil)
	if err != nil {
		return err
	}
	ballots, err := t.Ballots(ctx, req.Op, req.Posts)
	if err != nil {
		return err
	}
	return textutil.WriteEach(w, ballots, func(ew *textutil.ErrWriter, b *tally.Ballot) {
		v := b.Voters[0]
		ew.Printf("%s (post %s):\n", v.Name, v.PostID)
		iw := textutil.Indent(ew, "  ")
		fmt.Fprintf(iw, "%+v\n", b)
		if err := iw.Close(); err != nil && ew.Err == nil {
			ew.Err = err
		}
	})
}
