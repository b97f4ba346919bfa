// Command tally counts the votes cast in a forum thread.
package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/jcorbin/tally/internal/logging"
)

// CLI is the tally command line.
var CLI struct {
	LogLevel  string         `name:"log-level" default:"info" env:"TALLY_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogFormat logging.Format `name:"log-format" default:"text" enum:"text,json" env:"TALLY_LOG_FORMAT" help:"Log format (text, json)"`

	Count CountCmd `cmd:"" help:"Tally a thread read from a request JSON file"`
	Serve ServeCmd `cmd:"" help:"Serve tally requests over HTTP"`
	Diff  DiffCmd  `cmd:"" help:"Compare two saved tally reports"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tally"),
		kong.Description("Forum vote tallying"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	if _, err := logging.Init(os.Stderr, CLI.LogLevel, CLI.LogFormat); err != nil {
		ctx.FatalIfErrorf(err)
	}

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
