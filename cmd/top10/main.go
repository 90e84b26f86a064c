// Package main provides the top10 command: it fetches the current top
// products for a niche and writes them as JSON for the site generator.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"top10/internal/config"
)

// defaultConfigFile is used when present and --config is not given.
const defaultConfigFile = "top10.yaml"

// errReported marks failures whose message has already been printed.
var errReported = errors.New("reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)

	if err := app.RunContext(ctx, args); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "❌ %v\n", err)
		}

		return 1
	}

	return 0
}

func newApp(stdout, stderr io.Writer) *cli.App {
	generate := generateCommand(stdout, stderr)

	return &cli.App{
		Name:      "top10",
		Usage:     "generate a Top 10 product list for a static site",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     generateFlags(),
		Action:    generate.Action,
		Commands: []*cli.Command{
			generate,
			renderCommand(stdout),
			schemaCommand(stdout),
			verifyCommand(stdout),
			initCommand(stdout),
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func generateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to YAML configuration file (default: " + defaultConfigFile + " if present)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output JSON path (default: " + config.DefaultOutputPath + ")",
		},
		&cli.BoolFlag{
			Name:  "mock",
			Usage: "skip the API request and write placeholder products",
		},
		&cli.StringFlag{
			Name:  "preview",
			Usage: "also write a signed markdown preview to this path",
		},
		&cli.StringFlag{
			Name:  "publish-dir",
			Usage: "copy the output to <dir>/<slug>/filled.json instead of blob storage",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
		},
	}
}
