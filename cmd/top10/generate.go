package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"top10/internal/config"
	"top10/internal/logger"
	"top10/internal/pipeline"
	"top10/internal/publish"
)

const missingKeyHelp = `❌ RAPIDAPI_KEY is not set.

   Get a key at https://rapidapi.com/letscrape-6bRBa3QguO5/api/real-time-amazon-data
   and export it, or add it to .env:

     RAPIDAPI_KEY=your-key
     AMAZON_AFFILIATE_ID=yourtag-20
`

func generateCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "fetch products and write the output document (default)",
		Flags: generateFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			log := logger.New(stderr, cfg.Logging.Level)
			log.Info("🚀 starting top10 generator", "config", cfg.String())

			opts := pipeline.Options{Mock: c.Bool("mock")}

			publisher, err := publish.New(cfg.Publish)
			if err != nil {
				log.Warn("⚠️  publishing disabled", "error", err)
			} else if publisher != nil {
				opts.Publisher = publisher
			}

			res, err := pipeline.Run(c.Context, cfg, log, opts)
			if err != nil {
				if errors.Is(err, config.ErrMissingAPIKey) {
					fmt.Fprint(stderr, missingKeyHelp)
					return errReported
				}

				return err
			}

			printSummary(stdout, res)

			return nil
		},
	}
}

// loadConfig reads the configuration file and applies command-line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		path = config.GetConfigPath(defaultConfigFile)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if out := c.String("output"); out != "" {
		cfg.Output.Path = out
	}

	if preview := c.String("preview"); preview != "" {
		cfg.Output.PreviewPath = preview
	}

	if dir := c.String("publish-dir"); dir != "" {
		cfg.Publish.Dir = dir
	}

	if level := c.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	return cfg, nil
}

func printSummary(w io.Writer, res *pipeline.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("✅ top10 run complete")

	t.AppendRow(table.Row{"Output", res.OutputPath})
	t.AppendRow(table.Row{"Products", res.Count})
	t.AppendRow(table.Row{"Source", res.Source})
	t.AppendRow(table.Row{"Category node", res.NodeID})
	t.AppendRow(table.Row{"Duration", res.Duration.Round(time.Millisecond)})

	if res.Fallback != nil {
		t.AppendRow(table.Row{"Fallback reason", res.Fallback.Error()})
	}

	if res.PreviewPath != "" {
		t.AppendRow(table.Row{"Preview", res.PreviewPath})
	}

	switch {
	case res.PublishErr != nil:
		t.AppendRow(table.Row{"Publish", "failed: " + res.PublishErr.Error()})
	case res.PublishedURL != "":
		t.AppendRow(table.Row{"Published", res.PublishedURL})
	}

	t.Render()
}
