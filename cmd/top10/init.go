package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"top10/internal/config"
)

func initCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "write the current settings (defaults, .env, environment) to a YAML config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   defaultConfigFile,
				Usage:   "file to write",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "overwrite an existing file, keeping its values as the starting point",
			},
		},
		Action: func(c *cli.Context) error {
			target := c.String("config")

			source := ""
			if _, err := os.Stat(target); err == nil {
				if !c.Bool("force") {
					return fmt.Errorf("%s already exists (use --force to overwrite)", target)
				}

				source = target
			}

			cfg, err := config.LoadConfig(source)
			if err != nil {
				return err
			}

			if err := cfg.SaveConfig(target); err != nil {
				return err
			}

			fmt.Fprintf(stdout, "✅ wrote %s (RAPIDAPI_KEY is never saved; keep it in the environment or .env)\n", target)

			return nil
		},
	}
}
