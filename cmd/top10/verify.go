package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"top10/internal/formatter"
	"top10/internal/writer"
	"top10/pkg/metadata"
)

func verifyCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "check that a markdown preview has not been edited since it was signed",
		ArgsUsage: "<preview.md>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "write",
				Usage: "realign tables and re-sign the file instead of checking it",
			},
		},
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("usage: top10 verify %s", c.Command.ArgsUsage)
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read preview: %w", err)
			}

			if c.Bool("write") {
				if err := writer.WriteFile(path, []byte(formatter.FormatMarkdown(string(content)))); err != nil {
					return err
				}

				fmt.Fprintf(stdout, "✍️  re-signed %s\n", path)

				return nil
			}

			if _, err := metadata.Verify(string(content)); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			fmt.Fprintf(stdout, "✅ %s is intact\n", path)

			return nil
		},
	}
}
