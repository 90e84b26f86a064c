package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"top10/internal/config"
	"top10/internal/formatter"
	"top10/internal/writer"
)

func renderCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render a generated document as a standalone HTML page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Value:   config.DefaultOutputPath,
				Usage:   "document to render",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "HTML file to write (default: stdout)",
			},
		},
		Action: func(c *cli.Context) error {
			doc, err := writer.Read(c.String("input"))
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := formatter.RenderHTML(&buf, doc); err != nil {
				return err
			}

			out := c.String("output")
			if out == "" {
				_, err := stdout.Write(buf.Bytes())
				return err
			}

			if err := writer.WriteFile(out, buf.Bytes()); err != nil {
				return err
			}

			fmt.Fprintf(stdout, "✅ wrote %s (%d products)\n", out, len(doc.Products))

			return nil
		},
	}
}
