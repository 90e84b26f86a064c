package main

import (
	"io"

	"github.com/urfave/cli/v2"

	"top10/internal/models"
)

func schemaCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "print the JSON Schema of the output document",
		Action: func(*cli.Context) error {
			data, err := models.DocumentSchema()
			if err != nil {
				return err
			}

			_, err = stdout.Write(data)

			return err
		},
	}
}
