// cmd/format.go

package main

import (
	"github.com/urfave/cli/v2"
)

func format(c *cli.Context) error {
	setLoggerLevel(c)
	s := openStore(c)
	if err := s.Format(); err != nil {
		logger.Fatalf("format: %s", err)
	}
	logger.Infof("Image %s is formatted", c.String("image"))
	return nil
}

func formatFlags() *cli.Command {
	return &cli.Command{
		Name:   "format",
		Usage:  "erase the flash page, dropping every stored variable",
		Action: format,
	}
}
