// cmd/get.go

package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
)

func get(c *cli.Context) error {
	setLoggerLevel(c)
	if c.Args().Len() < 1 {
		logger.Fatalf("ID is required")
	}
	id, err := strconv.ParseUint(c.Args().Get(0), 0, 8)
	if err != nil {
		logger.Fatalf("id %s: %s", c.Args().Get(0), err)
	}

	s := openStore(c)
	if c.Bool("check") {
		fmt.Println(s.Exists(uint8(id)))
		return nil
	}
	value := s.Read(uint8(id))
	if !s.Exists(uint8(id)) {
		logger.Warnf("variable %d is not stored, 0x%04X is the erased pattern", id, value)
	}
	fmt.Printf("%d (0x%04X)\n", value, value)
	return nil
}

func getFlags() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "read a variable",
		ArgsUsage: "ID",
		Action:    get,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "check",
				Aliases: []string{"c"},
				Usage:   "print whether the variable exists instead of its value",
			},
		},
	}
}
