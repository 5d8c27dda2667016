// cmd/set.go

package main

import (
	"strconv"

	"github.com/urfave/cli/v2"
)

func set(c *cli.Context) error {
	setLoggerLevel(c)
	args := c.Args().Slice()
	if len(args) == 0 || len(args)%2 != 0 {
		logger.Fatalf("ID VALUE pairs are required")
	}
	ids := make([]uint8, 0, len(args)/2)
	values := make([]uint16, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		id, err := strconv.ParseUint(args[i], 0, 8)
		if err != nil {
			logger.Fatalf("id %s: %s", args[i], err)
		}
		value, err := strconv.ParseUint(args[i+1], 0, 16)
		if err != nil {
			logger.Fatalf("value %s: %s", args[i+1], err)
		}
		ids = append(ids, uint8(id))
		values = append(values, uint16(value))
	}

	s := openStore(c)
	var err error
	if len(ids) == 1 {
		err = s.Save(ids[0], values[0])
	} else {
		err = s.SaveBatch(ids, values)
	}
	if err != nil {
		logger.Fatalf("save: %s", err)
	}
	logger.Infof("Saved %d variable(s)", len(ids))
	return nil
}

func setFlags() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "save one or more variables in a single erase cycle",
		ArgsUsage: "ID VALUE [ID VALUE ...]",
		Action:    set,
	}
}
