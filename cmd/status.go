// cmd/status.go

package main

import (
	"EmuROM/pkg/eeprom"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"
)

type sections struct {
	Image       string
	Base        string
	Initialized bool
	Capacity    int
	Records     []eeprom.Record
}

func printJson(v interface{}) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatalf("json: %s", err)
	}
	fmt.Println(string(output))
}

func status(c *cli.Context) error {
	setLoggerLevel(c)
	s := openStore(c)
	printJson(&sections{
		Image:       c.String("image"),
		Base:        fmt.Sprintf("0x%08X", c.Uint64("base")),
		Initialized: s.Initialized(),
		Capacity:    eeprom.MaxVars,
		Records:     s.Records(),
	})
	return nil
}

func statusFlags() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "show the page state and every live variable",
		Action: status,
	}
}
