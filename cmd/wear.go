// cmd/wear.go

package main

import (
	"EmuROM/pkg/utils"
	"strconv"

	"github.com/urfave/cli/v2"
)

func wear(c *cli.Context) error {
	setLoggerLevel(c)
	cycles := 100
	if c.Args().Len() > 0 {
		n, err := strconv.Atoi(c.Args().Get(0))
		if err != nil || n <= 0 {
			logger.Fatalf("CYCLES must be a positive number")
		}
		cycles = n
	}
	if c.Uint("id") > 255 {
		logger.Fatalf("id must be in 0-255")
	}
	id := uint8(c.Uint("id"))

	s := openStore(c)
	value := s.Read(id)
	progress, bar := utils.NewDynProgressBar("Write cycles: ", c.Bool("quiet"))
	bar.SetTotal(int64(cycles), false)

	done := 0
	for ; done < cycles; done++ {
		value++
		if err := s.Save(id, value); err != nil {
			logger.Errorf("cycle %d: %s", done+1, err)
			break
		}
		bar.Increment()
	}
	bar.SetTotal(0, true)
	progress.Wait()

	logger.Infof("Completed %d / %d cycles, variable %d is now %d", done, cycles, id, s.Read(id))
	return nil
}

func wearFlags() *cli.Command {
	return &cli.Command{
		Name:      "wear",
		Usage:     "exercise the page with repeated saves of a counter variable",
		ArgsUsage: "CYCLES",
		Action:    wear,
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  "id",
				Value: 1,
				Usage: "id of the counter variable",
			},
		},
	}
}
