// cmd/main.go

package main

import (
	"EmuROM/pkg/eeprom"
	"EmuROM/pkg/flash"
	"EmuROM/pkg/utils"
	"EmuROM/pkg/version"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var logger = utils.GetLogger("emurom")

func main() {
	app := &cli.App{
		Name:    "emurom",
		Usage:   "EEPROM emulation on a flash block image",
		Version: version.Version(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "image",
				Aliases: []string{"i"},
				Value:   "eeprom.img",
				Usage:   "path of the flash block image file",
			},
			&cli.Uint64Flag{
				Name:  "base",
				Value: 0x08003C00,
				Usage: "base address of the flash block",
			},
			&cli.IntFlag{
				Name:  "block-size",
				Value: 1024,
				Usage: "size of the flash erase block in bytes",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"debug", "v"},
				Usage:   "enable debug log",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only warning and errors",
			},
			&cli.StringFlag{
				Name:  "log",
				Usage: "path of log file",
			},
		},
		Commands: []*cli.Command{
			formatFlags(),
			setFlags(),
			getFlags(),
			statusFlags(),
			wearFlags(),
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		logger.Fatalf("%s", err)
	}
}

func setLoggerLevel(c *cli.Context) {
	if c.Bool("verbose") {
		utils.SetLogLevel(logrus.DebugLevel)
	} else if c.Bool("quiet") {
		utils.SetLogLevel(logrus.WarnLevel)
	}
	if logfile := c.String("log"); logfile != "" {
		utils.SetOutFile(logfile)
	}
}

func openStore(c *cli.Context) *eeprom.Store {
	size := c.Int("block-size")
	if size < eeprom.Footprint {
		logger.Fatalf("block size %d is smaller than the engine footprint %d", size, eeprom.Footprint)
	}
	base := uint32(c.Uint64("base"))
	dev, err := flash.OpenFileDevice(c.String("image"), base, size)
	if err != nil {
		logger.Fatalf("open image: %s", err)
	}
	return eeprom.New(dev, base)
}
