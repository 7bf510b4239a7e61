// The edes command encrypts and decrypts stdin to stdout with either E-DES or
// plain DES-ECB, and times both modes with the speed subcommand.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/dcrodman/edes/internal/core"
)

func main() {
	if err := app().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "edes: %v\n", err)
		os.Exit(1)
	}
}

func app() *cli.App {
	app := cli.NewApp()
	app.Name = "edes"
	app.Usage = "E-DES and DES-ECB file encryption"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the directory containing config.yaml",
			EnvVars: []string{"EDES_CONFIG"},
			Value:   "./",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Log at debug level regardless of the configured level",
		},
	}
	app.Commands = []*cli.Command{
		encryptCommand(),
		decryptCommand(),
		speedCommand(),
		historyCommand(),
	}
	return app
}

// setup loads the configuration and builds the logger every subcommand shares.
func setup(c *cli.Context) (*core.Config, *logrus.Logger, error) {
	config, err := core.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if c.Bool("debug") {
		config.LogLevel = logrus.DebugLevel.String()
	}

	logger, err := core.NewLogger(config)
	if err != nil {
		return nil, nil, err
	}
	return config, logger, nil
}
