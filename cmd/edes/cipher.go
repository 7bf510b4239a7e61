package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/dcrodman/edes/internal/core/debug"
	"github.com/dcrodman/edes/internal/engine"
)

func cipherFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   fmt.Sprintf("Cipher mode, one of %v (defaults to the configured mode)", engine.Modes()),
		},
		&cli.StringFlag{
			Name:     "password",
			Aliases:  []string{"p"},
			Usage:    "Password the key is derived from",
			EnvVars:  []string{"EDES_PASSWORD"},
			Required: true,
		},
	}
}

func encryptCommand() *cli.Command {
	return &cli.Command{
		Name:        "encrypt",
		Usage:       "encrypt stdin to stdout",
		Description: "Pads and encrypts everything read from stdin, writing the ciphertext to stdout.",
		Flags:       cipherFlags(),
		Action: func(c *cli.Context) error {
			return transform(c, engine.Engine.Encrypt)
		},
	}
}

func decryptCommand() *cli.Command {
	return &cli.Command{
		Name:        "decrypt",
		Usage:       "decrypt stdin to stdout",
		Description: "Decrypts and unpads the ciphertext read from stdin, writing the plaintext to stdout.",
		Flags:       cipherFlags(),
		Action: func(c *cli.Context) error {
			return transform(c, engine.Engine.Decrypt)
		},
	}
}

// transform runs op over the whole of stdin. Nothing is written unless op
// succeeds, so a failed decryption never leaves partial plaintext behind.
func transform(c *cli.Context, op func(engine.Engine, []byte, []byte) ([]byte, error)) error {
	config, logger, err := setup(c)
	if err != nil {
		return err
	}

	mode := config.Mode
	if c.IsSet("mode") {
		mode = c.String("mode")
	}
	eng, err := engine.New(mode, engine.Options{Workers: config.Workers, Logger: logger})
	if err != nil {
		return err
	}

	password := []byte(c.String("password"))
	defer wipe(password)

	if config.Debugging.DumpSBoxes && mode == engine.ModeEDES {
		if err := debug.DumpSBoxes(logger, password); err != nil {
			return err
		}
	}

	input, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	output, err := op(eng, input, password)
	if err != nil {
		return err
	}
	if _, err := c.App.Writer.Write(output); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
