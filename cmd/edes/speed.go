package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dcrodman/edes/internal/core"
	"github.com/dcrodman/edes/internal/core/debug"
	"github.com/dcrodman/edes/internal/engine"
	"github.com/dcrodman/edes/internal/speed"
)

func speedCommand() *cli.Command {
	return &cli.Command{
		Name:        "speed",
		Usage:       "time every cipher mode",
		Description: "Encrypts and decrypts a random buffer repeatedly with each mode and reports the fastest, slowest and average run.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "runs",
				Usage: "Number of timed runs per operation (defaults to speed.runs)",
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Size in bytes of the random buffer (defaults to speed.buffer_size)",
			},
			&cli.BoolFlag{
				Name:  "record",
				Usage: "Save the results to the configured database",
			},
		},
		Action: runSpeed,
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:        "history",
		Usage:       "show recorded speed results",
		Description: "Lists results saved by speed --record, newest first.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Only show results for this mode",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results to show",
				Value: 20,
			},
		},
		Action: showHistory,
	}
}

func runSpeed(c *cli.Context) error {
	config, logger, err := setup(c)
	if err != nil {
		return err
	}
	if c.IsSet("runs") {
		config.Speed.Runs = c.Int("runs")
	}
	if c.IsSet("size") {
		config.Speed.BufferSize = c.Int("size")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	// Ctrl-C stops the current run instead of killing the process outright.
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if config.Debugging.Enabled {
		debug.StartPprofServer(ctx, logger, config.Debugging.PprofPort)
	}

	results, err := timeModes(ctx, config, logger)
	if err != nil {
		return err
	}
	if err := printResults(c.App.Writer, results); err != nil {
		return err
	}

	if !c.Bool("record") {
		return nil
	}
	store, err := openStore(config, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	for _, r := range results {
		if _, err := store.Save(r); err != nil {
			return err
		}
	}
	logger.Infof("recorded %d results", len(results))
	return nil
}

func timeModes(ctx context.Context, config *core.Config, logger *logrus.Logger) ([]speed.Result, error) {
	var results []speed.Result
	for _, mode := range engine.Modes() {
		eng, err := engine.New(mode, engine.Options{Workers: config.Workers, Logger: logger})
		if err != nil {
			return nil, err
		}
		result, err := speed.Run(ctx, eng, speed.Config{
			Runs:       config.Speed.Runs,
			BufferSize: config.Speed.BufferSize,
			Logger:     logger,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func showHistory(c *cli.Context) error {
	config, logger, err := setup(c)
	if err != nil {
		return err
	}
	store, err := openStore(config, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(c.String("mode"), c.Int("limit"))
	if err != nil {
		return err
	}
	results := make([]speed.Result, len(records))
	for i := range records {
		results[i] = records[i].Result()
	}
	return printResults(c.App.Writer, results)
}

func openStore(config *core.Config, logger *logrus.Logger) (*speed.Store, error) {
	verbose := logger.IsLevelEnabled(logrus.DebugLevel)
	if config.Database.Engine == "postgres" {
		return speed.OpenPostgres(config.DatabaseURL(), verbose)
	}
	dir, err := filepath.Abs(".")
	if err != nil {
		return nil, err
	}
	return speed.OpenSQLite(config.DatabaseFile(dir), verbose)
}

var reportColumns = []string{"mode", "operation", "runs", "bytes", "min", "max", "avg"}

func printResults(w io.Writer, results []speed.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	title := cases.Title(language.English)
	for i, col := range reportColumns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, title.String(col))
	}
	fmt.Fprintln(tw)

	for _, r := range results {
		for _, op := range []struct {
			name   string
			timing speed.Timing
		}{
			{"encrypt", r.Encrypt},
			{"decrypt", r.Decrypt},
		} {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
				r.Mode, op.name, r.Runs, r.BufferSize,
				round(op.timing.Min), round(op.timing.Max), round(op.timing.Avg))
		}
	}
	return tw.Flush()
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Microsecond / 10)
}
