// Package speed times encryption and decryption of a random buffer for each
// cipher mode, reporting the fastest, slowest and average run.
package speed

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dcrodman/edes/internal/engine"
)

const passwordSize = 8

// Config controls a single speed run.
type Config struct {
	Runs       int
	BufferSize int
	// Source of the random buffer and password. Defaults to crypto/rand.
	Rand io.Reader
	// Logger receives progress output. Nil discards it.
	Logger *logrus.Logger
}

// Timing summarises the durations of one operation over every run.
type Timing struct {
	Min, Max, Avg time.Duration
}

// Result holds the timings for one engine.
type Result struct {
	Mode       string
	Runs       int
	BufferSize int
	Encrypt    Timing
	Decrypt    Timing
}

// Run times cfg.Runs encryptions of a random cfg.BufferSize buffer with eng,
// then cfg.Runs decryptions of the resulting ciphertext. Cancellation is
// checked between runs.
func Run(ctx context.Context, eng engine.Engine, cfg Config) (Result, error) {
	if cfg.Runs < 1 {
		return Result{}, fmt.Errorf("speed: runs must be at least 1, got %d", cfg.Runs)
	}
	if cfg.BufferSize < 1 {
		return Result{}, fmt.Errorf("speed: buffer size must be at least 1, got %d", cfg.BufferSize)
	}
	src := cfg.Rand
	if src == nil {
		src = rand.Reader
	}

	plaintext := make([]byte, cfg.BufferSize)
	if _, err := io.ReadFull(src, plaintext); err != nil {
		return Result{}, fmt.Errorf("speed: error generating buffer: %w", err)
	}
	password := make([]byte, passwordSize)
	if _, err := io.ReadFull(src, password); err != nil {
		return Result{}, fmt.Errorf("speed: error generating password: %w", err)
	}

	if cfg.Logger != nil {
		cfg.Logger.Infof("timing %s over %d runs of %d bytes", eng.Name(), cfg.Runs, cfg.BufferSize)
	}

	var ciphertext []byte
	encTiming, err := timeRuns(ctx, cfg.Runs, func() error {
		var err error
		ciphertext, err = eng.Encrypt(plaintext, password)
		return err
	})
	if err != nil {
		return Result{}, fmt.Errorf("speed: %s encrypt: %w", eng.Name(), err)
	}

	decTiming, err := timeRuns(ctx, cfg.Runs, func() error {
		_, err := eng.Decrypt(ciphertext, password)
		return err
	})
	if err != nil {
		return Result{}, fmt.Errorf("speed: %s decrypt: %w", eng.Name(), err)
	}

	return Result{
		Mode:       eng.Name(),
		Runs:       cfg.Runs,
		BufferSize: cfg.BufferSize,
		Encrypt:    encTiming,
		Decrypt:    decTiming,
	}, nil
}

func timeRuns(ctx context.Context, runs int, fn func() error) (Timing, error) {
	var t Timing
	var total time.Duration
	for i := 0; i < runs; i++ {
		if err := ctx.Err(); err != nil {
			return Timing{}, err
		}

		start := time.Now()
		if err := fn(); err != nil {
			return Timing{}, err
		}
		elapsed := time.Since(start)

		if i == 0 || elapsed < t.Min {
			t.Min = elapsed
		}
		if elapsed > t.Max {
			t.Max = elapsed
		}
		total += elapsed
	}
	t.Avg = total / time.Duration(runs)
	return t, nil
}
