// Package engine exposes the available cipher modes behind a single interface
// so that callers can pick one by name. Every mode shares the same external
// contract: padded, block-aligned ciphertext with no header or IV.
package engine

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dcrodman/edes/internal/edes"
)

const (
	ModeEDES   = "e-des"
	ModeDESECB = "des-ecb"
)

// ErrUnknownMode is returned by New for unregistered mode names.
var ErrUnknownMode = errors.New("engine: unknown mode")

// Engine encrypts and decrypts whole messages with a password.
type Engine interface {
	// Name returns the mode name the engine was created with.
	Name() string
	// BlockSize returns the size of the blocks ciphertext is made of.
	BlockSize() int
	// Encrypt pads and encrypts plaintext.
	Encrypt(plaintext, password []byte) ([]byte, error)
	// Decrypt decrypts and unpads ciphertext.
	Decrypt(ciphertext, password []byte) ([]byte, error)
}

// Options configure an Engine.
type Options struct {
	// Number of goroutines blocks are spread across. Values below 2 process
	// the message on the calling goroutine.
	Workers int
	// Logger receives debug output. Nil discards it.
	Logger *logrus.Logger
}

// Internal representation of a keyed cipher capable of transforming runs of
// whole blocks. Implementations must be safe for concurrent use on disjoint
// ranges once constructed.
type blockCipher interface {
	encrypt(dst, src []byte)
	decrypt(dst, src []byte)
	blockSize() int
	wipe()
}

// keyFunc builds a blockCipher for a password.
type keyFunc func(password []byte) (blockCipher, error)

var modes = map[string]keyFunc{
	ModeEDES:   newEDESCipher,
	ModeDESECB: newDESCipher,
}

// Modes returns the registered mode names in sorted order.
func Modes() []string {
	names := make([]string, 0, len(modes))
	for name := range modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the Engine for mode.
func New(mode string, opts Options) (Engine, error) {
	fn, ok := modes[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.Out = io.Discard
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Cipher{name: mode, newCipher: fn, workers: workers, logger: logger}, nil
}

// Cipher is the Engine implementation shared by every mode. A fresh key
// schedule is built for each call and wiped before returning.
type Cipher struct {
	name      string
	newCipher keyFunc
	workers   int
	logger    *logrus.Logger
}

func (c *Cipher) Name() string { return c.name }

func (c *Cipher) BlockSize() int { return edes.BlockSize }

func (c *Cipher) Encrypt(plaintext, password []byte) ([]byte, error) {
	bc, err := c.newCipher(password)
	if err != nil {
		return nil, err
	}
	defer bc.wipe()

	data := edes.Pad(plaintext)
	c.logger.Debugf("%s: encrypting %d blocks with %d workers", c.name, len(data)/bc.blockSize(), c.workers)
	c.run(data, data, bc.blockSize(), bc.encrypt)
	return data, nil
}

func (c *Cipher) Decrypt(ciphertext, password []byte) ([]byte, error) {
	if err := edes.CheckLength(len(ciphertext)); err != nil {
		return nil, err
	}
	bc, err := c.newCipher(password)
	if err != nil {
		return nil, err
	}
	defer bc.wipe()

	data := make([]byte, len(ciphertext))
	c.logger.Debugf("%s: decrypting %d blocks with %d workers", c.name, len(data)/bc.blockSize(), c.workers)
	c.run(data, ciphertext, bc.blockSize(), bc.decrypt)
	return edes.Unpad(data)
}

// run applies fn over src in contiguous block ranges, one per worker. Each
// worker writes only its own range of dst so output order matches input order.
func (c *Cipher) run(dst, src []byte, blockSize int, fn func(dst, src []byte)) {
	blocks := len(src) / blockSize
	workers := c.workers
	if workers > blocks {
		workers = blocks
	}
	if workers <= 1 {
		fn(dst, src)
		return
	}

	perWorker := (blocks + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < blocks; start += perWorker {
		end := start + perWorker
		if end > blocks {
			end = blocks
		}
		lo, hi := start*blockSize, end*blockSize

		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(dst[lo:hi], src[lo:hi])
		}()
	}
	wg.Wait()
}
