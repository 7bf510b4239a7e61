package engine

import (
	"crypto/cipher"

	"github.com/dcrodman/edes/internal/ecb"
	"github.com/dcrodman/edes/internal/edes"
)

type edesCipher struct {
	sboxes *edes.SBoxSet
}

func newEDESCipher(password []byte) (blockCipher, error) {
	sboxes, err := edes.Schedule(password)
	if err != nil {
		return nil, err
	}
	return &edesCipher{sboxes: sboxes}, nil
}

func (c *edesCipher) blockSize() int { return edes.BlockSize }

func (c *edesCipher) encrypt(dst, src []byte) { edes.EncryptBlocks(dst, src, c.sboxes) }

func (c *edesCipher) decrypt(dst, src []byte) { edes.DecryptBlocks(dst, src, c.sboxes) }

func (c *edesCipher) wipe() { c.sboxes.Wipe() }

// desCipher runs the standard library DES block cipher in ECB fashion.
type desCipher struct {
	block cipher.Block
}

func newDESCipher(password []byte) (blockCipher, error) {
	block, err := ecb.NewCipher(password)
	if err != nil {
		return nil, err
	}
	return &desCipher{block: block}, nil
}

func (c *desCipher) blockSize() int { return c.block.BlockSize() }

func (c *desCipher) encrypt(dst, src []byte) { ecb.EncryptBlocks(c.block, dst, src) }

func (c *desCipher) decrypt(dst, src []byte) { ecb.DecryptBlocks(c.block, dst, src) }

// The DES key schedule lives inside crypto/des and cannot be cleared.
func (c *desCipher) wipe() {}
