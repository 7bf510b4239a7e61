// Package ecb is the legacy DES-ECB mode. It shares the block size, padding
// and byte layout of E-DES but delegates the block transform to standard DES,
// keyed directly from the first eight bytes of the password.
package ecb

import (
	"crypto/cipher"
	"crypto/des"
	"errors"
	"fmt"

	"github.com/dcrodman/edes/internal/edes"
)

// KeySize is the number of password bytes consumed as the DES key.
const KeySize = 8

// ErrShortPassword is returned when the password cannot fill a DES key.
var ErrShortPassword = errors.New("ecb: password must be at least 8 bytes")

// NewCipher builds the DES block cipher for password. Only the first 8 bytes
// are used; each is adjusted to odd parity as DES keys traditionally are.
func NewCipher(password []byte) (cipher.Block, error) {
	if len(password) < KeySize {
		return nil, ErrShortPassword
	}
	var key [KeySize]byte
	copy(key[:], password)
	setOddParity(&key)

	block, err := des.NewCipher(key[:])
	for i := range key {
		key[i] = 0
	}
	if err != nil {
		return nil, fmt.Errorf("ecb: error creating DES cipher: %w", err)
	}
	return block, nil
}

func setOddParity(key *[KeySize]byte) {
	for i, b := range key {
		b &= 0xFE
		ones := 0
		for v := b; v != 0; v &= v - 1 {
			ones++
		}
		if ones%2 == 0 {
			b |= 1
		}
		key[i] = b
	}
}

// EncryptBlocks encrypts the block-aligned src into dst one block at a time.
// dst and src may overlap entirely but must be the same length.
func EncryptBlocks(block cipher.Block, dst, src []byte) {
	bs := block.BlockSize()
	for i := 0; i+bs <= len(src); i += bs {
		block.Encrypt(dst[i:i+bs], src[i:i+bs])
	}
}

// DecryptBlocks is the inverse of EncryptBlocks.
func DecryptBlocks(block cipher.Block, dst, src []byte) {
	bs := block.BlockSize()
	for i := 0; i+bs <= len(src); i += bs {
		block.Decrypt(dst[i:i+bs], src[i:i+bs])
	}
}

// Encrypt pads plaintext and encrypts each block independently with DES.
func Encrypt(plaintext, password []byte) ([]byte, error) {
	block, err := NewCipher(password)
	if err != nil {
		return nil, err
	}
	ciphertext := edes.Pad(plaintext)
	EncryptBlocks(block, ciphertext, ciphertext)
	return ciphertext, nil
}

// Decrypt reverses Encrypt.
func Decrypt(ciphertext, password []byte) ([]byte, error) {
	if err := edes.CheckLength(len(ciphertext)); err != nil {
		return nil, err
	}
	block, err := NewCipher(password)
	if err != nil {
		return nil, err
	}
	padded := make([]byte, len(ciphertext))
	DecryptBlocks(block, padded, ciphertext)
	return edes.Unpad(padded)
}
