// Package edes implements E-DES, a 16-round Feistel cipher over 8-byte blocks
// whose round functions are driven by substitution tables derived from a
// password.
//
// Blocks are transformed independently (there is no chaining or IV), so equal
// plaintext blocks under the same password produce equal ciphertext blocks.
// The cipher is unauthenticated.
package edes

import (
	"errors"
	"strconv"
)

var (
	// ErrEmptyPassword is returned when a zero-length password is supplied.
	ErrEmptyPassword = errors.New("edes: empty password")
	// ErrInvalidPadding is returned when the final byte of a decrypted message
	// does not encode a pad length between 1 and 8.
	ErrInvalidPadding = errors.New("edes: invalid padding")
	// ErrInvalidInputLength is returned when ciphertext is not a positive
	// multiple of the block size.
	ErrInvalidInputLength = errors.New("edes: invalid input length")
)

// InputLengthError reports the length of a ciphertext that is not block aligned.
type InputLengthError int

func (e InputLengthError) Error() string {
	return "edes: invalid input length " + strconv.Itoa(int(e))
}

func (e InputLengthError) Unwrap() error { return ErrInvalidInputLength }

// CheckLength returns an InputLengthError unless n is a positive multiple of
// BlockSize.
func CheckLength(n int) error {
	if n == 0 || n%BlockSize != 0 {
		return InputLengthError(n)
	}
	return nil
}

// Schedule derives the key material for password, expands it into S-boxes
// and wipes the intermediate key.
func Schedule(password []byte) (*SBoxSet, error) {
	key, err := DeriveKey(password)
	if err != nil {
		return nil, err
	}
	sboxes := GenerateSBoxes(key)
	key.Wipe()
	return sboxes, nil
}

// Wipe zeroes every table in the set.
func (s *SBoxSet) Wipe() {
	for i := range s {
		wipe(s[i][:])
	}
}

// EncryptBlocks encrypts the block-aligned src into dst. dst and src may
// overlap entirely but must be the same length.
func EncryptBlocks(dst, src []byte, sboxes *SBoxSet) {
	for i := 0; i+BlockSize <= len(src); i += BlockSize {
		var b Block
		copy(b[:], src[i:i+BlockSize])
		b = EncryptBlock(b, sboxes)
		copy(dst[i:i+BlockSize], b[:])
	}
}

// DecryptBlocks is the inverse of EncryptBlocks.
func DecryptBlocks(dst, src []byte, sboxes *SBoxSet) {
	for i := 0; i+BlockSize <= len(src); i += BlockSize {
		var b Block
		copy(b[:], src[i:i+BlockSize])
		b = DecryptBlock(b, sboxes)
		copy(dst[i:i+BlockSize], b[:])
	}
}

// Encrypt pads plaintext and encrypts it block by block with S-boxes derived
// from password. The result is always a positive multiple of BlockSize long.
func Encrypt(plaintext, password []byte) ([]byte, error) {
	sboxes, err := Schedule(password)
	if err != nil {
		return nil, err
	}
	defer sboxes.Wipe()

	ciphertext := Pad(plaintext)
	EncryptBlocks(ciphertext, ciphertext, sboxes)
	return ciphertext, nil
}

// Decrypt reverses Encrypt.
func Decrypt(ciphertext, password []byte) ([]byte, error) {
	if err := CheckLength(len(ciphertext)); err != nil {
		return nil, err
	}
	sboxes, err := Schedule(password)
	if err != nil {
		return nil, err
	}
	defer sboxes.Wipe()

	padded := make([]byte, len(ciphertext))
	DecryptBlocks(padded, ciphertext, sboxes)
	return Unpad(padded)
}
