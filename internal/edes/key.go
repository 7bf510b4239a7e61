package edes

import "crypto/sha256"

// KeySize is the length in bytes of the key material derived from a password.
const KeySize = sha256.Size

// Key is the material the S-boxes are expanded from.
type Key [KeySize]byte

// DeriveKey hashes password into the 32 bytes of key material used to generate
// the S-boxes. The password is not modified.
func DeriveKey(password []byte) (Key, error) {
	if len(password) == 0 {
		return Key{}, ErrEmptyPassword
	}
	return sha256.Sum256(password), nil
}

// Wipe zeroes the key material.
func (k *Key) Wipe() {
	for i := range k {
		k[i] = 0
	}
}
