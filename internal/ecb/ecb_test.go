package ecb

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dcrodman/edes/internal/edes"
)

func TestEncrypt_KnownAnswer(t *testing.T) {
	// Matches `openssl enc -des-ecb -nopad` over "HELLO!!!88888888" with the
	// parity-adjusted key 70617373766e7364.
	want, _ := hex.DecodeString("35999fb0d8129fb167a128e684ab22e9")

	got, err := Encrypt([]byte("HELLO!!!"), []byte("password"))
	if err != nil {
		t.Fatalf("Encrypt() returned error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Encrypt() produced unexpected ciphertext; diff:\n%s", diff)
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	password := []byte("legacy-password-longer-than-eight")
	for _, plaintext := range []string{"", "a", "exactly8", "a longer message spanning blocks"} {
		ciphertext, err := Encrypt([]byte(plaintext), password)
		if err != nil {
			t.Fatalf("Encrypt(%q) returned error: %v", plaintext, err)
		}
		if len(ciphertext)%edes.BlockSize != 0 {
			t.Fatalf("Encrypt(%q) produced %d bytes", plaintext, len(ciphertext))
		}
		got, err := Decrypt(ciphertext, password)
		if err != nil {
			t.Fatalf("Decrypt() returned error: %v", err)
		}
		if !bytes.Equal(got, []byte(plaintext)) {
			t.Errorf("Decrypt() = %q, want %q", got, plaintext)
		}
	}
}

func TestEncrypt_OnlyFirstEightPasswordBytesMatter(t *testing.T) {
	a, err := Encrypt([]byte("message"), []byte("12345678-suffix-a"))
	if err != nil {
		t.Fatalf("Encrypt() returned error: %v", err)
	}
	b, err := Encrypt([]byte("message"), []byte("12345678-suffix-b"))
	if err != nil {
		t.Fatalf("Encrypt() returned error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("expected passwords sharing an 8 byte prefix to produce the same ciphertext")
	}
}

func TestShortPassword(t *testing.T) {
	if _, err := Encrypt([]byte("data"), []byte("short")); !errors.Is(err, ErrShortPassword) {
		t.Errorf("Encrypt() error = %v, want %v", err, ErrShortPassword)
	}
	if _, err := Decrypt(make([]byte, 8), []byte("short")); !errors.Is(err, ErrShortPassword) {
		t.Errorf("Decrypt() error = %v, want %v", err, ErrShortPassword)
	}
}

func TestDecrypt_InvalidInputLength(t *testing.T) {
	if _, err := Decrypt(make([]byte, 12), []byte("password")); !errors.Is(err, edes.ErrInvalidInputLength) {
		t.Errorf("Decrypt() error = %v, want %v", err, edes.ErrInvalidInputLength)
	}
}

func TestSetOddParity(t *testing.T) {
	key := [KeySize]byte{'p', 'a', 's', 's', 'w', 'o', 'r', 'd'}
	setOddParity(&key)
	if got := hex.EncodeToString(key[:]); got != "70617373766e7364" {
		t.Errorf("setOddParity() = %s, want 70617373766e7364", got)
	}
}

func TestEncryptBlocks(t *testing.T) {
	block, err := NewCipher([]byte("password"))
	if err != nil {
		t.Fatalf("NewCipher() returned error: %v", err)
	}
	want, _ := hex.DecodeString("35999fb0d8129fb167a128e684ab22e9")
	src := []byte("HELLO!!!88888888")

	dst := make([]byte, len(src))
	EncryptBlocks(block, dst, src)
	if diff := cmp.Diff(want, dst); diff != "" {
		t.Errorf("unexpected ciphertext (-want +got):\n%s", diff)
	}
	if string(src) != "HELLO!!!88888888" {
		t.Errorf("EncryptBlocks() modified its input: %q", src)
	}

	inPlace := append([]byte(nil), src...)
	EncryptBlocks(block, inPlace, inPlace)
	if !bytes.Equal(inPlace, dst) {
		t.Errorf("in-place encryption = %x, want %x", inPlace, dst)
	}

	DecryptBlocks(block, inPlace, inPlace)
	if string(inPlace) != string(src) {
		t.Errorf("DecryptBlocks() = %q, want %q", inPlace, src)
	}
}
