package edes

import (
	"testing"
)

func identitySBox() *SBox {
	var sbox SBox
	for i := range sbox {
		sbox[i] = byte(i)
	}
	return &sbox
}

func TestFeistelFunction(t *testing.T) {
	tests := []struct {
		name string
		in   half
		want half
	}{
		{
			name: "accumulates the index from the last byte",
			in:   half{1, 2, 3, 4},
			want: half{4, 7, 9, 10},
		},
		{
			name: "index wraps at 256",
			in:   half{0x10, 0x01, 0x80, 0xF0},
			want: half{0xF0, 0x70, 0x71, 0x81},
		},
		{
			name: "zero input",
			in:   half{},
			want: half{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := feistelFunction(tt.in, identitySBox()); got != tt.want {
				t.Errorf("feistelFunction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFeistelFunction_DerivedSBox(t *testing.T) {
	sboxes, err := Schedule([]byte("password12345678"))
	if err != nil {
		t.Fatalf("Schedule() returned error: %v", err)
	}
	want := half{0x6f, 0x03, 0x93, 0x46}
	if got := feistelFunction(half{1, 2, 3, 4}, &sboxes[0]); got != want {
		t.Errorf("feistelFunction() = %x, want %x", got, want)
	}
}

func TestFeistelNetwork_RoundTrip(t *testing.T) {
	sboxes, err := Schedule([]byte("feistel"))
	if err != nil {
		t.Fatalf("Schedule() returned error: %v", err)
	}

	blocks := []Block{
		{},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		{'H', 'E', 'L', 'L', 'O', '!', '!', '!'},
		{0, 1, 2, 3, 4, 5, 6, 7},
	}
	for _, b := range blocks {
		enc := EncryptBlock(b, sboxes)
		if enc == b {
			t.Errorf("EncryptBlock(%x) left the block unchanged", b)
		}
		if got := DecryptBlock(enc, sboxes); got != b {
			t.Errorf("DecryptBlock(EncryptBlock(%x)) = %x", b, got)
		}
	}
}

func TestFeistelNetwork_NonBijectiveSBoxes(t *testing.T) {
	// Every table maps to a constant, which is as far from a permutation as it
	// gets. The network must still invert.
	var sboxes SBoxSet
	for r := range sboxes {
		for i := range sboxes[r] {
			sboxes[r][i] = byte(r*17 + 3)
		}
	}
	b := Block{9, 8, 7, 6, 5, 4, 3, 2}
	if got := DecryptBlock(EncryptBlock(b, &sboxes), &sboxes); got != b {
		t.Errorf("round trip through constant S-boxes = %x, want %x", got, b)
	}
}

func TestEncryptBlock_NoFinalSwap(t *testing.T) {
	// With all-zero tables the round function is zero, so each round only
	// swaps halves. Sixteen swaps leave the halves where they started.
	var sboxes SBoxSet
	b := Block{1, 2, 3, 4, 5, 6, 7, 8}
	if got := EncryptBlock(b, &sboxes); got != b {
		t.Errorf("EncryptBlock() with zero tables = %v, want %v", got, b)
	}
}
