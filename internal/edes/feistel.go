package edes

const (
	// BlockSize is the E-DES block size in bytes.
	BlockSize = 8
	// Rounds is the number of Feistel rounds applied to every block.
	Rounds = 16

	halfBlockSize = BlockSize / 2
)

// Block is a single 8-byte unit of cipher input or output.
type Block [BlockSize]byte

type half [halfBlockSize]byte

func split(b Block) (l, r half) {
	copy(l[:], b[:halfBlockSize])
	copy(r[:], b[halfBlockSize:])
	return l, r
}

func join(l, r half) Block {
	var b Block
	copy(b[:halfBlockSize], l[:])
	copy(b[halfBlockSize:], r[:])
	return b
}

// feistelFunction is the round function. The lookup index accumulates the
// input bytes from last to first, so every output byte after the first depends
// on the path taken through the table so far. idx wraps at 256.
func feistelFunction(in half, sbox *SBox) half {
	var out half
	idx := in[3]
	out[0] = sbox[idx]
	idx += in[2]
	out[1] = sbox[idx]
	idx += in[1]
	out[2] = sbox[idx]
	idx += in[0]
	out[3] = sbox[idx]
	return out
}

// EncryptBlock runs the 16 forward rounds over b. The halves are emitted in
// L16 || R16 order with no final swap.
func EncryptBlock(b Block, sboxes *SBoxSet) Block {
	l, r := split(b)
	for round := 0; round < Rounds; round++ {
		f := feistelFunction(r, &sboxes[round])
		for i := range l {
			l[i], r[i] = r[i], l[i]^f[i]
		}
	}
	return join(l, r)
}

// DecryptBlock inverts EncryptBlock by walking the rounds backwards. It does
// not rely on the S-boxes being bijective.
func DecryptBlock(b Block, sboxes *SBoxSet) Block {
	l, r := split(b)
	for round := Rounds - 1; round >= 0; round-- {
		f := feistelFunction(l, &sboxes[round])
		for i := range l {
			l[i], r[i] = r[i]^f[i], l[i]
		}
	}
	return join(l, r)
}
