package edes

const (
	// SBoxSize is the number of entries in a single substitution table.
	SBoxSize = 256
	// NumSBoxes is the number of tables derived per key, one per round.
	NumSBoxes = Rounds

	sboxBufferSize = NumSBoxes * SBoxSize
)

// SBox is a 256-entry substitution table used by a single round.
type SBox [SBoxSize]byte

// SBoxSet holds the per-round tables. Encryption consumes them in order 0..15
// and decryption in reverse.
type SBoxSet [NumSBoxes]SBox

// GenerateSBoxes expands key into 16 S-boxes.
//
// A single permutation of 0..255 is built by walking the identity table and
// swapping each position with one offset by the corresponding key byte. That
// permutation is repeated 16 times and the resulting 4096 bytes are scattered
// with roundRobinShuffle before being cut into tables. Only the base
// permutation is a bijection; the scattered tables generally are not.
func GenerateSBoxes(key Key) *SBoxSet {
	base := basePermutation(key)

	var buf [sboxBufferSize]byte
	for i := 0; i < NumSBoxes; i++ {
		copy(buf[i*SBoxSize:], base[:])
	}

	var shuffled [sboxBufferSize]byte
	roundRobinShuffle(shuffled[:], buf[:])

	sboxes := new(SBoxSet)
	for i := range sboxes {
		copy(sboxes[i][:], shuffled[i*SBoxSize:])
	}

	wipe(base[:])
	wipe(buf[:])
	wipe(shuffled[:])
	return sboxes
}

func basePermutation(key Key) SBox {
	var sbox SBox
	for i := range sbox {
		sbox[i] = byte(i)
	}
	for i := 0; i < SBoxSize; i++ {
		j := (i + int(key[i%KeySize])) % SBoxSize
		sbox[i], sbox[j] = sbox[j], sbox[i]
	}
	return sbox
}

// roundRobinShuffle writes src into dst at positions advancing by an
// ever-growing stride (the triangular numbers mod len). For power-of-two sizes
// such as the S-box buffer every position is reached exactly once. For other
// sizes later writes overwrite earlier ones and unreached positions keep
// whatever dst held, so callers pass a zeroed dst. len(dst) must equal len(src).
func roundRobinShuffle(dst, src []byte) {
	size := len(src)
	shift, next := 1, 0
	for i := 0; i < size; i++ {
		dst[next] = src[i]
		next = (next + shift) % size

		shift++
		if shift >= size {
			shift = 1
		}
	}
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
