package edes

// Padding bytes carry the pad length as an ASCII digit ('1' through '8')
// rather than as a raw byte value. A full block of '8' is appended when the
// input is already block aligned, so there is always at least one pad byte.
const paddingBase = '0'

// Pad returns a copy of data extended to a multiple of BlockSize.
func Pad(data []byte) []byte {
	n := BlockSize - len(data)%BlockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(paddingBase + n)
	}
	return padded
}

// Unpad strips the padding added by Pad. Only the final byte is inspected. The
// returned slice aliases padded.
func Unpad(padded []byte) ([]byte, error) {
	if len(padded) == 0 {
		return nil, ErrInvalidPadding
	}
	n := int(padded[len(padded)-1]) - paddingBase
	if n < 1 || n > BlockSize || n > len(padded) {
		return nil, ErrInvalidPadding
	}
	return padded[:len(padded)-n], nil
}
