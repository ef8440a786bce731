package wire

import (
	"encoding/binary"
	"fmt"
)

// MaxVarintLen is the maximum number of bytes a uvarint can occupy for a
// uint64 value, matching binary.MaxVarintLen64.
const MaxVarintLen = binary.MaxVarintLen64

// AppendUvarint appends the LEB128 unsigned-varint encoding of v to buf and
// returns the extended slice.
//
// Varints only ever encode non-negative integers; callers that need to
// encode a signed quantity (e.g. a zigzag-reduced value) must do that
// reduction before calling AppendUvarint.
func AppendUvarint(buf []byte, v uint64) []byte {
	return binary.AppendUvarint(buf, v)
}

// UvarintLen returns the number of bytes required to encode v as a uvarint,
// without actually encoding it.
func UvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}

// ReadUvarint decodes a LEB128 unsigned varint from the start of data,
// returning the value and the number of bytes consumed.
//
// It halts on the first byte with the high bit clear. Running off the end
// of data before that byte, or a varint so long that it cannot fit in 64
// bits, is a corrupt-input condition reported via err.
func ReadUvarint(data []byte) (v uint64, n int, err error) {
	v, n = binary.Uvarint(data)
	if n == 0 {
		return 0, 0, fmt.Errorf("wire: varint ran off the end of input (%d bytes available)", len(data))
	}
	if n < 0 {
		return 0, 0, fmt.Errorf("wire: varint overflows 64 bits after %d bytes", -n)
	}

	return v, n, nil
}
