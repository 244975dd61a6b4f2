package huffzip

import (
	"strings"
)

// BitString is a logical sequence of bits, one element per bit.  It is the
// unpacked form that Pack groups into bytes and Unpack expands back into.
type BitString struct {
	bits []bool
}

// MakeBitString returns an empty BitString with room for sizeHint bits.
func MakeBitString(sizeHint int) BitString {
	return BitString{bits: make([]bool, 0, sizeHint)}
}

// ParseBitString constructs a BitString from a string of '0' and '1'
// characters.  Any other character is treated as a 1.
func ParseBitString(bits string) BitString {
	bs := MakeBitString(len(bits))
	for i := 0; i < len(bits); i++ {
		bs.AppendBit(bits[i] != '0')
	}
	return bs
}

// Len returns the number of bits.
func (bs BitString) Len() int {
	return len(bs.bits)
}

// Bit returns the i'th bit, counting from 0.
func (bs BitString) Bit(i int) bool {
	return bs.bits[i]
}

// AppendBit adds one bit to the end.
func (bs *BitString) AppendBit(bit bool) {
	bs.bits = append(bs.bits, bit)
}

// AppendCode adds all bits of hc to the end.
func (bs *BitString) AppendCode(hc Code) {
	for i := 0; i < int(hc.Size); i++ {
		bs.AppendBit(hc.Bit(i))
	}
}

// Equal reports whether bs and other hold the same bits.
func (bs BitString) Equal(other BitString) bool {
	if len(bs.bits) != len(other.bits) {
		return false
	}
	for i, bit := range bs.bits {
		if bit != other.bits[i] {
			return false
		}
	}
	return true
}

// String returns the bits as a string of '0' and '1' characters.
func (bs BitString) String() string {
	var sb strings.Builder
	sb.Grow(len(bs.bits))
	for _, bit := range bs.bits {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
