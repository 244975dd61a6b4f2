package huffzip

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxCodeSize is the longest code the container format can describe: its
// length field is a single byte.
const MaxCodeSize = 255

const codeBytes = (MaxCodeSize + 7) / 8

// Code represents a sequence of up to MaxCodeSize bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant bit
	// of Bits[0] is the first bit.  Bits past Size are always zero, so two
	// Codes holding the same bit sequence compare equal.
	Bits [codeBytes]byte
}

// MakeCode constructs a Code from a string of '0' and '1' characters.
func MakeCode(bits string) (Code, error) {
	var hc Code
	if len(bits) > MaxCodeSize {
		return Code{}, fmt.Errorf("code %q has %d bits, max %d", bits, len(bits), MaxCodeSize)
	}
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
			hc.Append(false)
		case '1':
			hc.Append(true)
		default:
			return Code{}, fmt.Errorf("code %q: invalid character %q at index %d", bits, bits[i], i)
		}
	}
	return hc, nil
}

// MustMakeCode is like MakeCode, but panics on error.
func MustMakeCode(bits string) Code {
	hc, err := MakeCode(bits)
	if err != nil {
		panic(err)
	}
	return hc
}

// Bit returns the i'th bit of the code, counting from 0.
func (hc Code) Bit(i int) bool {
	return hc.Bits[i>>3]&(0x80>>uint(i&7)) != 0
}

// Append adds one bit to the end of the code.  It returns false, leaving the
// code unchanged, if the code already holds MaxCodeSize bits.
func (hc *Code) Append(bit bool) bool {
	if hc.Size == MaxCodeSize {
		return false
	}
	if bit {
		i := int(hc.Size)
		hc.Bits[i>>3] |= 0x80 >> uint(i&7)
	}
	hc.Size++
	return true
}

// Truncate shortens the code to size bits.
func (hc *Code) Truncate(size byte) {
	for hc.Size > size {
		hc.Size--
		i := int(hc.Size)
		hc.Bits[i>>3] &^= 0x80 >> uint(i&7)
	}
}

func (hc *Code) flipLast() {
	i := int(hc.Size) - 1
	hc.Bits[i>>3] ^= 0x80 >> uint(i&7)
}

// HasPrefix reports whether p is a prefix of hc.  Every code is a prefix of
// itself.
func (hc Code) HasPrefix(p Code) bool {
	if p.Size > hc.Size {
		return false
	}
	trimmed := hc
	trimmed.Truncate(p.Size)
	return trimmed == p
}

// Bytes returns the packed bits, ceil(Size/8) bytes long.
func (hc Code) Bytes() []byte {
	n := bytesForBits(int(hc.Size))
	out := make([]byte, n)
	copy(out, hc.Bits[:n])
	return out
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(hc.bitString())
}

func (hc Code) bitString() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := 0; i < int(hc.Size); i++ {
		if hc.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// MarshalText renders the code as a string of '0' and '1' characters.
func (hc Code) MarshalText() ([]byte, error) {
	return []byte(hc.bitString()), nil
}

// UnmarshalText parses a string of '0' and '1' characters.
func (hc *Code) UnmarshalText(text []byte) error {
	parsed, err := MakeCode(string(text))
	if err != nil {
		return err
	}
	*hc = parsed
	return nil
}

var _ fmt.Stringer = Code{}
