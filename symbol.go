package huffzip

import (
	"math"
)

// Symbol represents one byte of input.  It is an opaque identifier, not
// character data.
type Symbol byte

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxUint8)

// NumSymbols is the size of the alphabet.
const NumSymbols = int(MaxSymbol) + 1

// Frequencies holds the number of occurrences of each Symbol.  A symbol with
// a count of 0 does not occur in the input.
type Frequencies [NumSymbols]uint64

// CountFrequencies scans data once and returns the occurrence count of each
// Symbol.
func CountFrequencies(data []byte) Frequencies {
	var freqs Frequencies
	for _, b := range data {
		freqs[b]++
	}
	return freqs
}

// Len returns the number of distinct symbols with a non-zero count.
func (freqs *Frequencies) Len() int {
	var n int
	for _, count := range freqs {
		if count != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts.
func (freqs *Frequencies) Total() uint64 {
	var total uint64
	for _, count := range freqs {
		total += count
	}
	return total
}

// Symbols lists the symbols with a non-zero count in ascending order.
func (freqs *Frequencies) Symbols() []Symbol {
	out := make([]Symbol, 0, freqs.Len())
	for index, count := range freqs {
		if count != 0 {
			out = append(out, Symbol(index))
		}
	}
	return out
}
