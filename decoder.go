package huffzip

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Decoder maps Huffman codes back to Symbols.
type Decoder struct {
	table   map[Code]decoderData
	entries []TableEntry
	minSize byte
	maxSize byte
}

// NewDecoder returns a Decoder initialized from the given table.
func NewDecoder(table []TableEntry) (*Decoder, error) {
	d := new(Decoder)
	if err := d.Init(table); err != nil {
		return nil, err
	}
	return d, nil
}

// Init initializes this Decoder from a code table, as stored in a Container.
//
// Init fails with ErrCorruptContainer if the table assigns two codes to one
// symbol, the same code to two symbols, a code of length 0, or a code that
// is a prefix of another code.  A table of 0 symbols is permitted and
// decodes only the empty bit string.
//
func (d *Decoder) Init(table []TableEntry) error {
	*d = Decoder{}

	if len(table) == 0 {
		return nil
	}

	var seen [NumSymbols]bool
	var minSize, maxSize byte
	for index, entry := range table {
		size := entry.Code.Size
		if size == 0 {
			return corruptf("table entry %d: zero-length code for symbol %d", index, entry.Symbol)
		}
		if seen[entry.Symbol] {
			return corruptf("table entry %d: duplicate symbol %d", index, entry.Symbol)
		}
		seen[entry.Symbol] = true

		if index == 0 {
			minSize = size
			maxSize = size
		} else if minSize > size {
			minSize = size
		} else if maxSize < size {
			maxSize = size
		}
	}

	entries := make([]TableEntry, len(table))
	copy(entries, table)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Symbol < entries[j].Symbol
	})

	// len(table) is approximately n×log2(n) when filled.
	numEntries := uint32(len(entries))
	numTableSlots := numEntries * log2uint32(numEntries)

	tbl := make(map[Code]decoderData, numTableSlots)
	for _, entry := range entries {
		if err := fillTable(tbl, entry.Symbol, entry.Code); err != nil {
			return err
		}
	}

	*d = Decoder{
		table:   tbl,
		entries: entries,
		minSize: minSize,
		maxSize: maxSize,
	}
	return nil
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, ok is true and minSize == maxSize
// == hc.Size.
//
// If the Decode fails due to insufficient bits, ok is false and at least
// (minSize - hc.Size) additional bits are required to decode this symbol.
// No more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails because no code starts with hc, ok is false and
// minSize == maxSize == 0.
//
func (d *Decoder) Decode(hc Code) (symbol Symbol, ok bool, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found {
		return 0, false, 0, 0
	}
	return dd.symbol, dd.leaf, dd.minSize, dd.maxSize
}

// DecodeAll decodes a packed payload whose final byte carries padding zero
// bits.  Bits are accumulated into a candidate code until the candidate
// matches a table entry, at which point its symbol is emitted and the
// candidate starts over.
//
// A table holding a single symbol is decoded by count instead: the payload
// must consist of a whole number of copies of that symbol's code.
//
// DecodeAll fails with ErrCorruptContainer if the padding is invalid, if
// the bits can no longer form any code, or if the payload ends in the
// middle of a code.
//
func (d *Decoder) DecodeAll(payload []byte, padding byte) ([]byte, error) {
	u, err := newUnpacker(payload, padding)
	if err != nil {
		return nil, err
	}
	numBits := u.remaining

	switch len(d.entries) {
	case 0:
		if numBits != 0 {
			return nil, corruptf("%d bits of payload with an empty code table", numBits)
		}
		return []byte{}, nil

	case 1:
		entry := d.entries[0]
		size := int(entry.Code.Size)
		if numBits%size != 0 {
			return nil, corruptf("%d payload bits is not a multiple of the %d-bit code of the only symbol", numBits, size)
		}
		count := numBits / size
		for i := 0; i < count; i++ {
			var candidate Code
			for j := 0; j < size; j++ {
				bit, err := u.readBit()
				if err != nil {
					return nil, err
				}
				candidate.Append(bit)
			}
			if candidate != entry.Code {
				return nil, corruptf("bit %d: %s does not match the code %s of the only symbol", i*size, candidate, entry.Code)
			}
		}
		return bytes.Repeat([]byte{byte(entry.Symbol)}, count), nil
	}

	out := make([]byte, 0, numBits/int(d.maxSize)+1)
	var candidate Code
	for i := 0; i < numBits; i++ {
		bit, err := u.readBit()
		if err != nil {
			return nil, err
		}
		candidate.Append(bit)
		dd, found := d.table[candidate]
		if !found {
			return nil, corruptf("bit %d: %s is not a prefix of any code", i, candidate)
		}
		if dd.leaf {
			out = append(out, byte(dd.symbol))
			candidate = Code{}
		}
	}
	if candidate.Size != 0 {
		return nil, corruptf("payload ends inside a code: %d bits left over", candidate.Size)
	}
	return out, nil
}

// Table returns the code table, in ascending Symbol order.
func (d *Decoder) Table() []TableEntry {
	return d.entries
}

// MinSize is the bit length of the shortest legal code.
func (d *Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d *Decoder) MaxSize() byte {
	return d.maxSize
}

// NumSymbols is the number of symbols in the table.
func (d *Decoder) NumSymbols() int {
	return len(d.entries)
}

// String returns a brief description of this Decoder.
func (d *Decoder) String() string {
	return fmt.Sprintf("(Huffman decoder with %d symbols, with coded lengths of %d .. %d bits)", len(d.entries), d.minSize, d.maxSize)
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		if dd.leaf {
			fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
		} else {
			fmt.Fprintf(&buf, "\tDecode(%s) = {-, %d, %d}\n", hc, dd.minSize, dd.maxSize)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

var _ fmt.Stringer = (*Decoder)(nil)

type decoderData struct {
	symbol  Symbol
	leaf    bool
	minSize byte
	maxSize byte
}

// fillTable records hc as the code for symbol, then walks from hc towards
// the root, recording every proper prefix of hc together with the range of
// code sizes reachable from it.
func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) error {
	if dd, found := table[hc]; found {
		if dd.leaf {
			return corruptf("symbols %d and %d share the code %s", dd.symbol, symbol, hc)
		}
		return corruptf("code %s of symbol %d is a prefix of another code", hc, symbol)
	}

	dd := decoderData{symbol, true, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// For each hc "...xxxa", compute "...xxxA" where A = NOT a.

		sibling := hc
		sibling.flipLast()

		// Merge the dd's from "...xxxa" (dd) and "...xxxA" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData{0, false, dd.minSize, dd.maxSize}
		if ddSibling, found := table[sibling]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "...xxxa" to "...xxx".

		hc.Truncate(hc.Size - 1)

		// A complete code may not sit above another one.  If table[hc]
		// already equals ddNew, we can stop recursing.

		if ddOld, found := table[hc]; found {
			if ddOld.leaf {
				return corruptf("code %s of symbol %d is a prefix of the code of symbol %d", hc, ddOld.symbol, symbol)
			}
			if ddOld == ddNew {
				break
			}
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
	return nil
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return bytes.Compare(a.Bits[:], b.Bits[:]) < 0
}

var _ sort.Interface = byCode(nil)

// }}}
