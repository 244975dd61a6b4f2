package huffzip

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Encoder maps each Symbol to its Huffman code.
type Encoder struct {
	codes      [NumSymbols]Code
	numSymbols int
	minSize    byte
	maxSize    byte
}

// NewEncoder builds a Huffman tree for the given frequencies and returns an
// Encoder initialized from it.
func NewEncoder(freqs Frequencies) (*Encoder, error) {
	t, err := BuildTree(freqs)
	if err != nil {
		return nil, err
	}
	e := new(Encoder)
	if err := e.Init(t); err != nil {
		return nil, err
	}
	return e, nil
}

// Init initializes this Encoder by walking the given tree.  A left edge
// contributes a 0 bit and a right edge a 1 bit.
//
// A tree consisting of a single leaf would naturally give its symbol an
// empty code, which cannot be represented in the bitstream; that symbol is
// assigned the one-bit code "0" instead.
//
// Init fails with ErrCodeTooLong if any leaf lies deeper than MaxCodeSize.
//
func (e *Encoder) Init(t *Tree) error {
	assert.Assertf(t != nil && t.Len() != 0, "Encoder.Init called with an empty tree")

	*e = Encoder{}

	root := t.Root()
	if t.IsLeaf(root) {
		e.codes[t.Symbol(root)] = MustMakeCode("0")
		e.numSymbols = 1
		e.minSize, e.maxSize = 1, 1
		return nil
	}

	// Walk the tree with an explicit stack, mutating a single path Code:
	// a bit is appended when descending into a child and removed again
	// when that child is finished.
	//
	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children
	//
	// Only internal nodes are pushed; leaves are handled in place.

	type stackItem struct {
		n NodeID
		x byte
	}

	stack := make([]stackItem, 0, log2uint32(uint32(t.NumLeaves()))+1)
	var path Code
	var hasMinMax bool
	var tooLong bool

	stackTop := func() *stackItem {
		return &stack[len(stack)-1]
	}

	stackPush := func(n NodeID) {
		stack = append(stack, stackItem{n: n, x: 0})
	}

	stackPop := func() {
		stack = stack[:len(stack)-1]
	}

	processChild := func(child NodeID, bit bool) {
		if !path.Append(bit) {
			tooLong = true
			return
		}

		if !t.IsLeaf(child) {
			stackPush(child)
			return
		}

		symbol := t.Symbol(child)
		assert.Assertf(e.codes[symbol].Size == 0, "symbol %d reached twice", symbol)
		e.codes[symbol] = path
		e.numSymbols++

		size := path.Size
		if !hasMinMax {
			hasMinMax = true
			e.minSize = size
			e.maxSize = size
		} else if e.minSize > size {
			e.minSize = size
		} else if e.maxSize < size {
			e.maxSize = size
		}

		path.Truncate(size - 1)
	}

	// And now the tree-walking loop.
	stackPush(root)
	for len(stack) != 0 && !tooLong {
		top := stackTop()
		x := top.x
		top.x++
		left, right := t.Children(top.n)
		switch x {
		case 0:
			processChild(left, false)
		case 1:
			processChild(right, true)
		case 2:
			stackPop()
			if path.Size != 0 {
				path.Truncate(path.Size - 1)
			}
		}
	}

	if tooLong {
		*e = Encoder{}
		return fmt.Errorf("%w: tree with %d symbols is deeper than %d bits", ErrCodeTooLong, t.NumLeaves(), MaxCodeSize)
	}

	assert.Assertf(e.numSymbols == t.NumLeaves(), "assigned %d codes for %d leaves", e.numSymbols, t.NumLeaves())
	return nil
}

// Encode returns the code for symbol.  The second return value is false if
// symbol does not occur in the input this Encoder was built for.
func (e *Encoder) Encode(symbol Symbol) (Code, bool) {
	hc := e.codes[symbol]
	return hc, hc.Size != 0
}

// MinSize is the bit length of the shortest code.
func (e *Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest code.
func (e *Encoder) MaxSize() byte {
	return e.maxSize
}

// NumSymbols is the number of symbols with a code.
func (e *Encoder) NumSymbols() int {
	return e.numSymbols
}

// Table returns the code of every encodable symbol, in ascending Symbol
// order.  This is what gets stored in a Container so that the receiving end
// can rebuild the same mapping.
func (e *Encoder) Table() []TableEntry {
	out := make([]TableEntry, 0, e.numSymbols)
	for index := range e.codes {
		hc := e.codes[index]
		if hc.Size == 0 {
			continue
		}
		out = append(out, TableEntry{Symbol: Symbol(index), Code: hc})
	}
	return out
}

// EncodeAll writes the code of every byte of data, in order, into a packed
// payload, and returns it together with the number of zero bits that fill
// out its final byte.  It fails with ErrInvalidInput if data contains a
// symbol that this Encoder has no code for.
func (e *Encoder) EncodeAll(data []byte) (payload []byte, padding byte, err error) {
	var totalBits int
	for i, b := range data {
		size := int(e.codes[b].Size)
		if size == 0 {
			return nil, 0, fmt.Errorf("%w: symbol %d at offset %d has no code", ErrInvalidInput, b, i)
		}
		totalBits += size
	}

	p := newPacker(totalBits)
	for _, b := range data {
		p.writeCode(e.codes[b])
	}
	payload, padding = p.close()
	return payload, padding, nil
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e *Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	for index := range e.codes {
		hc := e.codes[index]
		if hc.Size == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", index, hc)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
