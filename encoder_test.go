package huffzip

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func freqsOf(counts ...uint64) Frequencies {
	var freqs Frequencies
	copy(freqs[:], counts)
	return freqs
}

func TestEncoder(t *testing.T) {
	e, err := NewEncoder(freqsOf(5, 9, 12, 13, 16, 45))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	expectDump := strings.Join([]string{
		"Encoder{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tEncode(0) = \"1100\"\n",
		"\tEncode(1) = \"1101\"\n",
		"\tEncode(2) = \"100\"\n",
		"\tEncode(3) = \"101\"\n",
		"\tEncode(4) = \"111\"\n",
		"\tEncode(5) = \"0\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = e.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	var actualSizes []byte
	for _, entry := range e.Table() {
		actualSizes = append(actualSizes, entry.Code.Size)
	}
	expectSizes := []byte{4, 4, 3, 3, 3, 1}
	if !bytes.Equal(expectSizes, actualSizes) {
		t.Errorf("wrong sizes:\n\texpect: %#v\n\tactual: %#v", expectSizes, actualSizes)
	}

	if _, ok := e.Encode(6); ok {
		t.Error("expected no code for absent symbol 6")
	}
}

func TestEncoder_SingleSymbol(t *testing.T) {
	var freqs Frequencies
	freqs[0x41] = 1000
	e, err := NewEncoder(freqs)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	hc, ok := e.Encode(0x41)
	if !ok || hc != MustMakeCode("0") {
		t.Errorf("expected code \"0\", got %s (ok=%v)", hc, ok)
	}
	if e.MinSize() != 1 || e.MaxSize() != 1 {
		t.Errorf("expected sizes 1 .. 1, got %d .. %d", e.MinSize(), e.MaxSize())
	}
}

func TestEncoder_PrefixFree(t *testing.T) {
	inputs := []string{
		"aaabbc",
		"abracadabra",
		"the quick brown fox jumps over the lazy dog",
		string(allBytes()),
	}
	for _, in := range inputs {
		e, err := NewEncoder(CountFrequencies([]byte(in)))
		if err != nil {
			t.Fatalf("NewEncoder failed: %v", err)
		}
		table := e.Table()
		for i, a := range table {
			if a.Code.Size < 1 {
				t.Errorf("symbol %d has an empty code", a.Symbol)
			}
			for j, b := range table {
				if i != j && b.Code.HasPrefix(a.Code) {
					t.Errorf("code %s of %d is a prefix of code %s of %d", a.Code, a.Symbol, b.Code, b.Symbol)
				}
			}
		}
	}
}

func TestEncoder_PrefixFree_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for iter := 0; iter < 200; iter++ {
		var freqs Frequencies
		numSymbols := 1 + rng.Intn(NumSymbols)
		for i := 0; i < numSymbols; i++ {
			// Mix tiny and huge counts so that some trees get deep.
			count := uint64(1 + rng.Intn(8))
			if rng.Intn(4) == 0 {
				count <<= uint(rng.Intn(40))
			}
			freqs[rng.Intn(NumSymbols)] = count
		}

		e, err := NewEncoder(freqs)
		if err != nil {
			t.Fatalf("iteration %d: NewEncoder failed: %v", iter, err)
		}
		table := e.Table()
		if len(table) != freqs.Len() {
			t.Errorf("iteration %d: %d codes for %d symbols", iter, len(table), freqs.Len())
		}
		if _, err := NewDecoder(table); err != nil {
			t.Errorf("iteration %d: table rejected: %v", iter, err)
		}
		for i, a := range table {
			if a.Code.Size < 1 {
				t.Errorf("iteration %d: symbol %d has an empty code", iter, a.Symbol)
			}
			for j, b := range table {
				if i != j && b.Code.HasPrefix(a.Code) {
					t.Errorf("iteration %d: code %s of %d is a prefix of code %s of %d", iter, a.Code, a.Symbol, b.Code, b.Symbol)
				}
			}
		}
	}
}

func TestEncoder_EncodeAll(t *testing.T) {
	e, err := NewEncoder(CountFrequencies([]byte("aaabbc")))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	payload, padding, err := e.EncodeAll([]byte("aaabbc"))
	if err != nil {
		t.Fatalf("EncodeAll failed: %v", err)
	}
	if expect := []byte{0x1f, 0x00}; !bytes.Equal(expect, payload) {
		t.Errorf("wrong payload:\n\texpect: %#v\n\tactual: %#v", expect, payload)
	}
	if padding != 7 {
		t.Errorf("expected padding 7, got %d", padding)
	}
	bs, err := Unpack(payload, padding)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if expect, actual := "000111110", bs.String(); expect != actual {
		t.Errorf("wrong bits:\n\texpect: %s\n\tactual: %s", expect, actual)
	}

	_, _, err = e.EncodeAll([]byte("abcd"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

// chainTree returns the deepest possible tree over all 256 symbols: every
// internal node has a leaf as its left child.
func chainTree() *Tree {
	t := &Tree{numLeaves: NumSymbols}
	for i := 0; i < NumSymbols; i++ {
		t.nodes = append(t.nodes, node{weight: 1, left: NoNode, right: NoNode, symbol: Symbol(i)})
	}
	prev := NodeID(NumSymbols - 1)
	for i := NumSymbols - 2; i >= 0; i-- {
		id := NodeID(len(t.nodes))
		t.nodes = append(t.nodes, node{weight: t.nodes[prev].weight + 1, left: NodeID(i), right: prev})
		prev = id
	}
	return t
}

func TestEncoder_MaxDepth(t *testing.T) {
	var e Encoder
	if err := e.Init(chainTree()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if e.MinSize() != 1 || e.MaxSize() != MaxCodeSize {
		t.Errorf("expected sizes 1 .. %d, got %d .. %d", MaxCodeSize, e.MinSize(), e.MaxSize())
	}
	if n := e.NumSymbols(); n != NumSymbols {
		t.Errorf("expected %d symbols, got %d", NumSymbols, n)
	}

	d, err := NewDecoder(e.Table())
	if err != nil {
		t.Fatalf("NewDecoder failed: %v", err)
	}
	for _, entry := range e.Table() {
		symbol, ok, _, _ := d.Decode(entry.Code)
		if !ok || symbol != entry.Symbol {
			t.Errorf("Decode(%s) = %d, %v; expected %d", entry.Code, symbol, ok, entry.Symbol)
		}
	}
}

func TestEncoder_CodeTooLong(t *testing.T) {
	// Splice an extra level above the chain so its deepest leaves sit at
	// depth 256.  The walk gives up before it reaches the extra leaf, so
	// the duplicate symbol never gets a code.
	tree := chainTree()
	root := tree.Root()
	extra := NodeID(len(tree.nodes))
	tree.nodes = append(tree.nodes, node{weight: 1, left: NoNode, right: NoNode, symbol: 0})
	tree.nodes = append(tree.nodes, node{weight: tree.Weight(root) + 1, left: root, right: extra})
	tree.numLeaves++

	var e Encoder
	err := e.Init(tree)
	if !errors.Is(err, ErrCodeTooLong) {
		t.Errorf("expected ErrCodeTooLong, got %v", err)
	}
}

func allBytes() []byte {
	out := make([]byte, NumSymbols)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}
