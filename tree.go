package huffzip

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/chronos-tachyon/assert"
)

// NodeID identifies a node within a Tree.
type NodeID int32

// NoNode is returned by some functions to clearly indicate that no node is
// being returned.
const NoNode = NodeID(-1)

type node struct {
	weight uint64
	left   NodeID
	right  NodeID
	symbol Symbol
}

// Tree is a Huffman tree.  All nodes live in a single slice and refer to
// their children by index, so the whole tree is released as one unit.
//
// Leaves occupy the first NumLeaves() slots, in ascending Symbol order.
// Internal nodes follow in the order they were created, which means the
// root is always the last node.
type Tree struct {
	nodes     []node
	numLeaves int
}

// BuildTree constructs a Huffman tree from the given frequencies by
// repeatedly merging the two lightest nodes.
//
// Ties between equal weights are broken by NodeID: leaves before internal
// nodes, leaves by ascending Symbol, internal nodes by creation order.  The
// first node popped becomes the left child.
//
// If exactly one symbol is present, the tree consists of a single leaf.
//
func BuildTree(freqs Frequencies) (*Tree, error) {
	numLeaves := freqs.Len()
	if numLeaves == 0 {
		return nil, fmt.Errorf("%w: no symbols to build a tree from", ErrInvalidInput)
	}

	t := &Tree{
		nodes:     make([]node, 0, 2*numLeaves-1),
		numLeaves: numLeaves,
	}

	// Step 1: one leaf per present symbol, then build a minheap.

	h := weightHeap{t: t, list: make([]NodeID, 0, numLeaves)}
	for index, count := range freqs {
		if count == 0 {
			continue
		}
		id := NodeID(len(t.nodes))
		t.nodes = append(t.nodes, node{weight: count, left: NoNode, right: NoNode, symbol: Symbol(index)})
		h.list = append(h.list, id)
	}
	h.Init()

	// Step 2: pop two nodes, combine them into a new internal node, and
	// push that back onto the minheap.

	for h.Len() > 1 {
		a := heap.Pop(&h).(NodeID)
		b := heap.Pop(&h).(NodeID)

		// Compute weight using saturating addition
		wa, wb := t.nodes[a].weight, t.nodes[b].weight
		weight := wa + wb
		if weight < wa {
			weight = math.MaxUint64
		}

		id := NodeID(len(t.nodes))
		t.nodes = append(t.nodes, node{weight: weight, left: a, right: b})
		heap.Push(&h, id)
	}

	root := heap.Pop(&h).(NodeID)
	assert.Assertf(root == t.Root(), "root %d is not the last node %d", root, t.Root())
	return t, nil
}

// Root returns the root node.
func (t *Tree) Root() NodeID {
	return NodeID(len(t.nodes) - 1)
}

// Len returns the total number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, i.e. the number of distinct
// symbols.
func (t *Tree) NumLeaves() int {
	return t.numLeaves
}

// IsLeaf reports whether n is a leaf.
func (t *Tree) IsLeaf(n NodeID) bool {
	return t.at(n).left == NoNode
}

// Weight returns the sum of the frequencies of all leaves below n.
func (t *Tree) Weight(n NodeID) uint64 {
	return t.at(n).weight
}

// Symbol returns the symbol of leaf n.
func (t *Tree) Symbol(n NodeID) Symbol {
	nd := t.at(n)
	assert.Assertf(nd.left == NoNode, "node %d is not a leaf", n)
	return nd.symbol
}

// Children returns the left and right children of internal node n, or
// (NoNode, NoNode) if n is a leaf.
func (t *Tree) Children(n NodeID) (left NodeID, right NodeID) {
	nd := t.at(n)
	return nd.left, nd.right
}

func (t *Tree) at(n NodeID) *node {
	assert.Assertf(n >= 0 && int(n) < len(t.nodes), "node %d out of range [0, %d)", n, len(t.nodes))
	return &t.nodes[n]
}

// type weightHeap {{{

type weightHeap struct {
	t    *Tree
	list []NodeID
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	wa, wb := h.t.nodes[a].weight, h.t.nodes[b].weight
	if wa != wb {
		return wa < wb
	}
	return a < b
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(NodeID))
}

func (h *weightHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)

// }}}
