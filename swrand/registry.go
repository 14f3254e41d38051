package swrand

import (
	"sync"

	"github.com/tidwall/btree"
)

func nodeByObjectIDLess(a, b *Node) bool {
	return a.Object.ID() < b.Object.ID()
}

// NodeRegistry is the process-wide mapping from object id to Node. It is
// protected by a single mutex whose critical section is trivial (insert
// is the only mutating operation), and it yields the graph's entry
// point: the node from the first Insert call, captured once and never
// replaced for the registry's lifetime.
type NodeRegistry struct {
	mu         sync.Mutex
	tree       *btree.BTreeG[*Node]
	entryPoint *Node
}

// NewNodeRegistry creates an empty registry.
func NewNodeRegistry() *NodeRegistry {
	return &NodeRegistry{tree: btree.NewBTreeG[*Node](nodeByObjectIDLess)}
}

// Insert places node into the registry, keyed by its object id. It never
// checks for a duplicate key; that is the caller's contract. The first
// node ever inserted becomes the permanent entry point.
func (r *NodeRegistry) Insert(node *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entryPoint == nil {
		r.entryPoint = node
	}
	r.tree.Set(node)
}

// EntryPoint returns the fixed seed node every traversal starts from, or
// nil if the registry is empty.
func (r *NodeRegistry) EntryPoint() *Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entryPoint
}

// Size returns the number of nodes currently registered.
func (r *NodeRegistry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.Len()
}

// Ascend calls fn for every node in ascending object-id order, stopping
// early if fn returns false. Used by persistence to write entries in a
// deterministic order.
func (r *NodeRegistry) Ascend(fn func(*Node) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tree.Scan(fn)
}
