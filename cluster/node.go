package cluster

// Node is a cluster tree node: an index set, opaque children, and a
// mutable side-channel slot used by admissibility conditions to cache a
// bounding box across invocations. That cache is owned by the
// admissibility condition, not by Node itself — Node only holds the slot;
// Clean releases it.
type Node struct {
	Indices  *IndexSet
	Children []*Node

	cache any
}

// NewNode wraps an index set as a leaf node with no children.
func NewNode(indices *IndexSet) *Node {
	return &Node{Indices: indices}
}

// Cache returns the admissibility condition's cached value for this node,
// or nil if none has been set.
func (n *Node) Cache() any { return n.cache }

// SetCache stores an admissibility condition's cached value on this node.
func (n *Node) SetCache(v any) { n.cache = v }

// Clean releases the cached value. Must be called by the owning
// admissibility condition before the tree is destroyed.
func (n *Node) Clean() { n.cache = nil }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }
