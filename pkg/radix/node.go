package radix

import "fmt"

// node is a single vertex of the tree.
//
// Children live in a lazily allocated table of buckets; a child sits in
// bucket first%len(table) and collisions are chained through next. The
// table slot owns the head of a chain and every node owns the rest of it.
type node[V any] struct {
	edge     label      // compressed symbols on the incoming edge, empty for the root
	first    byte       // first symbol of edge, selects the bucket in the parent table
	value    V          // payload, meaningful only when hasValue is set
	hasValue bool       // a key terminates exactly here
	table    []*node[V] // child buckets, nil until the first child is attached
	count    int        // live children reachable from table
	next     *node[V]   // next sibling in the same bucket of the parent table
}

func newNode[V any](a Alphabet, key []byte, from int, to int) *node[V] {
	edge := newLabel(a, key, from, to)
	return &node[V]{
		edge:  edge,
		first: edge.at(a, 0),
	}
}

// isLeaf reports whether the node has no children.
func (n *node[V]) isLeaf() bool {
	return n.count == 0
}

// find returns the child whose edge starts with sym, or nil.
func (n *node[V]) find(sym byte) *node[V] {
	if n.table == nil {
		return nil
	}
	for child := n.table[int(sym)%len(n.table)]; child != nil; child = child.next {
		if child.first == sym {
			return child
		}
	}
	return nil
}

// put links child into the bucket selected by its first symbol,
// allocating the table on the first child.
func (n *node[V]) put(buckets int, child *node[V]) {
	if n.table == nil {
		n.table = make([]*node[V], buckets)
	}
	slot := &n.table[int(child.first)%len(n.table)]
	for ; *slot != nil; slot = &(*slot).next {
		if (*slot).first == child.first {
			panic(fmt.Sprintf("[BUG] put: a child starting with symbol %d is already linked", child.first))
		}
	}
	child.next = nil
	*slot = child
	n.count++
}

// unlink removes child from its bucket chain, relinking the chain around it.
// It reports whether child was found.
func (n *node[V]) unlink(child *node[V]) bool {
	if n.table == nil {
		return false
	}
	for slot := &n.table[int(child.first)%len(n.table)]; *slot != nil; slot = &(*slot).next {
		if *slot == child {
			*slot = child.next
			child.next = nil
			n.count--
			if n.count == 0 {
				n.table = nil
			}
			return true
		}
	}
	return false
}

// only returns the single child of a node with exactly one child.
func (n *node[V]) only() *node[V] {
	if n.count != 1 {
		panic(fmt.Sprintf("[BUG] only: node has %d children", n.count))
	}
	for _, head := range n.table {
		if head != nil {
			return head
		}
	}
	panic("[BUG] only: child count is 1 but the table is empty")
}

// forEachChild applies f to every child, bucket by bucket and in chain order.
// Iteration stops as soon as f returns false.
func (n *node[V]) forEachChild(f func(child *node[V]) bool) bool {
	for _, head := range n.table {
		for child := head; child != nil; {
			// f may unlink child, so remember the rest of the chain first
			next := child.next
			if !f(child) {
				return false
			}
			child = next
		}
	}
	return true
}

// takeValue detaches the payload from the node and returns it.
func (n *node[V]) takeValue() V {
	var zero V
	value := n.value
	n.value = zero
	n.hasValue = false
	return value
}
