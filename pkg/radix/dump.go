package radix

import (
	"fmt"
	"iter"
	"strings"
)

// Entry describes one node as seen by Dump.
type Entry[V any] struct {
	Depth    int    // 0 for the root
	Label    string // edge symbols, formatted by the tree's Alphabet
	Value    V      // the stored value itself, not a clone
	HasValue bool
}

// Dump lazily yields every node in pre-order: a node first, then its
// children bucket by bucket. It is meant for debugging, the order of
// siblings depends on the bucket count and carries no meaning.
//
// The tree must not be modified while the sequence is being consumed.
func (t *Tree[V]) Dump() iter.Seq[Entry[V]] {
	return func(yield func(Entry[V]) bool) {
		if t.root == nil {
			return
		}
		t.dumpNode(t.root, 0, yield)
	}
}

func (t *Tree[V]) dumpNode(n *node[V], depth int, yield func(Entry[V]) bool) bool {
	entry := Entry[V]{
		Depth:    depth,
		Label:    n.edge.format(t.alphabet),
		Value:    n.value,
		HasValue: n.hasValue,
	}
	if !yield(entry) {
		return false
	}
	return n.forEachChild(func(child *node[V]) bool {
		return t.dumpNode(child, depth+1, yield)
	})
}

// DumpString renders Dump as one tab indented " - label => [value]" line per node.
func (t *Tree[V]) DumpString() string {
	var sb strings.Builder
	for entry := range t.Dump() {
		sb.WriteString(strings.Repeat("\t", entry.Depth))
		value := ""
		if entry.HasValue {
			value = fmt.Sprint(entry.Value)
		}
		fmt.Fprintf(&sb, " - %s => [%s]\n", entry.Label, value)
	}
	return sb.String()
}
