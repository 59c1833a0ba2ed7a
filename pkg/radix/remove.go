package radix

// Remove detaches and returns the value stored under exactly the first n
// symbols of key. The value is handed over as is: it is neither cloned nor
// destroyed, the caller owns it from now on.
//
// Nodes left without a value and without children are unlinked, and nodes
// left without a value and with a single child are merged with that child,
// so the tree stays as compact as if the key had never been inserted.
func (t *Tree[V]) Remove(key []byte, n int) (V, bool) {
	var zero V
	t.mustBeAlive("Remove")
	t.checkKey("Remove", key, n)

	var parent *node[V]
	found, off := t.descend(key, n, func(p *node[V], _ *node[V], _ int) {
		parent = p
	})
	if found == nil || off != n || !found.hasValue {
		return zero, false
	}

	value := found.takeValue()
	t.size--

	switch {
	case found == t.root:
		// the root stays, whatever it holds
	case found.isLeaf():
		if !parent.unlink(found) {
			panic("[BUG] Remove: node is missing from its parent table")
		}
		t.compact(parent)
	default:
		t.compact(found)
	}

	return value, true
}

// Erase removes the value stored under the first n symbols of key and
// destroys it. It reports whether there was a value to erase.
func (t *Tree[V]) Erase(key []byte, n int) bool {
	value, ok := t.Remove(key, n)
	if ok {
		t.dispose(value)
	}
	return ok
}

// compact merges n with its only child for as long as n carries no value
// and has exactly one child. The root is never merged, its edge stays empty.
func (t *Tree[V]) compact(n *node[V]) {
	if n == t.root {
		return
	}
	for !n.hasValue && n.count == 1 {
		child := n.only()

		n.edge = n.edge.concat(t.alphabet, child.edge)
		n.table = child.table
		n.count = child.count
		n.value = child.value
		n.hasValue = child.hasValue

		child.table = nil
		child.count = 0
		child.takeValue()

		t.logger.Debug("compacted edge",
			"alphabet", t.alphabet.Name(),
			"edge", n.edge.format(t.alphabet))
	}
}

// Clear destroys every stored value, the root's included, and leaves an
// empty tree behind.
func (t *Tree[V]) Clear() {
	t.mustBeAlive("Clear")
	t.release()
	t.root = &node[V]{}
}

// Destroy clears the tree and releases its root. Any later use of the tree
// other than lookups, which always miss, panics.
func (t *Tree[V]) Destroy() {
	if t.root == nil {
		return
	}
	t.release()
	t.root = nil
}

// release visits every node once, destroying values and dropping links.
func (t *Tree[V]) release() {
	stack := []*node[V]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n.forEachChild(func(child *node[V]) bool {
			stack = append(stack, child)
			return true
		})
		if n.hasValue {
			t.dispose(n.takeValue())
		}
		n.table = nil
		n.count = 0
		n.next = nil
	}
	t.size = 0
}
