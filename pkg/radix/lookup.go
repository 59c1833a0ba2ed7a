package radix

// descend walks the first n symbols of key down from the root. visit is
// called for the root and then for every node whose whole edge got matched,
// together with that node's parent (nil for the root) and the number of
// symbols consumed so far.
//
// It returns the last node reached and how many symbols were consumed. The
// node is nil when the key ran out or diverged in the middle of an edge.
func (t *Tree[V]) descend(key []byte, n int, visit func(parent *node[V], current *node[V], off int)) (*node[V], int) {
	current := t.root
	if visit != nil {
		visit(nil, current, 0)
	}

	off := 0
	for off < n {
		child := current.find(t.alphabet.At(key, off))
		if child == nil {
			break
		}
		run := child.edge.commonRun(t.alphabet, key, off, n)
		off += run
		if run < child.edge.n {
			return nil, off
		}
		if visit != nil {
			visit(current, child, off)
		}
		current = child
	}
	return current, off
}

// Get returns the value stored under exactly the first n symbols of key.
func (t *Tree[V]) Get(key []byte, n int) (V, bool) {
	var zero V
	if t.root == nil {
		return zero, false
	}
	t.checkKey("Get", key, n)

	found, off := t.descend(key, n, nil)
	if found == nil || off != n || !found.hasValue {
		return zero, false
	}
	return t.clone(found.value), true
}

// Has reports whether a value is stored under exactly the first n symbols of key.
func (t *Tree[V]) Has(key []byte, n int) bool {
	if t.root == nil {
		return false
	}
	t.checkKey("Has", key, n)

	found, off := t.descend(key, n, nil)
	return found != nil && off == n && found.hasValue
}

// LongestPrefix finds the most specific stored key that is a prefix of the
// first n symbols of key, the root (empty key) included.
//
// It returns that key's value, the number of stored keys met along the path
// (all of them prefixes of key, the returned one being the longest) and
// whether any was found at all.
func (t *Tree[V]) LongestPrefix(key []byte, n int) (V, int, bool) {
	m, ok := t.Match(key, n)
	return m.Value, m.Matches, ok
}

// Match describes the result of a longest prefix search.
type Match[V any] struct {
	Value   V
	Length  int // symbols of the matched key
	Matches int // stored keys met along the path
}

// Match is LongestPrefix, also reporting the length of the matched key.
func (t *Tree[V]) Match(key []byte, n int) (Match[V], bool) {
	if t.root == nil {
		return Match[V]{}, false
	}
	t.checkKey("Match", key, n)

	var (
		best   *node[V]
		result Match[V]
	)
	t.descend(key, n, func(_ *node[V], current *node[V], off int) {
		if current.hasValue {
			best = current
			result.Length = off
			result.Matches++
		}
	})

	if best == nil {
		return Match[V]{}, false
	}
	result.Value = t.clone(best.value)
	return result, true
}
