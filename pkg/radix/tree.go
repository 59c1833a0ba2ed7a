package radix

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
)

// Tree is a compressed prefix trie over keys made of Alphabet symbols.
//
// A Tree is not safe for concurrent use; callers sharing one must serialize
// every operation, including lookups.
type Tree[V any] struct {
	alphabet  Alphabet
	buckets   int
	root      *node[V]
	size      int
	cloner    Cloner[V]
	destroyer Destroyer[V]
	logger    *slog.Logger
}

// New creates an empty tree over the given alphabet.
func New[V any](alphabet Alphabet, opts ...Option[V]) (*Tree[V], error) {
	if alphabet == nil {
		return nil, errors.New("radix: alphabet is required")
	}
	t := &Tree[V]{
		alphabet: alphabet,
		buckets:  DefaultBuckets,
		root:     &node[V]{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		t = opt(t)
	}
	if t.buckets < 1 {
		return nil, errors.Wrapf(ErrInvalidBuckets, "got %d", t.buckets)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t, nil
}

// NewBytes creates a tree keyed by byte strings.
func NewBytes[V any](opts ...Option[V]) (*Tree[V], error) {
	return New(Bytes, opts...)
}

// NewBits creates a tree keyed by bit strings.
func NewBits[V any](opts ...Option[V]) (*Tree[V], error) {
	return New(Bits, opts...)
}

func (t *Tree[V]) Alphabet() Alphabet {
	return t.alphabet
}

func (t *Tree[V]) Buckets() int {
	return t.buckets
}

// Len returns the number of keys holding a value.
func (t *Tree[V]) Len() int {
	return t.size
}

// Insert stores value under the first n symbols of key, replacing (and
// destroying) any value already stored there. The empty key (n == 0) stores
// the value on the root.
//
// n is counted in symbols: bytes for a byte tree, bits for a bit tree.
// Insert panics if n is negative or larger than key can hold.
func (t *Tree[V]) Insert(key []byte, n int, value V) {
	t.mustBeAlive("Insert")
	t.checkKey("Insert", key, n)

	current := t.root
	off := 0
	for off < n {
		child := current.find(t.alphabet.At(key, off))
		if child == nil {
			current = t.attach(current, key, off, n)
			break
		}

		run := child.edge.commonRun(t.alphabet, key, off, n)
		off += run
		if run < child.edge.n {
			// the key leaves the edge half way, cut it at the divergence point
			t.split(child, run)
			if off < n {
				current = t.attach(child, key, off, n)
			} else {
				current = child
			}
			break
		}
		current = child
	}

	t.store(current, value)
}

// attach creates a child of parent carrying key[from:to] and returns it.
func (t *Tree[V]) attach(parent *node[V], key []byte, from int, to int) *node[V] {
	child := newNode[V](t.alphabet, key, from, to)
	parent.put(t.buckets, child)
	return child
}

// split cuts the edge of n after at symbols. The cut-off tail moves into a
// new child together with the children and the payload of n.
func (t *Tree[V]) split(n *node[V], at int) {
	rest := &node[V]{
		edge:     n.edge.tail(t.alphabet, at),
		value:    n.value,
		hasValue: n.hasValue,
		table:    n.table,
		count:    n.count,
	}
	rest.first = rest.edge.at(t.alphabet, 0)

	n.edge.truncate(t.alphabet, at)
	n.table = nil
	n.count = 0
	n.takeValue()
	n.put(t.buckets, rest)

	t.logger.Debug("split edge",
		"alphabet", t.alphabet.Name(),
		"kept", n.edge.format(t.alphabet),
		"moved", rest.edge.format(t.alphabet))
}

// store places value on n, disposing of the value it replaces.
func (t *Tree[V]) store(n *node[V], value V) {
	if n.hasValue {
		t.dispose(n.value)
	} else {
		t.size++
	}
	n.value = t.clone(value)
	n.hasValue = true
}

func (t *Tree[V]) checkKey(op string, key []byte, n int) {
	if n < 0 || n > len(key)*t.alphabet.PerByte() {
		panic(fmt.Sprintf("[BUG] %s: key of %d bytes cannot hold %d %s", op, len(key), n, t.alphabet.Name()))
	}
}

func (t *Tree[V]) mustBeAlive(op string) {
	if t.root == nil {
		panic("[BUG] " + op + ": use of destroyed tree")
	}
}
