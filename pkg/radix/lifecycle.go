package radix

// Cloner duplicates a payload. When configured, the tree clones every value
// it stores and every value it hands back from a lookup.
type Cloner[V any] interface {
	Clone(value V) V
}

// Destroyer disposes of a payload the tree no longer holds: an overwritten
// value, an erased value, or anything still stored on Clear and Destroy.
// Values returned by Remove are never destroyed; they belong to the caller.
type Destroyer[V any] interface {
	Destroy(value V)
}

// Lifecycle combines both hooks.
type Lifecycle[V any] interface {
	Cloner[V]
	Destroyer[V]
}

// CloneFunc adapts a plain function to the Cloner interface.
type CloneFunc[V any] func(value V) V

func (f CloneFunc[V]) Clone(value V) V {
	return f(value)
}

// DestroyFunc adapts a plain function to the Destroyer interface.
type DestroyFunc[V any] func(value V)

func (f DestroyFunc[V]) Destroy(value V) {
	f(value)
}

// clone applies the Cloner, if any.
func (t *Tree[V]) clone(value V) V {
	if t.cloner == nil {
		return value
	}
	return t.cloner.Clone(value)
}

// dispose applies the Destroyer, if any.
func (t *Tree[V]) dispose(value V) {
	if t.destroyer != nil {
		t.destroyer.Destroy(value)
	}
}
