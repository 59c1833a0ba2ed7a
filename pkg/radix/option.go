package radix

import "log/slog"

// DefaultBuckets is the child table size used when WithBuckets is not given.
const DefaultBuckets = 16

type Option[V any] func(*Tree[V]) *Tree[V]

// WithBuckets sets the number of buckets in every child table.
// It is independent of the alphabet size: a bit tree with 16 buckets simply
// never uses more than two of them, and a byte tree with 16 buckets chains
// up to 16 children per bucket.
func WithBuckets[V any](buckets int) Option[V] {
	return func(t *Tree[V]) *Tree[V] {
		t.buckets = buckets
		return t
	}
}

func WithCloner[V any](cloner Cloner[V]) Option[V] {
	return func(t *Tree[V]) *Tree[V] {
		t.cloner = cloner
		return t
	}
}

func WithDestroyer[V any](destroyer Destroyer[V]) Option[V] {
	return func(t *Tree[V]) *Tree[V] {
		t.destroyer = destroyer
		return t
	}
}

// WithLifecycle installs both the clone and the destroy hook.
func WithLifecycle[V any](lifecycle Lifecycle[V]) Option[V] {
	return func(t *Tree[V]) *Tree[V] {
		t.cloner = lifecycle
		t.destroyer = lifecycle
		return t
	}
}

func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(t *Tree[V]) *Tree[V] {
		t.logger = logger
		return t
	}
}
