package cidr

import "log/slog"

type Option func(*Table) *Table
type ComparatorOption func(a *Metadata, b *Metadata) bool

func defaultOptions() *Table {
	return &Table{
		buckets:    2,
		comparator: DefaultComparator,
		logger:     slog.Default(),
	}
}

func WithComparator(comparator ComparatorOption) Option {
	return func(t *Table) *Table {
		t.comparator = comparator
		return t
	}
}

// WithBuckets sets the child table size of both trees. Bit trees never have
// more than two children per node, so anything above two only costs memory.
func WithBuckets(buckets int) Option {
	return func(t *Table) *Table {
		t.buckets = buckets
		return t
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Table) *Table {
		t.logger = logger
		return t
	}
}
