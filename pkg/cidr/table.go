// Package cidr maps IP prefixes to metadata and resolves addresses to their
// most specific prefix, on top of bit keyed radix trees.
package cidr

import (
	"log/slog"
	"net/netip"
	"strings"

	"github.com/khalid-nowaf/radixtree/pkg/radix"
	"github.com/pkg/errors"
)

// ErrInvalidPrefix is returned for prefixes and addresses that are not valid.
var ErrInvalidPrefix = errors.New("cidr: invalid prefix")

// Table represents a structure containing both IPv4 and IPv6 prefixes, each
// stored in a separate tree.
type Table struct {
	ipv4       *radix.Tree[*Metadata]
	ipv6       *radix.Tree[*Metadata]
	buckets    int
	comparator ComparatorOption
	logger     *slog.Logger
}

// Record is a stored prefix together with a copy of its Metadata.
type Record struct {
	Prefix   netip.Prefix
	Metadata *Metadata
}

// NewTable initializes a table with separate trees for IPv4 and IPv6.
func NewTable(opts ...Option) (*Table, error) {
	t := defaultOptions()
	for _, opt := range opts {
		t = opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}

	treeOpts := []radix.Option[*Metadata]{
		radix.WithBuckets[*Metadata](t.buckets),
		radix.WithLifecycle[*Metadata](metadataLifecycle{}),
		radix.WithLogger[*Metadata](t.logger),
	}
	var err error
	if t.ipv4, err = radix.NewBits(treeOpts...); err != nil {
		return nil, errors.Wrap(err, "cidr: create IPv4 tree")
	}
	if t.ipv6, err = radix.NewBits(treeOpts...); err != nil {
		return nil, errors.Wrap(err, "cidr: create IPv6 tree")
	}
	return t, nil
}

func (t *Table) tree(isV6 bool) *radix.Tree[*Metadata] {
	if isV6 {
		return t.ipv6
	}
	return t.ipv4
}

// normalize masks prefix and turns IPv4 mapped IPv6 prefixes into IPv4 ones.
func normalize(prefix netip.Prefix) netip.Prefix {
	addr := prefix.Addr()
	if addr.Is4In6() && prefix.Bits() >= 96 {
		prefix = netip.PrefixFrom(addr.Unmap(), prefix.Bits()-96)
	}
	return prefix.Masked()
}

// Insert stores a copy of metadata under prefix. Host bits of prefix are
// ignored and IPv4 mapped prefixes are stored as IPv4. When the prefix is
// already present, the comparator decides which Metadata stays; Insert
// reports whether the new one was stored.
//
// The caller's metadata is left untouched; a nil metadata is replaced by an
// empty one.
func (t *Table) Insert(prefix netip.Prefix, metadata *Metadata) (bool, error) {
	if !prefix.IsValid() {
		return false, errors.Wrapf(ErrInvalidPrefix, "insert %s", prefix)
	}
	prefix = normalize(prefix)
	if metadata == nil {
		metadata = NewMetadata(prefix)
	} else {
		metadata = metadata.Clone()
	}
	metadata.IsV6 = prefix.Addr().Is6()

	tree := t.tree(metadata.IsV6)
	key, n := PrefixToKey(prefix)
	if existing, ok := tree.Get(key, n); ok && !t.comparator(metadata, existing) {
		t.logger.Info("ignored prefix with lower priority",
			"prefix", prefix,
			"priority", metadata.Priority,
			"existing", existing.Priority)
		return false, nil
	}

	tree.Insert(key, n, metadata)
	return true, nil
}

// Get returns a copy of the Metadata stored under exactly prefix.
func (t *Table) Get(prefix netip.Prefix) (*Metadata, bool) {
	if !prefix.IsValid() {
		return nil, false
	}
	prefix = normalize(prefix)
	key, n := PrefixToKey(prefix)
	return t.tree(prefix.Addr().Is6()).Get(key, n)
}

// Lookup searches for the most specific prefix containing addr.
//
// It returns that prefix, a copy of its Metadata, how many stored prefixes
// contain addr, and whether there was any. IPv4 mapped IPv6 addresses are
// looked up as IPv4.
func (t *Table) Lookup(addr netip.Addr) (netip.Prefix, *Metadata, int, bool) {
	if !addr.IsValid() {
		return netip.Prefix{}, nil, 0, false
	}
	addr = addr.Unmap()

	match, ok := t.tree(addr.Is6()).Match(addrToKey(addr), addr.BitLen())
	if !ok {
		return netip.Prefix{}, nil, 0, false
	}
	prefix := netip.PrefixFrom(addr, match.Length).Masked()
	return prefix, match.Value, match.Matches, true
}

// Remove deletes prefix and returns its Metadata.
func (t *Table) Remove(prefix netip.Prefix) (*Metadata, error) {
	if !prefix.IsValid() {
		return nil, errors.Wrapf(ErrInvalidPrefix, "remove %s", prefix)
	}
	prefix = normalize(prefix)
	key, n := PrefixToKey(prefix)
	metadata, ok := t.tree(prefix.Addr().Is6()).Remove(key, n)
	if !ok {
		return nil, errors.Wrapf(radix.ErrNotFound, "remove %s", prefix)
	}
	return metadata, nil
}

// Len returns the number of stored prefixes, both versions included.
func (t *Table) Len() int {
	return t.ipv4.Len() + t.ipv6.Len()
}

// Records lists the stored prefixes of one IP version, parents before their
// more specific prefixes.
func (t *Table) Records(isV6 bool) []Record {
	var (
		records []Record
		path    []string
	)
	for entry := range t.tree(isV6).Dump() {
		path = append(path[:entry.Depth], entry.Label)
		if entry.HasValue {
			records = append(records, Record{
				Prefix:   pathToPrefix(strings.Join(path, ""), isV6),
				Metadata: entry.Value.Clone(),
			})
		}
	}
	return records
}

// Dump renders the tree of one IP version, edges shown as address bits.
func (t *Table) Dump(isV6 bool) string {
	return t.tree(isV6).DumpString()
}

// Clear removes every prefix.
func (t *Table) Clear() {
	t.ipv4.Clear()
	t.ipv6.Clear()
}
