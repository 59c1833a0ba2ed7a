package cidr

import (
	"fmt"
	"maps"
	"net/netip"
	"slices"
	"strings"
)

// Metadata holds the properties of a prefix: IP version, priority, and
// additional attributes.
type Metadata struct {
	IsV6       bool              // is it an IPv6 prefix
	Priority   []uint8           // compared lexicographically when the same prefix is inserted twice
	Attributes map[string]string // generic key value attributes to hold additional information about the prefix
}

// NewMetadata constructs an empty Metadata for prefix.
func NewMetadata(prefix netip.Prefix) *Metadata {
	return &Metadata{
		IsV6:       prefix.Addr().Is6(),
		Attributes: map[string]string{},
	}
}

// Clone returns a deep copy of m.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	return &Metadata{
		IsV6:       m.IsV6,
		Priority:   slices.Clone(m.Priority),
		Attributes: maps.Clone(m.Attributes),
	}
}

func (m *Metadata) String() string {
	if m == nil {
		return "<nil>"
	}
	keys := slices.Sorted(maps.Keys(m.Attributes))
	attrs := make([]string, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, key+"="+m.Attributes[key])
	}
	return fmt.Sprintf("priority=%v %s", m.Priority, strings.Join(attrs, " "))
}

// metadataLifecycle lets the trees own private copies of every Metadata.
type metadataLifecycle struct{}

func (metadataLifecycle) Clone(m *Metadata) *Metadata {
	return m.Clone()
}

// Destroy wipes a copy the tree no longer holds.
func (metadataLifecycle) Destroy(m *Metadata) {
	if m == nil {
		return
	}
	clear(m.Attributes)
	m.Priority = nil
}

// DefaultComparator reports whether the new Metadata a should replace the
// existing b. Priorities are compared lexicographically, like version
// numbers; when all compared values are equal, a wins.
func DefaultComparator(a *Metadata, b *Metadata) bool {
	for i := range a.Priority {
		if i >= len(b.Priority) {
			return true
		}
		if a.Priority[i] > b.Priority[i] {
			return true
		} else if a.Priority[i] < b.Priority[i] {
			return false
		}
	}
	// they are equal, so a is greater
	return true
}
