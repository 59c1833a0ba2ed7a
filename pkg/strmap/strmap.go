// Package strmap offers string keyed sets and maps backed by a byte radix tree.
package strmap

import (
	"github.com/khalid-nowaf/radixtree/pkg/radix"
	"github.com/pkg/errors"
)

// Map associates string keys with values and answers longest prefix queries.
type Map[V any] struct {
	tree *radix.Tree[V]
}

func NewMap[V any](opts ...radix.Option[V]) (*Map[V], error) {
	tree, err := radix.NewBytes(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "strmap: create map")
	}
	return &Map[V]{tree: tree}, nil
}

// Put stores value under key, replacing any previous value.
func (m *Map[V]) Put(key string, value V) {
	m.tree.Insert([]byte(key), len(key), value)
}

func (m *Map[V]) Get(key string) (V, bool) {
	return m.tree.Get([]byte(key), len(key))
}

// Delete erases key, destroying its value through the map's Destroyer.
// It returns radix.ErrNotFound if key holds no value.
func (m *Map[V]) Delete(key string) error {
	if !m.tree.Erase([]byte(key), len(key)) {
		return errors.Wrapf(radix.ErrNotFound, "strmap: delete %q", key)
	}
	return nil
}

// Take removes key and returns its value without destroying it.
func (m *Map[V]) Take(key string) (V, bool) {
	return m.tree.Remove([]byte(key), len(key))
}

// LongestPrefix returns the value of the longest stored key that prefixes
// key, plus how many stored keys prefix it.
func (m *Map[V]) LongestPrefix(key string) (V, int, bool) {
	return m.tree.LongestPrefix([]byte(key), len(key))
}

func (m *Map[V]) Len() int {
	return m.tree.Len()
}

func (m *Map[V]) Clear() {
	m.tree.Clear()
}

// Tree exposes the underlying tree, for diagnostics such as Dump.
func (m *Map[V]) Tree() *radix.Tree[V] {
	return m.tree
}

// Set is a set of strings.
type Set struct {
	tree *radix.Tree[struct{}]
}

func NewSet(opts ...radix.Option[struct{}]) (*Set, error) {
	tree, err := radix.NewBytes(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "strmap: create set")
	}
	return &Set{tree: tree}, nil
}

func (s *Set) Add(key string) {
	s.tree.Insert([]byte(key), len(key), struct{}{})
}

func (s *Set) Contains(key string) bool {
	return s.tree.Has([]byte(key), len(key))
}

// Remove reports whether key was in the set.
func (s *Set) Remove(key string) bool {
	return s.tree.Erase([]byte(key), len(key))
}

// HasPrefixOf reports whether any member of the set is a prefix of key.
func (s *Set) HasPrefixOf(key string) bool {
	_, _, found := s.tree.LongestPrefix([]byte(key), len(key))
	return found
}

func (s *Set) Len() int {
	return s.tree.Len()
}

func (s *Set) Clear() {
	s.tree.Clear()
}
