// ## Overview
// Package radix implements a compressed prefix trie (radix tree).
// Every edge carries a run of one or more symbols, chains of single child
// nodes are collapsed into one edge, and the tree stays compact after
// removals.
//
// A key is a byte slice together with its length in symbols. What a symbol
// is depends on the tree's Alphabet: with Bytes every byte is a symbol, with
// Bits every bit is one, which gives the fine grained prefixes needed for
// IP style lookups. Both share the same engine.
//
// ## Example usage:
//
//	t, _ := radix.NewBytes[string](radix.WithBuckets[string](32))
//	t.Insert([]byte("a"), 1, "v1")
//	t.Insert([]byte("ab"), 2, "v2")
//
//	v, _ := t.Get([]byte("ab"), 2)                        // "v2"
//	v, matches, _ := t.LongestPrefix([]byte("abcd"), 4)   // "v2", 2
//
//	bits, _ := radix.NewBits[string]()
//	bits.Insert([]byte{0x0a}, 4, "bits 0101") // least significant bit first
//
// Payload lifetime can be managed by the tree through a Cloner and a
// Destroyer (see WithLifecycle). Without them values are stored and handed
// back as they are.
package radix
