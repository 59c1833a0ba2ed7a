package cidr

import (
	"math/bits"
	"net/netip"
)

// PrefixToKey converts a prefix into a bit tree key and its length in bits.
//
// Bit trees read every byte least significant bit first, while addresses are
// compared most significant bit first, so each byte of the address is
// reversed. The host bits of the prefix are cleared.
//
// Example:
//
//	10.0.0.0/8 gives the key {0x50, 0, 0, 0} and the length 8.
//
// It panics if prefix is invalid: validate the input before calling it.
func PrefixToKey(prefix netip.Prefix) ([]byte, int) {
	if !prefix.IsValid() {
		panic("[BUG] PrefixToKey: invalid prefix: validate the input before calling PrefixToKey")
	}
	return addrToKey(prefix.Masked().Addr()), prefix.Bits()
}

// KeyToPrefix is the inverse of PrefixToKey.
func KeyToPrefix(key []byte, n int, isV6 bool) netip.Prefix {
	size := 4
	if isV6 {
		size = 16
	}
	if n < 0 || n > size*8 || len(key)*8 < n {
		panic("[BUG] KeyToPrefix: key cannot hold the requested prefix length")
	}

	raw := make([]byte, size)
	for i := 0; i < len(raw) && i < len(key); i++ {
		raw[i] = bits.Reverse8(key[i])
	}
	addr, _ := netip.AddrFromSlice(raw)
	return netip.PrefixFrom(addr, n).Masked()
}

// pathToPrefix converts a string of '0' and '1' address bits, in address
// order, into a prefix.
func pathToPrefix(path string, isV6 bool) netip.Prefix {
	size := 4
	if isV6 {
		size = 16
	}
	raw := make([]byte, size)
	for i := 0; i < len(path); i++ {
		if path[i] == '1' {
			raw[i/8] |= 1 << (7 - i%8)
		}
	}
	addr, _ := netip.AddrFromSlice(raw)
	return netip.PrefixFrom(addr, len(path))
}

func addrToKey(addr netip.Addr) []byte {
	key := addr.AsSlice()
	for i := range key {
		key[i] = bits.Reverse8(key[i])
	}
	return key
}
