package cidr

import (
	"net/netip"
	"testing"

	"github.com/khalid-nowaf/radixtree/pkg/radix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T, opts ...Option) *Table {
	t.Helper()
	table, err := NewTable(opts...)
	require.NoError(t, err)
	return table
}

func makeCidrAttr(cidr string) map[string]string {
	return map[string]string{"cidr": cidr}
}

func TestPrefixToKeyConversion(t *testing.T) {
	testCases := []struct {
		cidr        string
		expectedKey []byte
		expectedLen int
	}{
		{"1.1.1.1/8", []byte{0x80, 0, 0, 0}, 8},
		{"3.1.1.1/8", []byte{0xc0, 0, 0, 0}, 8},
		{"10.0.0.0/8", []byte{0x50, 0, 0, 0}, 8},
		{"0.0.0.0/0", []byte{0, 0, 0, 0}, 0},
		{"2001:db8::ff00:42:8329/16", []byte{0x04, 0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, 16},
	}

	for _, tc := range testCases {
		prefix := netip.MustParsePrefix(tc.cidr)
		key, n := PrefixToKey(prefix)
		assert.Equal(t, tc.expectedKey, key, tc.cidr)
		assert.Equal(t, tc.expectedLen, n, tc.cidr)
	}
}

func TestKeyWalksAddressBitsInOrder(t *testing.T) {
	key, n := PrefixToKey(netip.MustParsePrefix("1.0.0.0/8"))
	assert.Equal(t, "00000001", radix.Bits.Format(key, 0, n))

	key, n = PrefixToKey(netip.MustParsePrefix("2001:db8::/32"))
	assert.Equal(t, "00100000000000010000110110111000", radix.Bits.Format(key, 0, n))
}

func TestKeyToPrefixConversion(t *testing.T) {
	testCases := []struct {
		cidr   string
		isIPv6 bool
	}{
		{"1.1.1.1/8", false},
		{"192.168.1.0/24", false},
		{"192.168.2.0/23", false},
		{"0.0.0.0/0", false},
		{"2001:db8::ff00:42:8329/16", true},
		{"2001:db8:abcd:12:1234::/80", true},
	}

	for _, tc := range testCases {
		prefix := netip.MustParsePrefix(tc.cidr)
		key, n := PrefixToKey(prefix)
		assert.Equal(t, prefix.Masked(), KeyToPrefix(key, n, tc.isIPv6))
	}
}

func TestInvalidConversionsPanic(t *testing.T) {
	assert.Panics(t, func() { PrefixToKey(netip.Prefix{}) })
	assert.Panics(t, func() { KeyToPrefix([]byte{0, 0, 0, 0}, 33, false) })
	assert.Panics(t, func() { KeyToPrefix([]byte{0}, 16, false) })
}

func TestComparator(t *testing.T) {
	comparisons := []struct {
		aPriority []uint8
		bPriority []uint8
		expected  bool
	}{
		{[]uint8{1, 1, 1}, []uint8{1, 1, 0}, true},
		{[]uint8{0, 1, 1}, []uint8{1, 0, 0}, false},
		{[]uint8{1, 1, 1}, []uint8{1, 1, 1}, true},
		{[]uint8{0, 0, 1}, []uint8{0, 1, 0}, false},
		{[]uint8{1, 0, 16}, []uint8{0, 0, 32}, true},
		{[]uint8{1, 1}, []uint8{1}, true},
		{nil, []uint8{1}, true},
	}

	for _, comp := range comparisons {
		a := &Metadata{Priority: comp.aPriority}
		b := &Metadata{Priority: comp.bPriority}
		assert.Equal(t, comp.expected, DefaultComparator(a, b), "%v vs %v", comp.aPriority, comp.bPriority)
	}
}

func TestInsertAndRecords(t *testing.T) {
	table := newTable(t)
	cidrs := []string{"1.1.1.1/8", "2.1.1.1/8", "3.1.1.1/8", "0.0.0.0/0", "2001:db8::ff00:42:8329/16"}

	for _, cidr := range cidrs {
		stored, err := table.Insert(netip.MustParsePrefix(cidr), &Metadata{Attributes: makeCidrAttr(cidr)})
		require.NoError(t, err)
		assert.True(t, stored)
	}
	assert.Equal(t, 5, table.Len())

	var ipv4 []string
	for _, record := range table.Records(false) {
		ipv4 = append(ipv4, record.Prefix.String())
		assert.False(t, record.Metadata.IsV6)
	}
	assert.ElementsMatch(t, []string{"0.0.0.0/0", "1.0.0.0/8", "2.0.0.0/8", "3.0.0.0/8"}, ipv4)
	assert.Equal(t, "0.0.0.0/0", ipv4[0], "Parents are listed before their more specific prefixes")

	ipv6 := table.Records(true)
	require.Len(t, ipv6, 1)
	assert.Equal(t, "2001::/16", ipv6[0].Prefix.String())
	assert.True(t, ipv6[0].Metadata.IsV6)
	assert.Equal(t, "2001:db8::ff00:42:8329/16", ipv6[0].Metadata.Attributes["cidr"])
}

func TestEqualPrefixKeepsHigherPriority(t *testing.T) {
	table := newTable(t)
	prefix := netip.MustParsePrefix("192.168.1.0/24")

	stored, err := table.Insert(prefix, &Metadata{Priority: []uint8{1}, Attributes: map[string]string{"name": "first"}})
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = table.Insert(prefix, &Metadata{Priority: []uint8{0}, Attributes: map[string]string{"name": "low"}})
	require.NoError(t, err)
	assert.False(t, stored, "A lower priority should not replace the existing prefix")

	metadata, ok := table.Get(prefix)
	require.True(t, ok)
	assert.Equal(t, "first", metadata.Attributes["name"])

	stored, err = table.Insert(prefix, &Metadata{Priority: []uint8{2}, Attributes: map[string]string{"name": "high"}})
	require.NoError(t, err)
	assert.True(t, stored)

	metadata, ok = table.Get(prefix)
	require.True(t, ok)
	assert.Equal(t, "high", metadata.Attributes["name"])
	assert.Equal(t, 1, table.Len())
}

func TestWithComparator(t *testing.T) {
	keepFirst := func(a *Metadata, b *Metadata) bool { return false }
	table := newTable(t, WithComparator(keepFirst))
	prefix := netip.MustParsePrefix("10.0.0.0/8")

	_, err := table.Insert(prefix, &Metadata{Attributes: map[string]string{"name": "first"}})
	require.NoError(t, err)
	stored, err := table.Insert(prefix, &Metadata{Priority: []uint8{255}, Attributes: map[string]string{"name": "second"}})
	require.NoError(t, err)
	assert.False(t, stored)

	metadata, _ := table.Get(prefix)
	assert.Equal(t, "first", metadata.Attributes["name"])
}

func TestTableOwnsCopies(t *testing.T) {
	table := newTable(t)
	prefix := netip.MustParsePrefix("10.0.0.0/8")
	metadata := &Metadata{Priority: []uint8{1}, Attributes: map[string]string{"name": "ten"}}

	_, err := table.Insert(prefix, metadata)
	require.NoError(t, err)
	metadata.Attributes["name"] = "changed"

	got, ok := table.Get(prefix)
	require.True(t, ok)
	assert.Equal(t, "ten", got.Attributes["name"], "Insert should store a copy")

	got.Attributes["name"] = "changed again"
	got, _ = table.Get(prefix)
	assert.Equal(t, "ten", got.Attributes["name"], "Get should hand out a copy")
}

func TestInsertLeavesCallerMetadataAlone(t *testing.T) {
	table := newTable(t)
	prefix := netip.MustParsePrefix("::ffff:10.0.0.0/104")
	metadata := &Metadata{IsV6: true, Priority: []uint8{1}}

	stored, err := table.Insert(prefix, metadata)
	require.NoError(t, err)
	assert.True(t, stored)
	assert.True(t, metadata.IsV6, "Insert must not rewrite the caller's metadata")

	got, ok := table.Get(netip.MustParsePrefix("10.0.0.0/8"))
	require.True(t, ok)
	assert.False(t, got.IsV6, "the stored copy describes an IPv4 prefix")

	rejected := &Metadata{IsV6: true, Priority: []uint8{0}}
	stored, err = table.Insert(prefix, rejected)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.True(t, rejected.IsV6, "a rejected metadata must not be rewritten either")
}

func TestLookupIPv4(t *testing.T) {
	table := newTable(t)
	super := netip.MustParsePrefix("192.168.0.0/16")
	sub := netip.MustParsePrefix("192.168.1.1/24")

	_, err := table.Insert(sub, &Metadata{Priority: []uint8{1}, Attributes: makeCidrAttr(sub.String())})
	require.NoError(t, err)
	_, err = table.Insert(super, &Metadata{Priority: []uint8{0}, Attributes: makeCidrAttr(super.String())})
	require.NoError(t, err)

	prefix, metadata, matches, ok := table.Lookup(netip.MustParseAddr("192.168.25.154"))
	require.True(t, ok)
	assert.Equal(t, "192.168.0.0/16", prefix.String())
	assert.Equal(t, super.String(), metadata.Attributes["cidr"])
	assert.Equal(t, 1, matches)

	prefix, metadata, matches, ok = table.Lookup(netip.MustParseAddr("192.168.1.200"))
	require.True(t, ok)
	assert.Equal(t, "192.168.1.0/24", prefix.String())
	assert.Equal(t, sub.String(), metadata.Attributes["cidr"])
	assert.Equal(t, 2, matches)

	_, _, _, ok = table.Lookup(netip.MustParseAddr("10.0.0.1"))
	assert.False(t, ok)

	_, _, _, ok = table.Lookup(netip.Addr{})
	assert.False(t, ok)
}

func TestLookupIPv6(t *testing.T) {
	table := newTable(t)
	super := netip.MustParsePrefix("2001:db8:abcd:12::/64")
	sub := netip.MustParsePrefix("2001:db8:abcd:12:1234::/80")

	_, err := table.Insert(sub, &Metadata{Priority: []uint8{1}, Attributes: makeCidrAttr(sub.String())})
	require.NoError(t, err)
	_, err = table.Insert(super, &Metadata{Priority: []uint8{0}, Attributes: makeCidrAttr(super.String())})
	require.NoError(t, err)

	for _, tc := range []struct {
		addr     string
		expected string
	}{
		{"2001:0db8:abcd:12:1234::", "2001:db8:abcd:12:1234::/80"},
		{"2001:db8:abcd:12:1234::abcd", "2001:db8:abcd:12:1234::/80"},
		{"2001:db8:abcd:12:0000::1", "2001:db8:abcd:12::/64"},
	} {
		prefix, _, _, ok := table.Lookup(netip.MustParseAddr(tc.addr))
		require.True(t, ok, tc.addr)
		assert.Equal(t, tc.expected, prefix.String(), tc.addr)
	}

	_, _, _, ok := table.Lookup(netip.MustParseAddr("192.168.1.1"))
	assert.False(t, ok, "IPv4 addresses never match IPv6 prefixes")
}

func TestDefaultRoute(t *testing.T) {
	table := newTable(t)
	_, err := table.Insert(netip.MustParsePrefix("0.0.0.0/0"), &Metadata{Attributes: map[string]string{"name": "default"}})
	require.NoError(t, err)

	prefix, metadata, matches, ok := table.Lookup(netip.MustParseAddr("8.8.8.8"))
	require.True(t, ok)
	assert.Equal(t, "0.0.0.0/0", prefix.String())
	assert.Equal(t, "default", metadata.Attributes["name"])
	assert.Equal(t, 1, matches)
}

func TestMappedAddressesUseIPv4(t *testing.T) {
	table := newTable(t)
	_, err := table.Insert(netip.MustParsePrefix("::ffff:10.0.0.0/104"), nil)
	require.NoError(t, err)

	metadata, ok := table.Get(netip.MustParsePrefix("10.0.0.0/8"))
	require.True(t, ok)
	assert.False(t, metadata.IsV6)

	prefix, _, _, ok := table.Lookup(netip.MustParseAddr("::ffff:10.2.3.4"))
	require.True(t, ok)
	assert.Equal(t, "10.0.0.0/8", prefix.String())
}

func TestRemove(t *testing.T) {
	table := newTable(t)
	prefix := netip.MustParsePrefix("172.16.0.0/12")
	_, err := table.Insert(prefix, &Metadata{Priority: []uint8{3}})
	require.NoError(t, err)

	metadata, err := table.Remove(netip.MustParsePrefix("172.20.0.0/12"))
	require.NoError(t, err, "Host bits are ignored")
	assert.Equal(t, []uint8{3}, metadata.Priority)
	assert.Equal(t, 0, table.Len())

	_, err = table.Remove(prefix)
	assert.ErrorIs(t, err, radix.ErrNotFound)

	_, err = table.Remove(netip.Prefix{})
	assert.ErrorIs(t, err, ErrInvalidPrefix)
	_, err = table.Insert(netip.Prefix{}, nil)
	assert.ErrorIs(t, err, ErrInvalidPrefix)
}

func TestDump(t *testing.T) {
	table := newTable(t)
	_, err := table.Insert(netip.MustParsePrefix("1.0.0.0/8"), &Metadata{Attributes: map[string]string{"name": "one"}})
	require.NoError(t, err)

	expected := " -  => []\n" +
		"\t - 00000001 => [priority=[] name=one]\n"
	assert.Equal(t, expected, table.Dump(false))
	assert.Equal(t, " -  => []\n", table.Dump(true))

	table.Clear()
	assert.Equal(t, 0, table.Len())
}

func TestInvalidBuckets(t *testing.T) {
	_, err := NewTable(WithBuckets(0))
	assert.ErrorIs(t, err, radix.ErrInvalidBuckets)
}
