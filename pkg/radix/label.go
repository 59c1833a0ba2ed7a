package radix

// label is the compressed run of symbols on the edge leading into a node.
// buf is owned by the label; off is the symbol offset into buf[0] and is
// always zero for the byte alphabet.
type label struct {
	buf []byte
	off int
	n   int
}

// newLabel copies the bytes covering symbols [from, to) of key.
func newLabel(a Alphabet, key []byte, from int, to int) label {
	unit := a.PerByte()
	lo := from / unit
	hi := lo + bytesFor(a, from%unit, to-from)
	buf := make([]byte, hi-lo)
	copy(buf, key[lo:hi])
	return label{buf: buf, off: from % unit, n: to - from}
}

func (l label) at(a Alphabet, i int) byte {
	return a.At(l.buf, l.off+i)
}

// commonRun counts how many leading symbols of the edge match key[off:keyLen].
func (l label) commonRun(a Alphabet, key []byte, off int, keyLen int) int {
	i := 0
	for off+i < keyLen && i < l.n && a.At(key, off+i) == l.at(a, i) {
		i++
	}
	return i
}

// tail returns an owned copy of the symbols from position from to the end.
func (l label) tail(a Alphabet, from int) label {
	return newLabel(a, l.buf, l.off+from, l.off+l.n)
}

// truncate keeps the first n symbols.
func (l *label) truncate(a Alphabet, n int) {
	l.n = n
	l.buf = l.buf[:bytesFor(a, l.off, n)]
}

// concat returns a new label holding l followed by other.
func (l label) concat(a Alphabet, other label) label {
	total := l.n + other.n
	buf := make([]byte, bytesFor(a, l.off, total))
	copy(buf, l.buf[:bytesFor(a, l.off, l.n)])
	for i := 0; i < other.n; i++ {
		a.Set(buf, l.off+l.n+i, other.at(a, i))
	}
	return label{buf: buf, off: l.off, n: total}
}

func (l label) format(a Alphabet) string {
	return a.Format(l.buf, l.off, l.n)
}
