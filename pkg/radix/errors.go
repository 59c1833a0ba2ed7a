package radix

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned by wrappers when a key holds no value.
	ErrNotFound = errors.New("radix: key not found")
	// ErrInvalidBuckets is returned by New for a bucket count below one.
	ErrInvalidBuckets = errors.New("radix: bucket count must be at least 1")
)
