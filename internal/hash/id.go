package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given bytes. Aggregation maps are keyed by
// this value; equal byte content always produces an equal ID.
func ID(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// IDString computes the xxHash64 of the given string without allocating.
// ID and IDString agree for equal byte content.
func IDString(data string) uint64 {
	return xxhash.Sum64String(data)
}
