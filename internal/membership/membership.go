// Package membership tracks which cluster owns a raw value.
package membership

// MaxInMemoryMembershipSize (default : 100 MB)
// inputs bigger than this are indexed on disk
var MaxInMemoryMembershipSize = 100 * 1024 * 1024

type Backend interface {
	// Set assigns value to cluster id
	Set(value string, id int)
	// Get returns cluster id owning value
	Get(value string) (int, bool)
	// Len returns number of indexed values
	Len() int
	// Cleanup releases any resources held by backend
	Cleanup()
}

// New returns a backend suitable for byteLen bytes of raw values
// Note: If byteLen is not correct/specified clustering may consume lot of memory
func New(byteLen int) Backend {
	if byteLen <= MaxInMemoryMembershipSize {
		return NewMapBackend()
	}
	return NewHybridBackend()
}
