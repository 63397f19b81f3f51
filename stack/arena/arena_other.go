//go:build !unix

package arena

// Heap-backed fallback. The Go collector does not move heap objects, so
// the base address stays stable for the region's lifetime.
func acquire(n int) (*Region, error) {
	return &Region{data: make([]byte, n)}, nil
}
