// Package chunk splits slices into fixed-size pages.
package chunk

// Split returns items grouped into consecutive chunks of size. The last chunk
// holds the remainder. An empty input yields an empty, non-nil result.
// size must be positive.
func Split[T any](items []T, size int) [][]T {
	n := len(items) / size
	if len(items)%size != 0 {
		n++
	}
	out := make([][]T, 0, n)
	for start := 0; start < len(items); start += size {
		end := len(items)
		if size < end-start {
			end = start + size
		}
		out = append(out, items[start:end:end])
	}
	return out
}
