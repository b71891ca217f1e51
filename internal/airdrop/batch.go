// internal/airdrop/batch.go
package airdrop

// Chunk splits items into consecutive groups of size, the last group holding
// the remainder. A size below 1 is treated as 1. Each group is a sub-slice of
// items with its capacity capped, so appending to a group never writes into
// items.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	if len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}
