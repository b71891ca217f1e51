package airdrop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_Completeness(t *testing.T) {
	for length := 0; length <= 37; length++ {
		items := make([]int, length)
		for i := range items {
			items[i] = i
		}
		for size := 1; size <= 12; size++ {
			chunks := Chunk(items, size)

			require.Len(t, chunks, (length+size-1)/size, "length=%d size=%d", length, size)

			var joined []int
			for i, c := range chunks {
				if i < len(chunks)-1 {
					assert.Len(t, c, size)
				} else {
					assert.GreaterOrEqual(t, len(c), 1)
					assert.LessOrEqual(t, len(c), size)
				}
				joined = append(joined, c...)
			}
			if length == 0 {
				assert.Empty(t, joined)
			} else {
				assert.Equal(t, items, joined)
			}
		}
	}
}

func TestChunk_Sizes(t *testing.T) {
	chunks := Chunk(make([]int, 23), 10)
	require.Len(t, chunks, 3)
	assert.Equal(t, []int{10, 10, 3}, []int{len(chunks[0]), len(chunks[1]), len(chunks[2])})
}

func TestChunk_DoesNotAliasOnAppend(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	chunks := Chunk(items, 2)

	_ = append(chunks[0], 99)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
}

func TestChunk_NonPositiveSize(t *testing.T) {
	assert.Len(t, Chunk([]string{"a", "b", "c"}, 0), 3)
	assert.Len(t, Chunk([]string{"a", "b"}, -4), 2)
	assert.Nil(t, Chunk([]string{}, 5))
}
