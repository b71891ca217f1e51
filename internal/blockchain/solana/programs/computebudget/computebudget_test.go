package computebudget

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInstructions(t *testing.T) {
	instructions, err := BuildInstructions(Config{Units: 300_000, MicroLamports: 50_000})
	require.NoError(t, err)
	require.Len(t, instructions, 2)

	limit, err := instructions[0].Data()
	require.NoError(t, err)
	assert.Equal(t, ProgramID, instructions[0].ProgramID())
	assert.Equal(t, SetComputeUnitLimit, limit[0])
	assert.Equal(t, uint32(300_000), binary.LittleEndian.Uint32(limit[1:]))
	assert.Len(t, limit, 5)

	price, err := instructions[1].Data()
	require.NoError(t, err)
	assert.Equal(t, ProgramID, instructions[1].ProgramID())
	assert.Equal(t, SetComputeUnitPrice, price[0])
	assert.Equal(t, uint64(50_000), binary.LittleEndian.Uint64(price[1:]))
	assert.Len(t, price, 9)
}

func TestBuildInstructions_ZeroUnitsFallsBack(t *testing.T) {
	instructions, err := BuildInstructions(Config{})
	require.NoError(t, err)

	limit, err := instructions[0].Data()
	require.NoError(t, err)
	assert.Equal(t, DefaultUnits, binary.LittleEndian.Uint32(limit[1:]))
	assert.Empty(t, instructions[0].Accounts())
}

func TestPriorityFeeLamports(t *testing.T) {
	assert.Equal(t, uint64(15_000), NewDefaultConfig().PriorityFeeLamports())
	assert.Equal(t, uint64(0), Config{Units: 200_000}.PriorityFeeLamports())
}
