// internal/blockchain/solana/programs/computebudget/computebudget.go
package computebudget

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var ProgramID = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")

// Instruction discriminators.
const (
	SetComputeUnitLimit uint8 = 2
	SetComputeUnitPrice uint8 = 3
)

// Instruction payloads.
type SetComputeUnitLimitInstruction struct {
	Units uint32
}

type SetComputeUnitPriceInstruction struct {
	MicroLamports uint64
}

// Defaults sized for a 10-recipient batch: every recipient costs one ATA
// create_idempotent plus one transfer.
const (
	DefaultUnits         uint32 = 300_000
	DefaultMicroLamports uint64 = 50_000
)

// Config is the compute budget attached to every batch transaction.
type Config struct {
	Units         uint32
	MicroLamports uint64
}

// NewDefaultConfig returns the budget used when nothing is configured.
func NewDefaultConfig() Config {
	return Config{
		Units:         DefaultUnits,
		MicroLamports: DefaultMicroLamports,
	}
}

// PriorityFeeLamports returns the priority fee a transaction pays when it
// consumes the whole unit limit.
func (c Config) PriorityFeeLamports() uint64 {
	return uint64(c.Units) * c.MicroLamports / 1_000_000
}

// BuildInstructions returns the limit instruction followed by the price
// instruction. A zero unit limit falls back to DefaultUnits.
func BuildInstructions(config Config) ([]solana.Instruction, error) {
	if config.Units == 0 {
		config.Units = DefaultUnits
	}

	limitInstruction, err := (&SetComputeUnitLimitInstruction{
		Units: config.Units,
	}).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build compute unit limit instruction: %w", err)
	}

	priceInstruction, err := (&SetComputeUnitPriceInstruction{
		MicroLamports: config.MicroLamports,
	}).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build compute unit price instruction: %w", err)
	}

	return []solana.Instruction{limitInstruction, priceInstruction}, nil
}

// Build creates the SetComputeUnitLimit instruction.
func (instr *SetComputeUnitLimitInstruction) Build() (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, SetComputeUnitLimit); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, instr.Units); err != nil {
		return nil, err
	}
	return solana.NewInstruction(
		ProgramID,
		[]*solana.AccountMeta{},
		buf.Bytes(),
	), nil
}

// Build creates the SetComputeUnitPrice instruction.
func (instr *SetComputeUnitPriceInstruction) Build() (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, SetComputeUnitPrice); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, instr.MicroLamports); err != nil {
		return nil, err
	}
	return solana.NewInstruction(
		ProgramID,
		[]*solana.AccountMeta{},
		buf.Bytes(),
	), nil
}
