package token

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Token2022ProgramID is the Token Extensions program.
var Token2022ProgramID = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

// Program identifies which of the two token programs owns a mint.
type Program int

const (
	ProgramSPL Program = iota
	Program2022
)

// Programs lists every supported token program in discovery order.
var Programs = []Program{ProgramSPL, Program2022}

// ID returns the on-chain program address.
func (p Program) ID() solana.PublicKey {
	if p == Program2022 {
		return Token2022ProgramID
	}
	return solana.TokenProgramID
}

// Label is the short tag shown next to a token in listings.
func (p Program) Label() string {
	if p == Program2022 {
		return "[T22]"
	}
	return "[SPL]"
}

func (p Program) String() string {
	if p == Program2022 {
		return "token-2022"
	}
	return "spl-token"
}

// ProgramFromID maps a program address back to its variant.
func ProgramFromID(id solana.PublicKey) (Program, error) {
	switch {
	case id.Equals(solana.TokenProgramID):
		return ProgramSPL, nil
	case id.Equals(Token2022ProgramID):
		return Program2022, nil
	default:
		return 0, fmt.Errorf("unknown token program %s", id)
	}
}
