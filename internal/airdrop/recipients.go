// internal/airdrop/recipients.go
package airdrop

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// GenerateRecipients returns n fresh public keys. The private halves are
// dropped on the floor, so nobody can move what is sent to them.
func GenerateRecipients(n int) ([]solana.PublicKey, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative recipient count %d", n)
	}
	recipients := make([]solana.PublicKey, 0, n)
	for i := 0; i < n; i++ {
		key, err := solana.NewRandomPrivateKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate recipient %d: %w", i+1, err)
		}
		recipients = append(recipients, key.PublicKey())
	}
	return recipients, nil
}
