// ==================================
// File: internal/wallet/wallet.go
// ==================================
package wallet

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// ErrInvalidKeyFormat is returned when a secret is neither base58 nor a JSON byte array.
var ErrInvalidKeyFormat = errors.New("invalid private key format: expected base58 or JSON array")

// Wallet is the payer keypair. It is loaded once per run and only used for signing.
type Wallet struct {
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey
}

// Load parses a 64-byte secret key given either as base58 or as a JSON array
// of numbers, the two formats produced by the Solana CLI and wallets.
func Load(secret string) (*Wallet, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrInvalidKeyFormat
	}

	if raw, err := base58.Decode(secret); err == nil {
		if w, err := fromSecretKey(raw); err == nil {
			return w, nil
		}
	}

	var numbers []int
	if err := json.Unmarshal([]byte(secret), &numbers); err != nil {
		return nil, ErrInvalidKeyFormat
	}
	raw := make([]byte, len(numbers))
	for i, n := range numbers {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("%w: byte %d out of range", ErrInvalidKeyFormat, i)
		}
		raw[i] = byte(n)
	}
	w, err := fromSecretKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	return w, nil
}

// Generate creates a fresh random wallet.
func Generate() (*Wallet, error) {
	privateKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return &Wallet{
		PrivateKey: privateKey,
		PublicKey:  privateKey.PublicKey(),
	}, nil
}

// fromSecretKey checks that the trailing 32 bytes are the public key of the seed.
func fromSecretKey(raw []byte) (*Wallet, error) {
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: expected %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}
	derived := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
		return nil, errors.New("public key does not match secret seed")
	}
	privateKey := solana.PrivateKey(raw)
	return &Wallet{
		PrivateKey: privateKey,
		PublicKey:  privateKey.PublicKey(),
	}, nil
}

// SignTransaction signs the transaction as the wallet. Extra signers (e.g. a
// freshly generated mint account) can be supplied.
func (w *Wallet) SignTransaction(tx *solana.Transaction, extra ...solana.PrivateKey) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.PublicKey) {
			return &w.PrivateKey
		}
		for _, signer := range extra {
			if signer.PublicKey().Equals(key) {
				privateCopy := signer
				return &privateCopy
			}
		}
		return nil
	})
	return err
}

// SecretBase58 returns the secret key in the format accepted by Load.
func (w *Wallet) SecretBase58() string {
	return base58.Encode(w.PrivateKey)
}

// String returns the wallet address.
func (w *Wallet) String() string {
	return w.PublicKey.String()
}
