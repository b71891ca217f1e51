package solbc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSendError_Simulation(t *testing.T) {
	rpcErr := &jsonrpc.RPCError{
		Code:    -32002,
		Message: "Transaction simulation failed: Error processing Instruction 3: custom program error: 0x1",
		Data: map[string]interface{}{
			"logs": []interface{}{
				"Program TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA invoke [1]",
				"Program log: Instruction: Transfer",
				"Program log: Error: insufficient funds",
				"Program TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA failed: custom program error: 0x1",
			},
		},
	}

	err := analyzeSendError(fmt.Errorf("send: %w", rpcErr))

	var simErr *SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.Len(t, simErr.Logs, 4)
	assert.Contains(t, simErr.Reason, "failed: custom program error: 0x1")
	assert.Contains(t, err.Error(), "Transaction simulation failed")

	var unwrapped *jsonrpc.RPCError
	assert.ErrorAs(t, err, &unwrapped)
}

func TestAnalyzeSendError_Passthrough(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Same(t, plain, analyzeSendError(plain))

	other := &jsonrpc.RPCError{Code: -32005, Message: "Node is behind"}
	assert.Equal(t, error(other), analyzeSendError(other))
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "Error: insufficient funds", failureReason([]string{"Program log: Error: insufficient funds", "ok"}))
	assert.Empty(t, failureReason([]string{"Program log: Instruction: Transfer"}))
}
