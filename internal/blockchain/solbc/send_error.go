// internal/blockchain/solbc/send_error.go
package solbc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// SimulationError is a send rejected by the node's preflight simulation.
type SimulationError struct {
	Message string
	Reason  string
	Logs    []string
	cause   error
}

func (e *SimulationError) Error() string {
	if e.Reason == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Reason)
}

func (e *SimulationError) Unwrap() error {
	return e.cause
}

// analyzeSendError turns a preflight failure into a SimulationError carrying
// the program log line that explains it. Other errors are returned as is.
func analyzeSendError(err error) error {
	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) || !strings.Contains(rpcErr.Message, "Transaction simulation failed") {
		return err
	}

	simErr := &SimulationError{Message: rpcErr.Message, cause: err}
	data, ok := rpcErr.Data.(map[string]interface{})
	if !ok {
		return simErr
	}
	if logs, ok := data["logs"].([]interface{}); ok {
		for _, entry := range logs {
			if line, ok := entry.(string); ok {
				simErr.Logs = append(simErr.Logs, line)
			}
		}
	}
	simErr.Reason = failureReason(simErr.Logs)
	return simErr
}

// failureReason picks the last log line that reports an error.
func failureReason(logs []string) string {
	for i := len(logs) - 1; i >= 0; i-- {
		line := logs[i]
		lower := strings.ToLower(line)
		if strings.Contains(lower, "error") || strings.Contains(lower, "failed") || strings.Contains(lower, "insufficient") {
			return strings.TrimPrefix(line, "Program log: ")
		}
	}
	return ""
}
