// internal/airdrop/estimate.go
package airdrop

import (
	"github.com/shopspring/decimal"
)

// FeeSchedule holds the per-account and per-transaction costs, in SOL.
type FeeSchedule struct {
	RentPerAccount decimal.Decimal
	BaseFee        decimal.Decimal
	PriorityFee    decimal.Decimal
}

// DefaultFeeSchedule returns rough mainnet figures for a token account and a
// prioritized transaction.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		RentPerAccount: decimal.RequireFromString("0.00203928"),
		BaseFee:        decimal.RequireFromString("0.000005"),
		PriorityFee:    decimal.RequireFromString("0.00005"),
	}
}

// CostEstimate is the expected SOL cost of a run.
type CostEstimate struct {
	Transactions int
	AccountRent  decimal.Decimal
	Fees         decimal.Decimal
	Total        decimal.Decimal
}

// EstimateCost prices totalRecipients new token accounts plus one fee per
// transaction of recipientsPerTx transfers. A batch size below 1 is treated
// as 1 and negative counts as 0.
func EstimateCost(totalRecipients, recipientsPerTx int, fees FeeSchedule) CostEstimate {
	totalRecipients = max(totalRecipients, 0)
	recipientsPerTx = max(recipientsPerTx, 1)

	transactions := (totalRecipients + recipientsPerTx - 1) / recipientsPerTx
	rent := decimal.NewFromInt(int64(totalRecipients)).Mul(fees.RentPerAccount)
	txFees := decimal.NewFromInt(int64(transactions)).Mul(fees.BaseFee.Add(fees.PriorityFee))

	return CostEstimate{
		Transactions: transactions,
		AccountRent:  rent,
		Fees:         txFees,
		Total:        rent.Add(txFees),
	}
}
