package entity

import "encoding/json"

// Method labels assigned to transactions without a decoded log event.
const (
	MethodTransfer            = "Transfer"
	MethodContractCall        = "Contract Call"
	MethodContractInteraction = "Contract Interaction"
)

// Transaction is a normalized view of one wallet transaction.
// Value is the raw native amount in wei. GasSpent and GasPrice keep the
// numeric literal reported by the indexer.
type Transaction struct {
	Hash        string      `json:"hash"`
	BlockHeight uint64      `json:"blockHeight"`
	Timestamp   string      `json:"timestamp"`
	From        string      `json:"from"`
	To          *string     `json:"to"` // nil for contract creation
	Value       string      `json:"value"`
	GasSpent    json.Number `json:"gasSpent"`
	GasPrice    json.Number `json:"gasPrice"`
	Successful  bool        `json:"successful"`
	Method      string      `json:"method"`
}

// ActivityMetrics summarises wallet activity over the most recent sampled transactions.
// FirstActivity is the oldest transaction of the sample, not necessarily the wallet's first.
type ActivityMetrics struct {
	TotalTransactions int64   `json:"totalTransactions"`
	FirstActivity     *string `json:"firstActivity"`
	LastActivity      *string `json:"lastActivity"`
	TotalGasSpent     string  `json:"totalGasSpent"` // wei, decimal string
}

// EmptyActivityMetrics is the result for a wallet with no transactions.
func EmptyActivityMetrics() *ActivityMetrics {
	return &ActivityMetrics{TotalGasSpent: "0"}
}
