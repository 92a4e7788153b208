package entity

// FetchKind identifies one of the wallet data categories read from the indexer.
type FetchKind int

const (
	// NativeBalanceFetch reads the native asset balance.
	NativeBalanceFetch FetchKind = iota
	// TokenBalancesFetch reads the token balances.
	TokenBalancesFetch
	// TransactionsFetch reads the recent transactions.
	TransactionsFetch
	// ActivityMetricsFetch reads the transaction sample used for activity metrics.
	ActivityMetricsFetch

	FetchKindCount = 4
)

// String returns the human-readable name used in error messages.
func (k FetchKind) String() string {
	switch k {
	case NativeBalanceFetch:
		return "native balance"
	case TokenBalancesFetch:
		return "token balances"
	case TransactionsFetch:
		return "transactions"
	case ActivityMetricsFetch:
		return "activity metrics"
	default:
		return "unknown"
	}
}

// Field returns the snapshot field the kind populates.
func (k FetchKind) Field() string {
	switch k {
	case NativeBalanceFetch:
		return "nativeBalance"
	case TokenBalancesFetch:
		return "tokenBalances"
	case TransactionsFetch:
		return "transactions"
	case ActivityMetricsFetch:
		return "metrics"
	default:
		return "unknown"
	}
}
