package port

import (
	"context"

	"wallet_inspector/internal/domain/entity"
)

// WalletDataClient defines the interface for reading wallet data from a blockchain indexing API.
// Every method issues exactly one upstream request and does not retry.
type WalletDataClient interface {
	// FetchNativeBalance returns the native asset balance, or a zero balance if the indexer has no native entry.
	FetchNativeBalance(ctx context.Context, address string, chain entity.ChainDefinition) (*entity.NativeBalance, error)

	// FetchTokenBalances returns non-zero token balances ordered by USD value, at most 20.
	FetchTokenBalances(ctx context.Context, address string, chain entity.ChainDefinition) ([]entity.TokenBalance, error)

	// FetchTransactions returns up to limit most recent transactions.
	FetchTransactions(ctx context.Context, address string, chain entity.ChainDefinition, limit int) ([]entity.Transaction, error)

	// FetchActivityMetrics computes activity metrics over the most recent 100 transactions.
	FetchActivityMetrics(ctx context.Context, address string, chain entity.ChainDefinition) (*entity.ActivityMetrics, error)
}
