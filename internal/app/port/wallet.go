package port

import (
	"context"

	"wallet_inspector/internal/domain/entity"
)

// WalletService defines the interface for fetching wallet information.
type WalletService interface {
	WalletDataClient

	// FetchWalletSnapshot fetches all four data categories concurrently. A failed category
	// is reported in the snapshot's error map and does not fail the call.
	FetchWalletSnapshot(ctx context.Context, address string, chain entity.ChainDefinition) (*entity.WalletSnapshot, error)
}
