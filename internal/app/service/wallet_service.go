package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// SnapshotTransactionLimit is the transaction page size used for a full snapshot.
const SnapshotTransactionLimit = 20

// WalletServiceImpl implements port.WalletService on top of a WalletDataClient.
type WalletServiceImpl struct {
	port.WalletDataClient
	logger port.Logger
}

// NewWalletService creates a new instance of WalletServiceImpl.
func NewWalletService(client port.WalletDataClient, l port.Logger) port.WalletService {
	return &WalletServiceImpl{
		WalletDataClient: client,
		logger:           l,
	}
}

// FetchWalletSnapshot reads the four wallet data categories concurrently and
// waits for all of them. A failed read leaves its field at the default and
// records the message in the snapshot's error map; it never cancels the others.
// An error is returned only when a read panics.
func (s *WalletServiceImpl) FetchWalletSnapshot(ctx context.Context, address string, chain entity.ChainDefinition) (*entity.WalletSnapshot, error) {
	s.logger.Debug("Fetching wallet snapshot", "address", address, "chain_id", chain.ChainID)
	start := time.Now()

	var (
		native   *entity.NativeBalance
		tokens   []entity.TokenBalance
		txs      []entity.Transaction
		activity *entity.ActivityMetrics
		failures [entity.FetchKindCount]error
	)

	// Each task writes only its own result slot, so no lock is needed.
	tasks := [entity.FetchKindCount]func() error{
		entity.NativeBalanceFetch: func() (err error) {
			native, err = s.FetchNativeBalance(ctx, address, chain)
			return err
		},
		entity.TokenBalancesFetch: func() (err error) {
			tokens, err = s.FetchTokenBalances(ctx, address, chain)
			return err
		},
		entity.TransactionsFetch: func() (err error) {
			txs, err = s.FetchTransactions(ctx, address, chain, SnapshotTransactionLimit)
			return err
		},
		entity.ActivityMetricsFetch: func() (err error) {
			activity, err = s.FetchActivityMetrics(ctx, address, chain)
			return err
		},
	}

	var eg errgroup.Group
	for kind, task := range tasks {
		kind, task := entity.FetchKind(kind), task
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("Panic while fetching wallet data",
						"kind", kind.String(), "panic", r, "stack", string(debug.Stack()))
					err = fmt.Errorf("%w: %s fetch panicked: %v", entity.ErrInternalFault, kind, r)
				}
			}()
			failures[kind] = task()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	snapshot := entity.NewWalletSnapshot(address, chain)
	if failures[entity.NativeBalanceFetch] == nil {
		snapshot.NativeBalance = native
	}
	if failures[entity.TokenBalancesFetch] == nil && tokens != nil {
		snapshot.TokenBalances = tokens
	}
	if failures[entity.TransactionsFetch] == nil && txs != nil {
		snapshot.Transactions = txs
	}
	if failures[entity.ActivityMetricsFetch] == nil {
		snapshot.Metrics = activity
	}

	for i, err := range failures {
		if err == nil {
			continue
		}
		kind := entity.FetchKind(i)
		snapshot.Errors.Set(kind, err.Error())
		metrics.SnapshotFetchFailures.WithLabelValues(kind.Field()).Inc()
		s.logger.Warn("Wallet data fetch failed, field left empty",
			"address", address, "chain_id", chain.ChainID, "field", kind.Field(), "error", err)
	}

	s.logger.Info("Wallet snapshot fetched",
		"address", address,
		"chain_id", chain.ChainID,
		"failed_fields", snapshot.Errors.Count(),
		"duration", time.Since(start))
	return snapshot, nil
}
