package entity

// WalletSnapshot is the composite view of one wallet on one chain.
// Fields whose fetch failed hold their default (nil or empty) and the
// failure message is recorded in Errors.
type WalletSnapshot struct {
	Address       string           `json:"address"`
	ChainID       string           `json:"chainId"`
	ChainName     string           `json:"chainName"`
	NativeBalance *NativeBalance   `json:"nativeBalance"`
	TokenBalances []TokenBalance   `json:"tokenBalances"`
	Transactions  []Transaction    `json:"transactions"`
	Metrics       *ActivityMetrics `json:"metrics"`
	Errors        SnapshotErrors   `json:"errors"`
}

// SnapshotErrors records which snapshot fields could not be fetched.
type SnapshotErrors struct {
	NativeBalance *string `json:"nativeBalance"`
	TokenBalances *string `json:"tokenBalances"`
	Transactions  *string `json:"transactions"`
	Metrics       *string `json:"metrics"`
}

// NewWalletSnapshot returns a snapshot with every data field at its default.
func NewWalletSnapshot(address string, chain ChainDefinition) *WalletSnapshot {
	return &WalletSnapshot{
		Address:       address,
		ChainID:       chain.ChainIDString(),
		ChainName:     chain.Name,
		TokenBalances: []TokenBalance{},
		Transactions:  []Transaction{},
	}
}

// Set records the failure message for the field populated by kind.
func (e *SnapshotErrors) Set(kind FetchKind, message string) {
	switch kind {
	case NativeBalanceFetch:
		e.NativeBalance = &message
	case TokenBalancesFetch:
		e.TokenBalances = &message
	case TransactionsFetch:
		e.Transactions = &message
	case ActivityMetricsFetch:
		e.Metrics = &message
	}
}

// Get returns the failure message recorded for kind, if any.
func (e SnapshotErrors) Get(kind FetchKind) (string, bool) {
	var msg *string
	switch kind {
	case NativeBalanceFetch:
		msg = e.NativeBalance
	case TokenBalancesFetch:
		msg = e.TokenBalances
	case TransactionsFetch:
		msg = e.Transactions
	case ActivityMetricsFetch:
		msg = e.Metrics
	}
	if msg == nil {
		return "", false
	}
	return *msg, true
}

// Count returns the number of failed fields.
func (e SnapshotErrors) Count() int {
	n := 0
	for kind := FetchKind(0); kind < FetchKindCount; kind++ {
		if _, failed := e.Get(kind); failed {
			n++
		}
	}
	return n
}
