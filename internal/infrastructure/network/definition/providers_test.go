package networkdefinition

import (
	"testing"

	"wallet_inspector/internal/pkg/logger"
)

func TestNewChainRegistry_AllKnownChains(t *testing.T) {
	r, err := NewChainRegistry(logger.NewSlogAdapter(), nil)
	if err != nil {
		t.Fatalf("NewChainRegistry: %v", err)
	}

	all := r.All()
	wantIDs := []uint64{1, 10, 56, 137, 42161, 43114}
	if len(all) != len(wantIDs) {
		t.Fatalf("All: want %d chains, got %d", len(wantIDs), len(all))
	}
	for i, id := range wantIDs {
		if all[i].ChainID != id {
			t.Fatalf("All[%d]: want chain %d, got %d", i, id, all[i].ChainID)
		}
		if all[i].Name == "" {
			t.Fatalf("chain %d has empty name", id)
		}
	}

	eth, ok := r.Lookup("1")
	if !ok || eth.Name != "Ethereum Mainnet" {
		t.Fatalf("Lookup(1): want Ethereum Mainnet, got %+v (found=%v)", eth, ok)
	}
	if _, ok := r.Lookup("01"); ok {
		t.Fatalf("Lookup(01): want miss, chain IDs are matched verbatim")
	}
}

func TestNewChainRegistry_EnabledSubset(t *testing.T) {
	r, err := NewChainRegistry(logger.NewSlogAdapter(), []uint64{137, 1, 137})
	if err != nil {
		t.Fatalf("NewChainRegistry: %v", err)
	}
	all := r.All()
	if len(all) != 2 || all[0].ChainID != 1 || all[1].ChainID != 137 {
		t.Fatalf("All: want [1 137], got %+v", all)
	}
	if _, ok := r.Lookup("56"); ok {
		t.Fatalf("Lookup(56): chain is not enabled")
	}

	all[0].Name = "mutated"
	if def, _ := r.Lookup("1"); def.Name != "Ethereum Mainnet" {
		t.Fatalf("All must return a copy, registry changed to %q", def.Name)
	}
}

func TestNewChainRegistry_UnknownChain(t *testing.T) {
	if _, err := NewChainRegistry(logger.NewSlogAdapter(), []uint64{1, 999}); err == nil {
		t.Fatalf("want error for unknown chain 999")
	}
}

func TestChainDefinition_ExplorerURLs(t *testing.T) {
	if got := Polygon.TxURL("0xabc"); got != "https://polygonscan.com/tx/0xabc" {
		t.Fatalf("TxURL: got %q", got)
	}
	if got := Ethereum.AddressURL("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"); got != "https://etherscan.io/address/0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045" {
		t.Fatalf("AddressURL: got %q", got)
	}
}
