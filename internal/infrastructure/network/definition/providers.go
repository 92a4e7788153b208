package networkdefinition

import (
	"fmt"
	"sort"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/domain/entity"
)

// ChainRegistry is the immutable allow-list of supported chains.
// It is built once at startup and shared read-only afterwards.
type ChainRegistry struct {
	logger  port.Logger
	byID    map[string]entity.ChainDefinition
	ordered []entity.ChainDefinition
}

// Predefined chain definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.ChainDefinition{
		ChainID:          1,
		Name:             "Ethereum Mainnet",
		Identifier:       "ethereum",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://etherscan.io",
	}
	Polygon = entity.ChainDefinition{
		ChainID:          137,
		Name:             "Polygon",
		Identifier:       "polygon",
		NativeSymbol:     "MATIC",
		Decimals:         18,
		BlockExplorerURL: "https://polygonscan.com",
	}
	BSC = entity.ChainDefinition{
		ChainID:          56,
		Name:             "BSC",
		Identifier:       "bsc",
		NativeSymbol:     "BNB",
		Decimals:         18,
		BlockExplorerURL: "https://bscscan.com",
	}
	Arbitrum = entity.ChainDefinition{
		ChainID:          42161,
		Name:             "Arbitrum",
		Identifier:       "arbitrum",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://arbiscan.io",
	}
	Optimism = entity.ChainDefinition{
		ChainID:          10,
		Name:             "Optimism",
		Identifier:       "optimism",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://optimistic.etherscan.io",
	}
	Avalanche = entity.ChainDefinition{
		ChainID:          43114,
		Name:             "Avalanche",
		Identifier:       "avalanche",
		NativeSymbol:     "AVAX",
		Decimals:         18,
		BlockExplorerURL: "https://snowtrace.io",
	}
)

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = map[uint64]entity.ChainDefinition{
	Ethereum.ChainID:  Ethereum,
	Polygon.ChainID:   Polygon,
	BSC.ChainID:       BSC,
	Arbitrum.ChainID:  Arbitrum,
	Optimism.ChainID:  Optimism,
	Avalanche.ChainID: Avalanche,
}

// NewChainRegistry creates the registry from the enabled chain IDs.
// An empty list enables every known chain; an unknown ID is a configuration error.
func NewChainRegistry(log port.Logger, enabledChainIDs []uint64) (*ChainRegistry, error) {
	r := &ChainRegistry{
		logger: log,
		byID:   make(map[string]entity.ChainDefinition),
	}

	if len(enabledChainIDs) == 0 {
		for id := range allKnownDefinitions {
			enabledChainIDs = append(enabledChainIDs, id)
		}
	}

	for _, id := range enabledChainIDs {
		def, ok := allKnownDefinitions[id]
		if !ok {
			return nil, fmt.Errorf("chain ID %d has no known definition", id)
		}
		if _, dup := r.byID[def.ChainIDString()]; dup {
			r.logger.Warn("Duplicate chain ID in enabled chains, skipping", "chain_id", id)
			continue
		}
		r.byID[def.ChainIDString()] = def
		r.ordered = append(r.ordered, def)
	}

	sort.Slice(r.ordered, func(i, j int) bool {
		return r.ordered[i].ChainID < r.ordered[j].ChainID
	})

	r.logger.Info(fmt.Sprintf("ChainRegistry initialized. Supported chains: %d", len(r.ordered)))
	for _, def := range r.ordered {
		r.logger.Debug(fmt.Sprintf("  - Supported chain: %s (ID: %s, ChainID: %d, native: %s)", def.Name, def.Identifier, def.ChainID, def.NativeSymbol))
	}

	return r, nil
}

// Lookup returns the chain definition for the decimal chain ID string.
func (r *ChainRegistry) Lookup(chainID string) (entity.ChainDefinition, bool) {
	if r == nil {
		return entity.ChainDefinition{}, false
	}
	def, ok := r.byID[chainID]
	return def, ok
}

// All returns a copy of the supported chains ordered by chain ID.
func (r *ChainRegistry) All() []entity.ChainDefinition {
	if r == nil {
		return []entity.ChainDefinition{}
	}
	defsCopy := make([]entity.ChainDefinition, len(r.ordered))
	copy(defsCopy, r.ordered)
	return defsCopy
}
