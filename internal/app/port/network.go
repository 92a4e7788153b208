package port

import "wallet_inspector/internal/domain/entity"

// ChainRegistry defines the interface for looking up supported networks.
type ChainRegistry interface {
	// Lookup returns the chain definition for a chain ID given in its decimal string form.
	Lookup(chainID string) (entity.ChainDefinition, bool)

	// All returns every supported chain ordered by ascending chain ID.
	All() []entity.ChainDefinition
}
