package entity

import (
	"fmt"
	"strconv"
)

// ChainDefinition holds the description of a supported EVM network.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type ChainDefinition struct {
	ChainID          uint64 `json:"chainId" yaml:"chainId"`
	Name             string `json:"name" yaml:"name"`
	Identifier       string `json:"identifier" yaml:"identifier"` // e.g. "ethereum", "bsc"
	NativeSymbol     string `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals         int32  `json:"decimals" yaml:"decimals"` // decimals of the native asset
	BlockExplorerURL string `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}

// ChainIDString returns the chain ID in the form used in request parameters and indexer paths.
func (d ChainDefinition) ChainIDString() string {
	return strconv.FormatUint(d.ChainID, 10)
}

// AddressURL returns the block explorer page of an address, or "" if the chain has no explorer.
func (d ChainDefinition) AddressURL(address string) string {
	if d.BlockExplorerURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s", d.BlockExplorerURL, address)
}

// TxURL returns the block explorer page of a transaction, or "" if the chain has no explorer.
func (d ChainDefinition) TxURL(hash string) string {
	if d.BlockExplorerURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", d.BlockExplorerURL, hash)
}
