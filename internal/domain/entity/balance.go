package entity

// NativeBalance represents the amount of the chain's native asset held by a wallet.
// Balance is the raw amount in the smallest unit (wei) as a decimal string.
type NativeBalance struct {
	Balance          string  `json:"balance"`
	Symbol           string  `json:"symbol"`
	Decimals         int32   `json:"decimals"`
	Quote            float64 `json:"quote"` // USD value
	FormattedBalance string  `json:"formattedBalance"`
}

// TokenBalance represents the holding of a single ERC-20 style token.
type TokenBalance struct {
	ContractAddress  string  `json:"contractAddress"`
	Name             string  `json:"name"`
	Symbol           string  `json:"symbol"`
	Decimals         int32   `json:"decimals"`
	Balance          string  `json:"balance"`
	Quote            float64 `json:"quote"`
	Logo             *string `json:"logo"`
	FormattedBalance string  `json:"formattedBalance"`
}

// ZeroNativeBalance is returned when the indexer reports no native asset entry for a wallet.
func ZeroNativeBalance(chain ChainDefinition) *NativeBalance {
	symbol := chain.NativeSymbol
	if symbol == "" {
		symbol = "ETH"
	}
	decimals := chain.Decimals
	if decimals == 0 {
		decimals = 18
	}
	return &NativeBalance{
		Balance:          "0",
		Symbol:           symbol,
		Decimals:         decimals,
		Quote:            0,
		FormattedBalance: "0",
	}
}
