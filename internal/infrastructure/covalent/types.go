package covalent

import stdjson "encoding/json"

// apiResponse is the envelope wrapping every Covalent response.
type apiResponse[T any] struct {
	Data         *T      `json:"data"`
	Error        bool    `json:"error"`
	ErrorMessage *string `json:"error_message"`
	ErrorCode    *int    `json:"error_code"`
}

// balancesData is the payload of the balances_v2 endpoint.
type balancesData struct {
	Address string        `json:"address"`
	ChainID int64         `json:"chain_id"`
	Items   []balanceItem `json:"items"`
}

// balanceItem is a single token holding. Nullable fields are pointers.
type balanceItem struct {
	ContractDecimals     *int32   `json:"contract_decimals"`
	ContractName         *string  `json:"contract_name"`
	ContractTickerSymbol *string  `json:"contract_ticker_symbol"`
	ContractAddress      string   `json:"contract_address"`
	LogoURL              *string  `json:"logo_url"`
	NativeToken          bool     `json:"native_token"`
	Type                 string   `json:"type"`
	Balance              *string  `json:"balance"`
	Quote                *float64 `json:"quote"`
}

// transactionsData is the payload of the transactions_v3 endpoint.
type transactionsData struct {
	Address    string            `json:"address"`
	ChainID    int64             `json:"chain_id"`
	Items      []transactionItem `json:"items"`
	Pagination *pagination       `json:"pagination"`
}

type pagination struct {
	HasMore    bool   `json:"has_more"`
	PageNumber int    `json:"page_number"`
	PageSize   int    `json:"page_size"`
	TotalCount *int64 `json:"total_count"`
}

// transactionItem is one transaction. Gas values are kept as the literal number.
type transactionItem struct {
	BlockSignedAt string         `json:"block_signed_at"`
	BlockHeight   uint64         `json:"block_height"`
	TxHash        string         `json:"tx_hash"`
	Successful    bool           `json:"successful"`
	FromAddress   string         `json:"from_address"`
	ToAddress     *string        `json:"to_address"`
	Value         *string        `json:"value"`
	GasSpent      stdjson.Number `json:"gas_spent"`
	GasPrice      stdjson.Number `json:"gas_price"`
	LogEvents     []logEvent     `json:"log_events"`
}

type logEvent struct {
	Decoded *decodedEvent `json:"decoded"`
}

type decodedEvent struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
}
