package covalent

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"wallet_inspector/internal/domain/entity"
)

const testAddress = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"

var ethereum = entity.ChainDefinition{ChainID: 1, Name: "Ethereum Mainnet", NativeSymbol: "ETH", Decimals: 18}

const balancesBody = `{
  "data": {
    "address": "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
    "chain_id": 1,
    "items": [
      {"contract_decimals": 6, "contract_name": "USD Coin", "contract_ticker_symbol": "USDC",
       "contract_address": "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", "logo_url": "https://logos/usdc.png",
       "native_token": false, "balance": "2500000", "quote": 2.5},
      {"contract_decimals": 18, "contract_name": "Ether", "contract_ticker_symbol": "ETH",
       "contract_address": "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", "logo_url": null,
       "native_token": true, "balance": "1500000000000000000", "quote": 4500.75},
      {"contract_decimals": 18, "contract_name": "Dust", "contract_ticker_symbol": "DUST",
       "contract_address": "0x1111111111111111111111111111111111111111", "logo_url": null,
       "native_token": false, "balance": "0", "quote": 0},
      {"contract_decimals": 18, "contract_name": "Wrapped Ether", "contract_ticker_symbol": "WETH",
       "contract_address": "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", "logo_url": null,
       "native_token": false, "balance": "2000000000000000000", "quote": 6000},
      {"contract_decimals": 18, "contract_name": "No Quote", "contract_ticker_symbol": "NQ",
       "contract_address": "0x2222222222222222222222222222222222222222", "logo_url": null,
       "native_token": false, "balance": "5", "quote": null}
    ]
  },
  "error": false,
  "error_message": null,
  "error_code": null
}`

const transactionsBody = `{
  "data": {
    "address": "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
    "chain_id": 1,
    "items": [
      {"block_signed_at": "2024-05-02T10:00:00Z", "block_height": 200, "tx_hash": "0xbbb", "successful": true,
       "from_address": "0xd8da6bf26964af9d7eed9e03e53415d37aa96045", "to_address": "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
       "value": "1000", "gas_spent": 21000, "gas_price": 1000000000},
      {"block_signed_at": "2024-05-01T10:00:00Z", "block_height": 150, "tx_hash": "0xaaa", "successful": false,
       "from_address": "0xd8da6bf26964af9d7eed9e03e53415d37aa96045", "to_address": null,
       "value": "0", "gas_spent": 50000, "gas_price": 2000000000,
       "log_events": [{"decoded": {"name": "Approval", "signature": "Approval(address,address,uint256)"}}]},
      {"block_signed_at": "2024-04-30T10:00:00Z", "block_height": 100, "tx_hash": "0x999", "successful": true,
       "from_address": "0xd8da6bf26964af9d7eed9e03e53415d37aa96045", "to_address": "0x1111111111111111111111111111111111111111",
       "value": "0", "gas_spent": 30000, "gas_price": 3000000000}
    ],
    "pagination": {"has_more": true, "page_number": 0, "page_size": 100, "total_count": 1234}
  },
  "error": false,
  "error_message": null,
  "error_code": null
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Timeout: 5 * time.Second}, nil)
}

func TestClient_SendsAuthAndQuery(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(balancesBody))
	})

	if _, err := c.FetchNativeBalance(context.Background(), testAddress, ethereum); err != nil {
		t.Fatalf("FetchNativeBalance: %v", err)
	}

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("test-key:"))
	if gotAuth != wantAuth {
		t.Fatalf("Authorization: want %q, got %q", wantAuth, gotAuth)
	}
	if gotPath != "/1/address/"+testAddress+"/balances_v2/" {
		t.Fatalf("path: got %q", gotPath)
	}
	if !strings.Contains(gotQuery, "no-nft-fetch=true") || !strings.Contains(gotQuery, "no-spam=true") {
		t.Fatalf("query: got %q", gotQuery)
	}
}

func TestClient_FetchNativeBalance(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(balancesBody))
	})

	native, err := c.FetchNativeBalance(context.Background(), testAddress, ethereum)
	if err != nil {
		t.Fatalf("FetchNativeBalance: %v", err)
	}
	if native.Balance != "1500000000000000000" || native.Symbol != "ETH" || native.Decimals != 18 {
		t.Fatalf("unexpected native balance: %+v", native)
	}
	if native.Quote != 4500.75 {
		t.Fatalf("quote: want 4500.75, got %v", native.Quote)
	}
	if native.FormattedBalance != "1.5" {
		t.Fatalf("formattedBalance: want 1.5, got %q", native.FormattedBalance)
	}
}

func TestClient_FetchNativeBalance_NoNativeEntry(t *testing.T) {
	polygon := entity.ChainDefinition{ChainID: 137, Name: "Polygon", NativeSymbol: "MATIC", Decimals: 18}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"items":[]},"error":false}`))
	})

	native, err := c.FetchNativeBalance(context.Background(), testAddress, polygon)
	if err != nil {
		t.Fatalf("FetchNativeBalance: %v", err)
	}
	if native.Balance != "0" || native.Symbol != "MATIC" || native.Decimals != 18 || native.Quote != 0 {
		t.Fatalf("want zero MATIC balance, got %+v", native)
	}
}

func TestClient_FetchTokenBalances(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(balancesBody))
	})

	tokens, err := c.FetchTokenBalances(context.Background(), testAddress, ethereum)
	if err != nil {
		t.Fatalf("FetchTokenBalances: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("want 3 tokens (native and zero balance dropped), got %d: %+v", len(tokens), tokens)
	}
	wantOrder := []string{"WETH", "USDC", "NQ"}
	for i, sym := range wantOrder {
		if tokens[i].Symbol != sym {
			t.Fatalf("tokens[%d]: want %s, got %s", i, sym, tokens[i].Symbol)
		}
	}
	if tokens[0].ContractAddress != "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2" {
		t.Fatalf("contract address not checksummed: %s", tokens[0].ContractAddress)
	}
	if tokens[1].Logo == nil || *tokens[1].Logo != "https://logos/usdc.png" {
		t.Fatalf("USDC logo: got %v", tokens[1].Logo)
	}
	if tokens[1].FormattedBalance != "2.5" {
		t.Fatalf("USDC formattedBalance: want 2.5, got %q", tokens[1].FormattedBalance)
	}
	if tokens[2].Quote != 0 {
		t.Fatalf("null quote must map to 0, got %v", tokens[2].Quote)
	}
}

func TestClient_FetchTokenBalances_CapsAtTwenty(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"data":{"items":[`)
	for i := 0; i < 25; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"contract_decimals":18,"contract_ticker_symbol":"T","contract_address":"0x3333333333333333333333333333333333333333","native_token":false,"balance":"1","quote":`)
		b.WriteString(strings.Repeat("1", i+1))
		b.WriteString(`}`)
	}
	b.WriteString(`]},"error":false}`)
	body := b.String()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	tokens, err := c.FetchTokenBalances(context.Background(), testAddress, ethereum)
	if err != nil {
		t.Fatalf("FetchTokenBalances: %v", err)
	}
	if len(tokens) != 20 {
		t.Fatalf("want 20 tokens, got %d", len(tokens))
	}
	for i := 1; i < len(tokens); i++ {
		if tokens[i-1].Quote < tokens[i].Quote {
			t.Fatalf("tokens not sorted by quote at %d: %v < %v", i, tokens[i-1].Quote, tokens[i].Quote)
		}
	}
}

func TestClient_FetchTransactions(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if !strings.HasSuffix(r.URL.Path, "/transactions_v3/") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(transactionsBody))
	})

	txs, err := c.FetchTransactions(context.Background(), testAddress, ethereum, 5)
	if err != nil {
		t.Fatalf("FetchTransactions: %v", err)
	}
	if !strings.Contains(gotQuery, "page-size=5") || !strings.Contains(gotQuery, "no-logs=true") {
		t.Fatalf("query: got %q", gotQuery)
	}
	if len(txs) != 3 {
		t.Fatalf("want 3 transactions, got %d", len(txs))
	}

	if txs[0].Method != entity.MethodTransfer {
		t.Fatalf("txs[0].Method: want Transfer, got %q", txs[0].Method)
	}
	if txs[1].Method != "Approval" {
		t.Fatalf("txs[1].Method: want Approval, got %q", txs[1].Method)
	}
	if txs[2].Method != entity.MethodContractCall {
		t.Fatalf("txs[2].Method: want Contract Call, got %q", txs[2].Method)
	}
	if txs[0].From != testAddress {
		t.Fatalf("from not checksummed: %s", txs[0].From)
	}
	if txs[1].To != nil {
		t.Fatalf("contract creation must have nil to, got %v", *txs[1].To)
	}
	if txs[0].GasSpent.String() != "21000" || txs[0].GasPrice.String() != "1000000000" {
		t.Fatalf("gas values: got %s / %s", txs[0].GasSpent, txs[0].GasPrice)
	}
	if txs[0].BlockHeight != 200 || txs[0].Timestamp != "2024-05-02T10:00:00Z" || !txs[0].Successful {
		t.Fatalf("unexpected txs[0]: %+v", txs[0])
	}
}

func TestClient_FetchTransactions_UndecodedLogs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"items":[{"tx_hash":"0x1","value":"5","log_events":[{"decoded":null}]}]},"error":false}`))
	})

	txs, err := c.FetchTransactions(context.Background(), testAddress, ethereum, 0)
	if err != nil {
		t.Fatalf("FetchTransactions: %v", err)
	}
	if len(txs) != 1 || txs[0].Method != entity.MethodContractInteraction {
		t.Fatalf("want Contract Interaction, got %+v", txs)
	}
}

func TestClient_FetchActivityMetrics(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(transactionsBody))
	})

	m, err := c.FetchActivityMetrics(context.Background(), testAddress, ethereum)
	if err != nil {
		t.Fatalf("FetchActivityMetrics: %v", err)
	}
	if !strings.Contains(gotQuery, "page-size=100") {
		t.Fatalf("query: got %q", gotQuery)
	}
	// 21000*1e9 + 50000*2e9 + 30000*3e9
	if m.TotalGasSpent != "211000000000000" {
		t.Fatalf("totalGasSpent: want 211000000000000, got %s", m.TotalGasSpent)
	}
	if m.TotalTransactions != 1234 {
		t.Fatalf("totalTransactions: want 1234, got %d", m.TotalTransactions)
	}
	if m.FirstActivity == nil || *m.FirstActivity != "2024-04-30T10:00:00Z" {
		t.Fatalf("firstActivity: got %v", m.FirstActivity)
	}
	if m.LastActivity == nil || *m.LastActivity != "2024-05-02T10:00:00Z" {
		t.Fatalf("lastActivity: got %v", m.LastActivity)
	}
}

func TestClient_FetchActivityMetrics_LargeGasAndNoTotal(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"items":[
			{"block_signed_at":"2024-01-02T00:00:00Z","gas_spent":18446744073709551615,"gas_price":18446744073709551615},
			{"block_signed_at":"2024-01-01T00:00:00Z","gas_spent":null,"gas_price":5}
		],"pagination":{"total_count":null}},"error":false}`))
	})

	m, err := c.FetchActivityMetrics(context.Background(), testAddress, ethereum)
	if err != nil {
		t.Fatalf("FetchActivityMetrics: %v", err)
	}
	if m.TotalGasSpent != "340282366920938463426481119284349108225" {
		t.Fatalf("totalGasSpent: got %s", m.TotalGasSpent)
	}
	if m.TotalTransactions != 2 {
		t.Fatalf("totalTransactions: want sample size 2, got %d", m.TotalTransactions)
	}
}

func TestClient_FetchActivityMetrics_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"items":[],"pagination":{"total_count":0}},"error":false}`))
	})

	m, err := c.FetchActivityMetrics(context.Background(), testAddress, ethereum)
	if err != nil {
		t.Fatalf("FetchActivityMetrics: %v", err)
	}
	if m.TotalTransactions != 0 || m.FirstActivity != nil || m.LastActivity != nil || m.TotalGasSpent != "0" {
		t.Fatalf("want empty metrics, got %+v", m)
	}
}

func TestClient_UpstreamErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"data":null,"error":true,"error_message":"Invalid API key","error_code":401}`))
	})

	_, err := c.FetchTokenBalances(context.Background(), testAddress, ethereum)
	var upstreamErr *entity.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("want *entity.UpstreamError, got %T: %v", err, err)
	}
	if upstreamErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status: want 401, got %d", upstreamErr.StatusCode)
	}
	if err.Error() != "Failed to fetch token balances: Invalid API key" {
		t.Fatalf("message: got %q", err.Error())
	}
}

func TestClient_UpstreamErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.FetchNativeBalance(context.Background(), testAddress, ethereum)
	if err == nil || err.Error() != "Failed to fetch native balance: Request failed with status code 500" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_ErrorPayloadWithOKStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"error":true,"error_message":"Chain not supported"}`))
	})

	_, err := c.FetchTransactions(context.Background(), testAddress, ethereum, 20)
	if err == nil || err.Error() != "Failed to fetch transactions: Chain not supported" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_CancelledContext(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(balancesBody))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.FetchNativeBalance(ctx, testAddress, ethereum); err == nil {
		t.Fatalf("want error for cancelled context")
	}
	if calls.Load() != 0 {
		t.Fatalf("no request should be sent for a cancelled context, got %d", calls.Load())
	}
}
