package covalent

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/pkg/metrics"
	"wallet_inspector/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultBaseURL is the Covalent API root.
	DefaultBaseURL = "https://api.covalenthq.com/v1"
	// DefaultRequestTimeout bounds every upstream request.
	DefaultRequestTimeout = 15 * time.Second
	// DefaultTransactionLimit is the page size used when the caller gives none.
	DefaultTransactionLimit = 20

	maxTokenBalances  = 20
	metricsSampleSize = 100

	endpointBalances     = "balances_v2"
	endpointTransactions = "transactions_v3"
)

// Config holds the client settings.
type Config struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	MaxConnsPerHost int
}

// Client reads wallet data from the Covalent API. It is safe for concurrent use.
type Client struct {
	client     *fasthttp.Client
	baseURL    string
	authHeader string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient creates a new Covalent client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	httpClient := &fasthttp.Client{
		Name:                "wallet_inspector",
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		ReadTimeout:         timeout,
		WriteTimeout:        timeout,
		MaxIdleConnDuration: time.Minute,
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		client:     httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.APIKey+":")),
		timeout:    timeout,
		logger:     logger.Named("CovalentClient"),
	}
}

// FetchNativeBalance returns the balance of the chain's native asset.
// A wallet without a native entry gets a zero balance, not an error.
func (c *Client) FetchNativeBalance(ctx context.Context, address string, chain entity.ChainDefinition) (*entity.NativeBalance, error) {
	data, err := c.getBalances(ctx, entity.NativeBalanceFetch, address, chain)
	if err != nil {
		return nil, err
	}

	for _, item := range data.Items {
		if !item.NativeToken {
			continue
		}
		native := &entity.NativeBalance{
			Balance:  utils.Deref(item.Balance, "0"),
			Symbol:   utils.Deref(item.ContractTickerSymbol, chain.NativeSymbol),
			Decimals: utils.Deref(item.ContractDecimals, chain.Decimals),
			Quote:    utils.Deref(item.Quote, 0),
		}
		native.FormattedBalance = utils.FormatTokenBalance(native.Balance, native.Decimals, utils.DefaultDisplayDecimals)
		return native, nil
	}

	c.logger.Debug("No native token entry, using zero balance",
		zap.String("address", address),
		zap.Uint64("chainID", chain.ChainID))
	return entity.ZeroNativeBalance(chain), nil
}

// FetchTokenBalances returns the non-native holdings with a positive balance,
// highest USD value first, at most 20 entries.
func (c *Client) FetchTokenBalances(ctx context.Context, address string, chain entity.ChainDefinition) ([]entity.TokenBalance, error) {
	data, err := c.getBalances(ctx, entity.TokenBalancesFetch, address, chain)
	if err != nil {
		return nil, err
	}

	tokens := make([]entity.TokenBalance, 0, len(data.Items))
	for _, item := range data.Items {
		if item.NativeToken {
			continue
		}
		balance := utils.Deref(item.Balance, "0")
		amount, err := utils.ParseBigInt(balance)
		if err != nil || amount.Sign() <= 0 {
			continue
		}
		token := entity.TokenBalance{
			ContractAddress: normalizeAddress(item.ContractAddress),
			Name:            utils.Deref(item.ContractName, ""),
			Symbol:          utils.Deref(item.ContractTickerSymbol, ""),
			Decimals:        utils.Deref(item.ContractDecimals, 0),
			Balance:         balance,
			Quote:           utils.Deref(item.Quote, 0),
			Logo:            item.LogoURL,
		}
		token.FormattedBalance = utils.FormatTokenBalance(token.Balance, token.Decimals, utils.DefaultDisplayDecimals)
		tokens = append(tokens, token)
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Quote > tokens[j].Quote
	})

	return utils.Truncate(tokens, maxTokenBalances), nil
}

// FetchTransactions returns up to limit of the most recent transactions.
// A non-positive limit falls back to DefaultTransactionLimit.
func (c *Client) FetchTransactions(ctx context.Context, address string, chain entity.ChainDefinition, limit int) ([]entity.Transaction, error) {
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}
	data, err := c.getTransactions(ctx, entity.TransactionsFetch, address, chain, limit)
	if err != nil {
		return nil, err
	}

	txs := make([]entity.Transaction, 0, len(data.Items))
	for _, item := range data.Items {
		txs = append(txs, mapTransaction(item))
	}
	return txs, nil
}

// FetchActivityMetrics summarises the most recent 100 transactions.
// firstActivity is the oldest transaction of that sample.
func (c *Client) FetchActivityMetrics(ctx context.Context, address string, chain entity.ChainDefinition) (*entity.ActivityMetrics, error) {
	data, err := c.getTransactions(ctx, entity.ActivityMetricsFetch, address, chain, metricsSampleSize)
	if err != nil {
		return nil, err
	}
	if len(data.Items) == 0 {
		return entity.EmptyActivityMetrics(), nil
	}

	pairs := make([][2]string, 0, len(data.Items))
	for _, item := range data.Items {
		pairs = append(pairs, [2]string{item.GasSpent.String(), item.GasPrice.String()})
	}
	totalGas, err := utils.SumProducts(pairs)
	if err != nil {
		return nil, &entity.UpstreamError{
			Kind:    entity.ActivityMetricsFetch,
			Message: fmt.Sprintf("malformed gas values: %v", err),
			Err:     err,
		}
	}

	total := int64(len(data.Items))
	if data.Pagination != nil && data.Pagination.TotalCount != nil && *data.Pagination.TotalCount > 0 {
		total = *data.Pagination.TotalCount
	}

	// items are newest first
	first := data.Items[len(data.Items)-1].BlockSignedAt
	last := data.Items[0].BlockSignedAt

	return &entity.ActivityMetrics{
		TotalTransactions: total,
		FirstActivity:     &first,
		LastActivity:      &last,
		TotalGasSpent:     totalGas.String(),
	}, nil
}

func (c *Client) getBalances(ctx context.Context, kind entity.FetchKind, address string, chain entity.ChainDefinition) (*balancesData, error) {
	requestURL := fmt.Sprintf("%s/%s/address/%s/%s/?no-nft-fetch=true&no-spam=true",
		c.baseURL, chain.ChainIDString(), address, endpointBalances)

	var envelope apiResponse[balancesData]
	if err := c.get(ctx, kind, endpointBalances, requestURL, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) getTransactions(ctx context.Context, kind entity.FetchKind, address string, chain entity.ChainDefinition, pageSize int) (*transactionsData, error) {
	requestURL := fmt.Sprintf("%s/%s/address/%s/%s/?page-size=%d&no-logs=true",
		c.baseURL, chain.ChainIDString(), address, endpointTransactions, pageSize)

	var envelope apiResponse[transactionsData]
	if err := c.get(ctx, kind, endpointTransactions, requestURL, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// get performs one authenticated GET and decodes the envelope into out.
// Any failure is returned as *entity.UpstreamError.
func (c *Client) get(ctx context.Context, kind entity.FetchKind, endpoint, requestURL string, out envelopeChecker) error {
	if err := ctx.Err(); err != nil {
		return &entity.UpstreamError{Kind: kind, Message: err.Error(), Err: err}
	}

	c.logger.Debug("Requesting Covalent API", zap.String("endpoint", endpoint), zap.Stringer("kind", kind))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAuthorization, c.authHeader)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < c.timeout {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeError).Inc()
		c.logger.Error("Failed to execute request to Covalent API",
			zap.String("endpoint", endpoint), zap.Stringer("kind", kind), zap.Error(err))
		message := err.Error()
		if errors.Is(err, fasthttp.ErrTimeout) {
			message = fmt.Sprintf("timeout of %dms exceeded", c.timeout.Milliseconds())
		}
		return &entity.UpstreamError{Kind: kind, Message: message, Err: err}
	}

	statusCode := resp.StatusCode()
	rawBody := resp.Body()

	if statusCode < fasthttp.StatusOK || statusCode >= fasthttp.StatusMultipleChoices {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeError).Inc()
		message := upstreamErrorMessage(rawBody)
		if message == "" {
			message = "Request failed with status code " + strconv.Itoa(statusCode)
		}
		c.logger.Error("Covalent API request failed",
			zap.String("endpoint", endpoint),
			zap.Stringer("kind", kind),
			zap.Int("statusCode", statusCode),
			zap.ByteString("responseBody", rawBody))
		return &entity.UpstreamError{Kind: kind, StatusCode: statusCode, Message: message}
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeError).Inc()
		c.logger.Error("Failed to unmarshal Covalent API response",
			zap.String("endpoint", endpoint), zap.ByteString("responseBody", rawBody), zap.Error(err))
		return &entity.UpstreamError{
			Kind:       kind,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("invalid response body: %v", err),
			Err:        err,
		}
	}

	if msg, failed := out.failure(); failed {
		metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeError).Inc()
		c.logger.Warn("Covalent API returned an error payload",
			zap.String("endpoint", endpoint), zap.Int("statusCode", statusCode), zap.String("message", msg))
		return &entity.UpstreamError{Kind: kind, StatusCode: statusCode, Message: msg}
	}

	metrics.UpstreamRequests.WithLabelValues(endpoint, metrics.OutcomeSuccess).Inc()
	return nil
}

// envelopeChecker reports whether a decoded envelope carries an error or no data.
type envelopeChecker interface {
	failure() (string, bool)
}

func (r *apiResponse[T]) failure() (string, bool) {
	if r.Error {
		if r.ErrorMessage != nil && *r.ErrorMessage != "" {
			return *r.ErrorMessage, true
		}
		return "upstream reported an error", true
	}
	if r.Data == nil {
		return "response contained no data", true
	}
	return "", false
}

func upstreamErrorMessage(body []byte) string {
	var envelope struct {
		ErrorMessage string `json:"error_message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.ErrorMessage
}

func mapTransaction(item transactionItem) entity.Transaction {
	tx := entity.Transaction{
		Hash:        item.TxHash,
		BlockHeight: item.BlockHeight,
		Timestamp:   item.BlockSignedAt,
		From:        normalizeAddress(item.FromAddress),
		Value:       utils.Deref(item.Value, "0"),
		GasSpent:    item.GasSpent,
		GasPrice:    item.GasPrice,
		Successful:  item.Successful,
		Method:      extractMethod(item),
	}
	if item.ToAddress != nil {
		to := normalizeAddress(*item.ToAddress)
		tx.To = &to
	}
	return tx
}

// extractMethod labels a transaction by its first decoded log event, falling
// back to whether it moved native value.
func extractMethod(item transactionItem) string {
	if len(item.LogEvents) > 0 {
		if decoded := item.LogEvents[0].Decoded; decoded != nil && decoded.Name != "" {
			return decoded.Name
		}
		return entity.MethodContractInteraction
	}
	value, err := utils.ParseBigInt(utils.Deref(item.Value, ""))
	if err == nil && value.Sign() != 0 {
		return entity.MethodTransfer
	}
	return entity.MethodContractCall
}

func normalizeAddress(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}
	return common.HexToAddress(address).Hex()
}
