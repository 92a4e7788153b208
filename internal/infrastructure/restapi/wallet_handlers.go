package restapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultChainID          = "1"
	defaultTransactionLimit = 20
	maxTransactionLimit     = 100
)

// RequestValidator validates path and query inputs.
type RequestValidator interface {
	ValidateAddress(input string) (string, error)
	ValidateChainID(input string) (entity.ChainDefinition, error)
}

// WalletHandler serves the wallet lookup endpoints.
type WalletHandler struct {
	walletService port.WalletService
	validator     RequestValidator
	chains        port.ChainRegistry
	logger        *zap.Logger
}

// NewWalletHandler creates a new instance of WalletHandler.
func NewWalletHandler(ws port.WalletService, v RequestValidator, chains port.ChainRegistry, logger *zap.Logger) *WalletHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalletHandler{
		walletService: ws,
		validator:     v,
		chains:        chains,
		logger:        logger.Named("WalletHandler"),
	}
}

// GetWalletInfo returns the full wallet snapshot.
//
//	@Summary	Full wallet snapshot
//	@Param		address	path	string	true	"EVM address"
//	@Param		chainId	query	string	false	"Chain ID"	default(1)
//	@Success	200	{object}	APIResponse
//	@Failure	400	{object}	APIResponse
//	@Router		/api/wallet/{address} [get]
func (h *WalletHandler) GetWalletInfo(c *gin.Context) {
	address, chain, ok := h.validateRequest(c)
	if !ok {
		return
	}

	snapshot, err := h.walletService.FetchWalletSnapshot(c.Request.Context(), address, chain)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, successResponse(snapshot))
}

// GetNativeBalance returns the native asset balance.
//
//	@Summary	Native balance
//	@Param		address	path	string	true	"EVM address"
//	@Param		chainId	query	string	false	"Chain ID"	default(1)
//	@Router		/api/wallet/{address}/balance [get]
func (h *WalletHandler) GetNativeBalance(c *gin.Context) {
	address, chain, ok := h.validateRequest(c)
	if !ok {
		return
	}

	balance, err := h.walletService.FetchNativeBalance(c.Request.Context(), address, chain)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, successResponse(balance))
}

// GetTokenBalances returns the top token holdings.
//
//	@Summary	Token balances
//	@Param		address	path	string	true	"EVM address"
//	@Param		chainId	query	string	false	"Chain ID"	default(1)
//	@Router		/api/wallet/{address}/tokens [get]
func (h *WalletHandler) GetTokenBalances(c *gin.Context) {
	address, chain, ok := h.validateRequest(c)
	if !ok {
		return
	}

	tokens, err := h.walletService.FetchTokenBalances(c.Request.Context(), address, chain)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if tokens == nil {
		tokens = []entity.TokenBalance{}
	}

	c.JSON(http.StatusOK, successResponse(tokens))
}

// GetTransactions returns the most recent transactions.
//
//	@Summary	Recent transactions
//	@Param		address	path	string	true	"EVM address"
//	@Param		chainId	query	string	false	"Chain ID"	default(1)
//	@Param		limit	query	int		false	"Page size"	default(20)
//	@Router		/api/wallet/{address}/transactions [get]
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	address, chain, ok := h.validateRequest(c)
	if !ok {
		return
	}

	limit := parseLimit(c.Query("limit"))
	txs, err := h.walletService.FetchTransactions(c.Request.Context(), address, chain, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if txs == nil {
		txs = []entity.Transaction{}
	}

	c.JSON(http.StatusOK, successResponse(txs))
}

// ListChains returns the supported chains with their explorer links.
//
//	@Summary	Supported chains
//	@Router		/api/chains [get]
func (h *WalletHandler) ListChains(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(h.chains.All()))
}

// Health is the liveness probe.
func (h *WalletHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// validateRequest validates the address path segment and chainId query
// parameter. On failure it writes the 400 response and returns ok=false.
func (h *WalletHandler) validateRequest(c *gin.Context) (string, entity.ChainDefinition, bool) {
	address, err := h.validator.ValidateAddress(c.Param("address"))
	if err != nil {
		h.rejectInput(c, err)
		return "", entity.ChainDefinition{}, false
	}

	chain, err := h.validator.ValidateChainID(c.DefaultQuery("chainId", defaultChainID))
	if err != nil {
		h.rejectInput(c, err)
		return "", entity.ChainDefinition{}, false
	}

	return address, chain, true
}

func (h *WalletHandler) rejectInput(c *gin.Context, err error) {
	var validationErr *entity.ValidationError
	if !errors.As(err, &validationErr) {
		_ = c.Error(err)
		return
	}
	h.logger.Debug("Rejected request input",
		zap.String("path", c.Request.URL.Path),
		zap.String("reason", validationErr.Message))
	c.JSON(http.StatusBadRequest, errorResponse(validationErr.Message))
}

// parseLimit reads the transactions page size. Missing, non-numeric or
// non-positive values fall back to the default; large values are capped.
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return defaultTransactionLimit
	}
	if limit > maxTransactionLimit {
		return maxTransactionLimit
	}
	return limit
}
