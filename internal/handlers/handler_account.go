package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
	"github.com/SscSPs/savings_ledger_app/internal/middleware"
)

// accountHandler handles the client-facing account routes.
type accountHandler struct {
	ledger portssvc.AccountLedgerSvcFacade
}

// registerAccountRoutes registers routes related to savings accounts.
func registerAccountRoutes(rg *gin.RouterGroup, ledger portssvc.AccountLedgerSvcFacade) {
	h := &accountHandler{ledger: ledger}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.openAccount)
		accounts.GET("/number/:number", h.getAccountByNumber)
		accounts.GET("/:id", h.getAccount)
		accounts.POST("/:id/deposit", h.deposit)
		accounts.POST("/:id/withdraw", h.withdraw)
		accounts.GET("/:id/available-balance", h.getAvailableBalance)
		accounts.GET("/:id/transactions", h.listTransactions)
	}
}

// ownedAccount loads the account named by the id path parameter and checks it belongs to the caller.
// It writes the error response itself and reports whether the handler may continue.
func ownedAccount(c *gin.Context, ledger portssvc.AccountReaderSvc) (*domain.Account, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	clientID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		logger.Error("Client ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return nil, false
	}

	account, err := ledger.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return nil, false
	}
	if account.ClientID != clientID {
		logger.Warn("Client forbidden to access account", slog.Int64("account_id", accountID), slog.Int64("owner_id", account.ClientID))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return nil, false
	}
	return account, true
}

// openAccount godoc
// @Summary Open a savings account
// @Description Opens an account of the given product for the logged-in client with an initial deposit.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.OpenAccountRequest true "Account details"
// @Success 201 {object} dto.OpenAccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Opening an account for another client"
// @Failure 404 {object} ErrorResponse "Client or account type not found"
// @Failure 422 {object} ErrorResponse "Product rule violated"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) openAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	clientID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		logger.Error("Client ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if req.ClientID != clientID {
		logger.Warn("Client attempted to open an account for someone else", slog.Int64("target_client_id", req.ClientID))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	account, txn, err := h.ledger.OpenAccount(c.Request.Context(), req, nil)
	if err != nil {
		respondError(c, logger, err, "Failed to open account")
		return
	}

	logger.Info("Account opened", slog.Int64("account_id", account.AccountID))
	resp := dto.OpenAccountResponse{Account: dto.ToAccountResponse(account)}
	if txn != nil {
		tr := dto.ToTransactionResponse(txn)
		resp.InitialDeposit = &tr
	}
	c.JSON(http.StatusCreated, resp)
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, ok := ownedAccount(c, h.ledger)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountByNumber godoc
// @Summary Get an account by its account number
// @Tags accounts
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/number/{number} [get]
func (h *accountHandler) getAccountByNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.ledger.GetAccountByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	if account.ClientID != clientID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deposit godoc
// @Summary Deposit money
// @Description Credits the account and journals a DEPOSIT entry.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param operation body dto.OperationRequest true "Amount and description"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account is not active"
// @Failure 422 {object} ErrorResponse "Deposit ceiling exceeded"
// @Security BearerAuth
// @Router /accounts/{id}/deposit [post]
func (h *accountHandler) deposit(c *gin.Context) {
	h.operate(c, h.ledger.Deposit, "deposit")
}

// withdraw godoc
// @Summary Withdraw money
// @Description Debits the account and journals a WITHDRAWAL entry.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param operation body dto.OperationRequest true "Amount and description"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account is not active"
// @Failure 422 {object} ErrorResponse "Withdrawal cap or minimum balance breached"
// @Security BearerAuth
// @Router /accounts/{id}/withdraw [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	h.operate(c, h.ledger.Withdraw, "withdrawal")
}

// operationFunc is the shape shared by Deposit and Withdraw.
type operationFunc func(ctx context.Context, accountID int64, req dto.OperationRequest, administratorID *string) (*domain.Transaction, error)

func (h *accountHandler) operate(c *gin.Context, op operationFunc, name string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, ok := ownedAccount(c, h.ledger)
	if !ok {
		return
	}
	var req dto.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for "+name, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := op(c.Request.Context(), account.AccountID, req, nil)
	if err != nil {
		respondError(c, logger, err, "Failed to record "+name)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getAvailableBalance godoc
// @Summary Get the available balance
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.AvailableBalanceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/available-balance [get]
func (h *accountHandler) getAvailableBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, ok := ownedAccount(c, h.ledger)
	if !ok {
		return
	}
	available, err := h.ledger.GetAvailableBalance(c.Request.Context(), account.AccountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve available balance")
		return
	}
	c.JSON(http.StatusOK, dto.AvailableBalanceResponse{AccountID: account.AccountID, AvailableBalance: dto.Money(available)})
}

// listTransactions godoc
// @Summary List an account's journal
// @Description Returns journal entries newest first. Pass nextToken from the previous page to continue.
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, ok := ownedAccount(c, h.ledger)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, next, err := h.ledger.ListTransactions(c.Request.Context(), account.AccountID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToListTransactionResponse(txns),
		NextToken:    next,
	})
}
