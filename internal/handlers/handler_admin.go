package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
	"github.com/SscSPs/savings_ledger_app/internal/middleware"
)

// adminHandler serves the back-office routes guarded by the admin API key.
type adminHandler struct {
	services *portssvc.ServiceContainer
}

func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &adminHandler{services: services}

	rg.GET("/statistics", h.getStatistics)
	rg.GET("/clients", h.listClients)
	rg.GET("/accounts", h.listAccounts)
	rg.POST("/accounts/:id/deposit", h.deposit)
	rg.POST("/accounts/:id/withdraw", h.withdraw)
	rg.POST("/accounts/:id/interest/calculate", h.calculateInterest)
	rg.POST("/accounts/:id/interest/capitalize", h.capitalizeInterest)
	rg.POST("/interest/sweep", h.sweep)
}

// getStatistics godoc
// @Summary Savings book overview
// @Tags admin
// @Produce json
// @Success 200 {object} dto.StatisticsResponse
// @Failure 401 {object} ErrorResponse
// @Security AdminKey
// @Router /admin/statistics [get]
func (h *adminHandler) getStatistics(c *gin.Context) {
	stats, err := h.services.Statistics.GetStatistics(c.Request.Context())
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatisticsResponse(stats))
}

// listClients godoc
// @Summary List clients
// @Tags admin
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Security AdminKey
// @Router /admin/clients [get]
func (h *adminHandler) listClients(c *gin.Context) {
	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	clients, err := h.services.Client.ListClients(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientResponse(clients))
}

// listAccounts godoc
// @Summary List all accounts
// @Tags admin
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} ErrorResponse
// @Security AdminKey
// @Router /admin/accounts [get]
func (h *adminHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	accounts, err := h.services.Ledger.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// deposit godoc
// @Summary Deposit on behalf of a client
// @Description The acting administrator (x-admin-id) is recorded on the journal entry.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param operation body dto.OperationRequest true "Amount and description"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security AdminKey
// @Router /admin/accounts/{id}/deposit [post]
func (h *adminHandler) deposit(c *gin.Context) {
	h.operate(c, h.services.Ledger.Deposit, "deposit")
}

// withdraw godoc
// @Summary Withdraw on behalf of a client
// @Description The acting administrator (x-admin-id) is recorded on the journal entry.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param operation body dto.OperationRequest true "Amount and description"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security AdminKey
// @Router /admin/accounts/{id}/withdraw [post]
func (h *adminHandler) withdraw(c *gin.Context) {
	h.operate(c, h.services.Ledger.Withdraw, "withdrawal")
}

func (h *adminHandler) operate(c *gin.Context, op operationFunc, name string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	var adminID *string
	if id, ok := middleware.GetAdminIDFromContext(c); ok {
		adminID = &id
	}
	txn, err := op(c.Request.Context(), accountID, req, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to record "+name)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// sweep godoc
// @Summary Run the interest sweep now
// @Description Calculates and capitalizes interest for every active account that is due, and returns the report.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.SweepReportResponse
// @Failure 500 {object} ErrorResponse
// @Security AdminKey
// @Router /admin/interest/sweep [post]
func (h *adminHandler) sweep(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	report, err := h.services.Interest.SweepAllAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Interest sweep failed")
		return
	}
	logger.Info("Interest sweep completed",
		slog.String("run_id", report.RunID),
		slog.Int("capitalized", report.Capitalized),
		slog.Int("failed", report.Failed),
	)
	c.JSON(http.StatusOK, dto.ToSweepReportResponse(report))
}

// calculateInterest godoc
// @Summary Calculate interest for a period
// @Description Records a CALCULATED interest period. The balance is not changed until capitalization.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param period body dto.CalculateInterestRequest true "Period bounds, inclusive"
// @Success 201 {object} dto.InterestPeriodResponse
// @Failure 400 {object} ErrorResponse "Malformed dates or end before start"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security AdminKey
// @Router /admin/accounts/{id}/interest/calculate [post]
func (h *adminHandler) calculateInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CalculateInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	start, errStart := time.Parse(time.DateOnly, req.PeriodStart)
	end, errEnd := time.Parse(time.DateOnly, req.PeriodEnd)
	if errStart != nil || errEnd != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dates must use the YYYY-MM-DD format"})
		return
	}

	period, err := h.services.Interest.CalculatePeriod(c.Request.Context(), accountID, start, end)
	if err != nil {
		respondError(c, logger, err, "Failed to calculate interest")
		return
	}
	logger.Info("Interest calculated",
		slog.Int64("account_id", accountID),
		slog.String("net_interest", dto.Money(period.NetInterest)),
		slog.String("admin_id", adminIDOrEmpty(c)))
	c.JSON(http.StatusCreated, dto.ToInterestPeriodResponse(period))
}

// capitalizeInterest godoc
// @Summary Capitalize pending interest
// @Description Credits every CALCULATED period to the balance in one INTEREST entry.
// @Tags admin
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.CapitalizeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security AdminKey
// @Router /admin/accounts/{id}/interest/capitalize [post]
func (h *adminHandler) capitalizeInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := h.services.Interest.CapitalizePending(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to capitalize interest")
		return
	}
	resp := dto.CapitalizeResponse{Capitalized: txn != nil}
	if txn != nil {
		tr := dto.ToTransactionResponse(txn)
		resp.Transaction = &tr
		logger.Info("Interest capitalized",
			slog.Int64("account_id", accountID),
			slog.String("amount", dto.Money(txn.Amount)),
			slog.String("admin_id", adminIDOrEmpty(c)))
	}
	c.JSON(http.StatusOK, resp)
}

func adminIDOrEmpty(c *gin.Context) string {
	id, _ := middleware.GetAdminIDFromContext(c)
	return id
}
