package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
	"github.com/SscSPs/savings_ledger_app/internal/middleware"
)

type clientHandler struct {
	clients portssvc.ClientReaderSvc
	ledger  portssvc.AccountReaderSvc
}

// registerClientRoutes registers the client profile routes. A client only sees itself.
func registerClientRoutes(rg *gin.RouterGroup, clients portssvc.ClientReaderSvc, ledger portssvc.AccountReaderSvc) {
	h := &clientHandler{clients: clients, ledger: ledger}

	group := rg.Group("/clients/:id")
	{
		group.GET("", h.getClient)
		group.GET("/accounts", h.listClientAccounts)
	}
}

// self checks the id path parameter names the logged-in client.
func (h *clientHandler) self(c *gin.Context) (int64, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return 0, false
	}
	clientID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return 0, false
	}
	if id != clientID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return 0, false
	}
	return id, true
}

// getClient godoc
// @Summary Get a client profile
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	id, ok := h.self(c)
	if !ok {
		return
	}
	client, err := h.clients.GetClientByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// listClientAccounts godoc
// @Summary List a client's accounts
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/accounts [get]
func (h *clientHandler) listClientAccounts(c *gin.Context) {
	id, ok := h.self(c)
	if !ok {
		return
	}
	accounts, err := h.ledger.ListAccountsByClient(c.Request.Context(), id)
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}
