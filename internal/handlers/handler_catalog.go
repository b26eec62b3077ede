package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
	"github.com/SscSPs/savings_ledger_app/internal/middleware"
)

type catalogHandler struct {
	catalog portssvc.AccountTypeCatalogSvc
}

// registerCatalogRoutes exposes the savings products. These routes are public.
func registerCatalogRoutes(rg *gin.RouterGroup, catalog portssvc.AccountTypeCatalogSvc) {
	h := &catalogHandler{catalog: catalog}

	types := rg.Group("/account-types")
	{
		types.GET("", h.listAccountTypes)
		types.GET("/:id", h.getAccountType)
	}
}

// listAccountTypes godoc
// @Summary List savings products
// @Description Lists the account types. Only active products unless all=true.
// @Tags account-types
// @Produce json
// @Param all query bool false "Include inactive products"
// @Success 200 {array} dto.AccountTypeResponse
// @Failure 500 {object} ErrorResponse
// @Router /account-types [get]
func (h *catalogHandler) listAccountTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	activeOnly := c.Query("all") != "true"

	types, err := h.catalog.ListAccountTypes(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, logger, err, "Failed to list account types")
		return
	}

	logger.Debug("Account types listed", slog.Int("count", len(types)))
	c.JSON(http.StatusOK, dto.ToListAccountTypeResponse(types))
}

// getAccountType godoc
// @Summary Get a savings product
// @Tags account-types
// @Produce json
// @Param id path int true "Account type ID"
// @Success 200 {object} dto.AccountTypeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /account-types/{id} [get]
func (h *catalogHandler) getAccountType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	at, err := h.catalog.GetAccountType(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account type")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountTypeResponse(at))
}
