package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/dto"
	"github.com/SscSPs/savings_ledger_app/internal/middleware"
)

type interestHandler struct {
	ledger   portssvc.AccountReaderSvc
	interest portssvc.InterestEngineSvc
}

// registerInterestRoutes registers the read-only interest routes for account owners.
// Calculation and capitalization are back-office operations, see registerAdminRoutes.
func registerInterestRoutes(rg *gin.RouterGroup, ledger portssvc.AccountReaderSvc, interest portssvc.InterestEngineSvc) {
	h := &interestHandler{ledger: ledger, interest: interest}

	rg.GET("/accounts/:id/interest", h.getInterestHistory)
}

// getInterestHistory godoc
// @Summary Interest history of an account
// @Description Lists interest periods newest first with the next expected capitalization date.
// @Tags interest
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.InterestHistoryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/interest [get]
func (h *interestHandler) getInterestHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, ok := ownedAccount(c, h.ledger)
	if !ok {
		return
	}

	periods, err := h.interest.ListInterestPeriods(c.Request.Context(), account.AccountID)
	if err != nil {
		respondError(c, logger, err, "Failed to list interest periods")
		return
	}
	next, err := h.interest.NextCapitalizationDate(c.Request.Context(), account.AccountID)
	if err != nil {
		respondError(c, logger, err, "Failed to project next capitalization")
		return
	}

	c.JSON(http.StatusOK, dto.InterestHistoryResponse{
		AccountID:              account.AccountID,
		NextCapitalizationDate: next.Format(time.DateOnly),
		Periods:                dto.ToListInterestPeriodResponse(periods),
	})
}
