package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

// ledgerHandler exposes the chart of accounts and journal recording.
type ledgerHandler struct {
	accountService *services.AccountService
	ledgerService  *services.LedgerService
}

func newLedgerHandler(as *services.AccountService, ls *services.LedgerService) *ledgerHandler {
	return &ledgerHandler{accountService: as, ledgerService: ls}
}

func registerLedgerRoutes(rg *gin.RouterGroup, accountService *services.AccountService, ledgerService *services.LedgerService) {
	h := newLedgerHandler(accountService, ledgerService)

	chart := rg.Group("/accounting/chart-accounts")
	{
		chart.GET("", h.listChartAccounts)
		chart.POST("", h.createChartAccount)
		chart.PUT("/:id", h.updateChartAccount)
		chart.DELETE("/:id", h.deactivateChartAccount)
	}

	journal := rg.Group("/accounting/journal-entries")
	{
		journal.POST("", h.createJournalEntry)
		journal.GET("", h.listJournalEntries)
		journal.GET("/:id", h.getJournalEntry)
	}
}

func (h *ledgerHandler) listChartAccounts(c *gin.Context) {
	_, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingView)
	if !ok {
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	accounts, err := h.ledgerService.ListChartAccounts(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.ChartAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = dto.ToChartAccountResponse(&accounts[i])
	}
	respondSuccess(c, http.StatusOK, "Chart accounts retrieved", res)
}

func (h *ledgerHandler) createChartAccount(c *gin.Context) {
	userID, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingManage)
	if !ok {
		return
	}

	var req dto.CreateChartAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	acc, err := h.ledgerService.CreateChartAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Chart account created", dto.ToChartAccountResponse(acc))
}

func (h *ledgerHandler) updateChartAccount(c *gin.Context) {
	userID, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingManage)
	if !ok {
		return
	}

	var req dto.UpdateChartAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	acc, err := h.ledgerService.UpdateChartAccount(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Chart account updated", dto.ToChartAccountResponse(acc))
}

func (h *ledgerHandler) deactivateChartAccount(c *gin.Context) {
	userID, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingManage)
	if !ok {
		return
	}

	inactive := false
	req := dto.UpdateChartAccountRequest{IsActive: &inactive}
	acc, err := h.ledgerService.UpdateChartAccount(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Chart account deactivated", dto.ToChartAccountResponse(acc))
}

func (h *ledgerHandler) createJournalEntry(c *gin.Context) {
	userID, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingManage)
	if !ok {
		return
	}

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.ledgerService.CreateJournalEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Journal entry recorded", dto.ToJournalEntryResponse(txn))
}

func (h *ledgerHandler) listJournalEntries(c *gin.Context) {
	_, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingView)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, err := h.ledgerService.ListJournalEntries(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.JournalEntryResponse, len(txns))
	for i := range txns {
		res[i] = dto.ToJournalEntryResponse(&txns[i])
	}
	respondSuccess(c, http.StatusOK, "Journal entries retrieved", res)
}

func (h *ledgerHandler) getJournalEntry(c *gin.Context) {
	_, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingView)
	if !ok {
		return
	}

	txn, err := h.ledgerService.GetJournalEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Journal entry retrieved", dto.ToJournalEntryResponse(txn))
}
