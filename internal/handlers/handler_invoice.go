package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

// invoiceHandler manages supplier invoices.
type invoiceHandler struct {
	accountService *services.AccountService
	invoiceService *services.InvoiceService
}

func newInvoiceHandler(as *services.AccountService, is *services.InvoiceService) *invoiceHandler {
	return &invoiceHandler{accountService: as, invoiceService: is}
}

func registerInvoiceRoutes(rg *gin.RouterGroup, accountService *services.AccountService, invoiceService *services.InvoiceService) {
	h := newInvoiceHandler(accountService, invoiceService)

	invoices := rg.Group("/accounting/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/:id/status", h.changeStatus)
	}
}

func (h *invoiceHandler) createInvoice(c *gin.Context) {
	userID, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingManage)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	inv, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Invoice created", dto.ToInvoiceResponse(inv))
}

func (h *invoiceHandler) listInvoices(c *gin.Context) {
	_, account, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingView)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), account.AccountID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	respondSuccess(c, http.StatusOK, "Invoices retrieved", res)
}

func (h *invoiceHandler) getInvoice(c *gin.Context) {
	_, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingView)
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Invoice retrieved", dto.ToInvoiceResponse(inv))
}

func (h *invoiceHandler) changeStatus(c *gin.Context) {
	userID, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingManage)
	if !ok {
		return
	}

	var req dto.ChangeInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	inv, err := h.invoiceService.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Invoice status updated", dto.ToInvoiceResponse(inv))
}
