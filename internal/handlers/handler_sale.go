package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

// saleHandler serves both views of milk movements: /collections for the
// buying side and /sales for the supplying side. Both operate on the same
// records.
type saleHandler struct {
	accountService *services.AccountService
	saleService    *services.SaleService
}

func newSaleHandler(as *services.AccountService, ss *services.SaleService) *saleHandler {
	return &saleHandler{accountService: as, saleService: ss}
}

func registerSaleRoutes(rg *gin.RouterGroup, accountService *services.AccountService, saleService *services.SaleService) {
	h := newSaleHandler(accountService, saleService)

	collections := rg.Group("/collections")
	{
		collections.POST("", h.createCollection)
		collections.GET("", h.listCollections)
	}

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.PUT("/:id", h.updateSale)
		sales.POST("/:id/accept", h.acceptSale)
		sales.POST("/:id/reject", h.rejectSale)
		sales.POST("/:id/cancel", h.cancelSale)
		sales.DELETE("/:id", h.deleteSale)
	}
}

func (h *saleHandler) createCollection(c *gin.Context) {
	h.create(c, false, domain.PermCollectionsRecord, "Collection recorded")
}

func (h *saleHandler) createSale(c *gin.Context) {
	h.create(c, true, domain.PermSalesRecord, "Sale recorded")
}

func (h *saleHandler) create(c *gin.Context, asSupplier bool, permission, message string) {
	userID, account, ok := requireDefaultAccount(c, h.accountService, permission)
	if !ok {
		return
	}

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), account, asSupplier, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, message, dto.ToSaleResponse(sale))
}

func (h *saleHandler) listCollections(c *gin.Context) {
	h.list(c, false, "Collections retrieved")
}

func (h *saleHandler) listSales(c *gin.Context) {
	h.list(c, true, "Sales retrieved")
}

func (h *saleHandler) list(c *gin.Context, asSupplier bool, message string) {
	_, account, ok := requireDefaultAccount(c, h.accountService, "")
	if !ok {
		return
	}

	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	sales, err := h.saleService.ListSales(c.Request.Context(), account, asSupplier, params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, message, dto.ToSaleResponses(sales))
}

func (h *saleHandler) updateSale(c *gin.Context) {
	userID, account, ok := requireDefaultAccount(c, h.accountService, domain.PermSalesManage)
	if !ok {
		return
	}

	var req dto.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), account, c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Sale updated", dto.ToSaleResponse(sale))
}

func (h *saleHandler) acceptSale(c *gin.Context) {
	h.changeStatus(c, domain.SaleAccepted, "Sale accepted")
}

func (h *saleHandler) rejectSale(c *gin.Context) {
	h.changeStatus(c, domain.SaleRejected, "Sale rejected")
}

func (h *saleHandler) changeStatus(c *gin.Context, target domain.SaleStatus, message string) {
	userID, account, ok := requireDefaultAccount(c, h.accountService, domain.PermSalesManage)
	if !ok {
		return
	}

	sale, err := h.saleService.ChangeSaleStatus(c.Request.Context(), account, c.Param("id"), target, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, message, dto.ToSaleResponse(sale))
}

func (h *saleHandler) cancelSale(c *gin.Context) {
	userID, account, ok := requireDefaultAccount(c, h.accountService, domain.PermSalesManage)
	if !ok {
		return
	}

	sale, err := h.saleService.CancelSale(c.Request.Context(), account, c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Sale cancelled", dto.ToSaleResponse(sale))
}

func (h *saleHandler) deleteSale(c *gin.Context) {
	userID, account, ok := requireDefaultAccount(c, h.accountService, domain.PermSalesManage)
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), account, c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Sale deleted", nil)
}
