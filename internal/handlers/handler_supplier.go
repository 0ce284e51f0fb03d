package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

// supplierHandler manages the caller's supplier roster and relationship
// pricing.
type supplierHandler struct {
	accountService  *services.AccountService
	supplierService *services.SupplierService
}

func newSupplierHandler(as *services.AccountService, ss *services.SupplierService) *supplierHandler {
	return &supplierHandler{accountService: as, supplierService: ss}
}

func registerSupplierRoutes(rg *gin.RouterGroup, accountService *services.AccountService, supplierService *services.SupplierService) {
	h := newSupplierHandler(accountService, supplierService)

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.PUT("/:id/relationship", h.updateRelationship)
	}
	rg.GET("/customers", h.listCustomers)
}

func (h *supplierHandler) createSupplier(c *gin.Context) {
	userID, account, ok := requireDefaultAccount(c, h.accountService, domain.PermSuppliersManage)
	if !ok {
		return
	}

	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.supplierService.CreateOrUpdateSupplier(c.Request.Context(), account, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	code := http.StatusOK
	message := "Supplier relationship updated"
	if resp.Created {
		code = http.StatusCreated
		message = "Supplier created"
	}
	respondSuccess(c, code, message, resp)
}

func (h *supplierHandler) listSuppliers(c *gin.Context) {
	_, account, ok := requireDefaultAccount(c, h.accountService, "")
	if !ok {
		return
	}

	rels, err := h.supplierService.ListSuppliers(c.Request.Context(), account.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Suppliers retrieved", toRelationshipResponses(rels))
}

func (h *supplierHandler) listCustomers(c *gin.Context) {
	_, account, ok := requireDefaultAccount(c, h.accountService, "")
	if !ok {
		return
	}

	rels, err := h.supplierService.ListCustomers(c.Request.Context(), account.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Customers retrieved", toRelationshipResponses(rels))
}

func (h *supplierHandler) updateRelationship(c *gin.Context) {
	userID, account, ok := requireDefaultAccount(c, h.accountService, domain.PermSuppliersManage)
	if !ok {
		return
	}

	var req dto.UpdateRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rel, err := h.supplierService.UpdateRelationship(c.Request.Context(), account.AccountID, c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Relationship updated", dto.ToRelationshipResponse(rel))
}

func toRelationshipResponses(rels []domain.SupplierCustomer) []dto.RelationshipResponse {
	res := make([]dto.RelationshipResponse, len(rels))
	for i := range rels {
		res[i] = dto.ToRelationshipResponse(&rels[i])
	}
	return res
}
