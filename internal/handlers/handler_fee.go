package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

// feeHandler manages the fee catalog, supplier fee rules and deductions.
type feeHandler struct {
	accountService *services.AccountService
	feeService     *services.FeeService
}

func newFeeHandler(as *services.AccountService, fs *services.FeeService) *feeHandler {
	return &feeHandler{accountService: as, feeService: fs}
}

func registerFeeRoutes(rg *gin.RouterGroup, accountService *services.AccountService, feeService *services.FeeService) {
	h := newFeeHandler(accountService, feeService)

	feeTypes := rg.Group("/accounting/fee-types")
	{
		feeTypes.POST("", h.createFeeType)
		feeTypes.GET("", h.listFeeTypes)
	}
	feeRules := rg.Group("/accounting/fee-rules")
	{
		feeRules.POST("", h.createFeeRule)
		feeRules.GET("", h.listFeeRules)
	}
	deductions := rg.Group("/accounting/deductions")
	{
		deductions.POST("", h.createDeduction)
		deductions.GET("", h.listDeductions)
	}
}

func (h *feeHandler) createFeeType(c *gin.Context) {
	userID, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingManage)
	if !ok {
		return
	}

	var req dto.CreateFeeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ft, err := h.feeService.CreateFeeType(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Fee type created", dto.ToFeeTypeResponse(ft))
}

func (h *feeHandler) listFeeTypes(c *gin.Context) {
	_, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingView)
	if !ok {
		return
	}

	types, err := h.feeService.ListFeeTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.FeeTypeResponse, len(types))
	for i := range types {
		res[i] = dto.ToFeeTypeResponse(&types[i])
	}
	respondSuccess(c, http.StatusOK, "Fee types retrieved", res)
}

func (h *feeHandler) createFeeRule(c *gin.Context) {
	userID, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingManage)
	if !ok {
		return
	}

	var req dto.CreateFeeRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rule, err := h.feeService.CreateFeeRule(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Fee rule created", dto.ToFeeRuleResponse(rule))
}

func (h *feeHandler) listFeeRules(c *gin.Context) {
	_, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingView)
	if !ok {
		return
	}

	code := c.Query("supplier_account_code")
	if code == "" {
		c.JSON(http.StatusBadRequest, dto.Error(http.StatusBadRequest, "supplier_account_code is required"))
		return
	}

	rules, err := h.feeService.ListFeeRules(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.FeeRuleResponse, len(rules))
	for i := range rules {
		res[i] = dto.ToFeeRuleResponse(&rules[i])
	}
	respondSuccess(c, http.StatusOK, "Fee rules retrieved", res)
}

func (h *feeHandler) createDeduction(c *gin.Context) {
	userID, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingManage)
	if !ok {
		return
	}

	var req dto.CreateDeductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	d, err := h.feeService.CreateDeduction(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Deduction recorded", dto.ToDeductionResponse(d))
}

func (h *feeHandler) listDeductions(c *gin.Context) {
	_, _, ok := requireDefaultAccount(c, h.accountService, domain.PermAccountingView)
	if !ok {
		return
	}

	code := c.Query("supplier_account_code")
	if code == "" {
		c.JSON(http.StatusBadRequest, dto.Error(http.StatusBadRequest, "supplier_account_code is required"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	deductions, err := h.feeService.ListDeductions(c.Request.Context(), code, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.DeductionResponse, len(deductions))
	for i := range deductions {
		res[i] = dto.ToDeductionResponse(&deductions[i])
	}
	respondSuccess(c, http.StatusOK, "Deductions retrieved", res)
}
