package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

type payrollHandler struct {
	accountService *services.AccountService
	payrollService *services.PayrollService
}

func newPayrollHandler(as *services.AccountService, ps *services.PayrollService) *payrollHandler {
	return &payrollHandler{accountService: as, payrollService: ps}
}

func registerPayrollRoutes(rg *gin.RouterGroup, accountService *services.AccountService, payrollService *services.PayrollService) {
	h := newPayrollHandler(accountService, payrollService)

	payroll := rg.Group("/payroll")
	{
		payroll.POST("/generate", h.generate)
		payroll.GET("/payslips", h.listPayslips)
		payroll.GET("/payslips/:id/pdf", h.payslipPDF)
	}
}

func (h *payrollHandler) generate(c *gin.Context) {
	userID, account, ok := requireDefaultAccount(c, h.accountService, domain.PermPayrollGenerate)
	if !ok {
		return
	}

	var req dto.GeneratePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.payrollService.GeneratePayroll(c.Request.Context(), account, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Payroll generated", dto.ToPayrollResultResponse(result))
}

func (h *payrollHandler) listPayslips(c *gin.Context) {
	_, account, ok := requireDefaultAccount(c, h.accountService, domain.PermPayrollGenerate)
	if !ok {
		return
	}

	var params dto.ListPayslipsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	payslips, err := h.payrollService.ListPayslips(c.Request.Context(), account.AccountID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.PayslipResponse, len(payslips))
	for i := range payslips {
		res[i] = dto.ToPayslipResponse(&payslips[i])
	}
	respondSuccess(c, http.StatusOK, "Payslips retrieved", res)
}

func (h *payrollHandler) payslipPDF(c *gin.Context) {
	_, account, ok := requireDefaultAccount(c, h.accountService, domain.PermPayrollGenerate)
	if !ok {
		return
	}

	pdfBytes, err := h.payrollService.RenderPayslipPDF(c.Request.Context(), account.AccountID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
