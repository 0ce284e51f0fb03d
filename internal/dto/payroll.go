package dto

import (
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GeneratePayrollRequest runs payroll aggregation for the given suppliers
// over a date range.
type GeneratePayrollRequest struct {
	SupplierAccountCodes []string  `json:"supplier_account_codes" binding:"required,min=1"`
	DateFrom             time.Time `json:"date_from" binding:"required"`
	DateTo               time.Time `json:"date_to" binding:"required"`
}

// ListPayslipsParams filters persisted payslips.
type ListPayslipsParams struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Limit    int    `form:"limit,default=20"`
	Offset   int    `form:"offset,default=0"`
}

// PayslipResponse mirrors domain.Payslip.
type PayslipResponse struct {
	PayslipID         string               `json:"payslipID"`
	SupplierAccountID string               `json:"supplierAccountID"`
	SupplierName      string               `json:"supplierName"`
	PeriodFrom        time.Time            `json:"periodFrom"`
	PeriodTo          time.Time            `json:"periodTo"`
	MilkSalesCount    int                  `json:"milkSalesCount"`
	GrossAmount       decimal.Decimal      `json:"grossAmount"`
	DeductionAmount   decimal.Decimal      `json:"deductionAmount"`
	NetAmount         decimal.Decimal      `json:"netAmount"`
	Status            domain.PayslipStatus `json:"status"`
}

// ToPayslipResponse converts a domain.Payslip to its DTO.
func ToPayslipResponse(p *domain.Payslip) PayslipResponse {
	return PayslipResponse{
		PayslipID:         p.PayslipID,
		SupplierAccountID: p.SupplierAccountID,
		SupplierName:      p.SupplierName,
		PeriodFrom:        p.PeriodFrom,
		PeriodTo:          p.PeriodTo,
		MilkSalesCount:    p.MilkSalesCount,
		GrossAmount:       p.GrossAmount,
		DeductionAmount:   p.DeductionAmount,
		NetAmount:         p.NetAmount,
		Status:            p.Status,
	}
}

// PayrollResultResponse summarizes one payroll batch.
type PayrollResultResponse struct {
	SuppliersProcessed int                     `json:"suppliers_processed"`
	SuppliersSkipped   int                     `json:"suppliers_skipped"`
	TotalAmount        decimal.Decimal         `json:"total_amount"`
	Payslips           []PayslipResponse       `json:"payslips"`
	Skipped            []domain.PayrollSkipped `json:"skipped,omitempty"`
}

// ToPayrollResultResponse converts a domain.PayrollResult to its DTO.
func ToPayrollResultResponse(r *domain.PayrollResult) PayrollResultResponse {
	resp := PayrollResultResponse{
		SuppliersProcessed: r.SuppliersProcessed,
		SuppliersSkipped:   r.SuppliersSkipped,
		TotalAmount:        r.TotalAmount,
		Skipped:            r.Skipped,
	}
	for i := range r.Payslips {
		resp.Payslips = append(resp.Payslips, ToPayslipResponse(&r.Payslips[i]))
	}
	return resp
}
