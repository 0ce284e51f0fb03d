package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayslipStatus is the settlement state of a generated payslip.
type PayslipStatus string

const (
	PayslipGenerated PayslipStatus = "GENERATED"
	PayslipPaid      PayslipStatus = "PAID"
)

// Payslip is the persisted output of one supplier's payroll aggregation over
// a period: accepted sales summed into a gross, deductions subtracted into a
// net.
type Payslip struct {
	PayslipID         string          `json:"payslipID"`
	CustomerAccountID string          `json:"customerAccountID"` // The paying business
	SupplierAccountID string          `json:"supplierAccountID"`
	SupplierName      string          `json:"supplierName"`
	PeriodFrom        time.Time       `json:"periodFrom"`
	PeriodTo          time.Time       `json:"periodTo"`
	MilkSalesCount    int             `json:"milkSalesCount"`
	GrossAmount       decimal.Decimal `json:"grossAmount"`
	DeductionAmount   decimal.Decimal `json:"deductionAmount"`
	NetAmount         decimal.Decimal `json:"netAmount"`
	Status            PayslipStatus   `json:"status"`
	AuditFields
}

// PayrollResult summarizes one payroll batch. A failing supplier is recorded
// under Skipped without aborting the rest of the batch.
type PayrollResult struct {
	SuppliersProcessed int              `json:"suppliersProcessed"`
	SuppliersSkipped   int              `json:"suppliersSkipped"`
	TotalAmount        decimal.Decimal  `json:"totalAmount"`
	Payslips           []Payslip        `json:"payslips"`
	Skipped            []PayrollSkipped `json:"skipped,omitempty"`
}

// PayrollSkipped names a supplier whose aggregation failed and why.
type PayrollSkipped struct {
	SupplierCode string `json:"supplierCode"`
	Reason       string `json:"reason"`
}
