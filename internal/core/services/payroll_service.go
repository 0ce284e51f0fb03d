package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/gemura/gemura-backend/internal/dto"
	"github.com/gemura/gemura-backend/internal/metrics"
	"github.com/gemura/gemura-backend/internal/middleware"
)

// PayrollService aggregates accepted milk sales into per-supplier payslips.
// One failing supplier never aborts the batch; it is reported under Skipped.
type PayrollService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	saleRepo    portsrepo.SaleRepositoryFacade
	feeRepo     portsrepo.FeeRepositoryFacade
	payrollRepo portsrepo.PayrollRepositoryFacade
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(accountRepo portsrepo.AccountRepositoryFacade, saleRepo portsrepo.SaleRepositoryFacade, feeRepo portsrepo.FeeRepositoryFacade, payrollRepo portsrepo.PayrollRepositoryFacade) *PayrollService {
	return &PayrollService{accountRepo: accountRepo, saleRepo: saleRepo, feeRepo: feeRepo, payrollRepo: payrollRepo}
}

// GeneratePayroll runs aggregation for each named supplier over the period:
// gross = sum of accepted sales to the caller's account, minus recorded
// deductions, minus the charges of fee rules active at the period end. The
// payslips are persisted with status GENERATED.
func (s *PayrollService) GeneratePayroll(ctx context.Context, customerAccount *domain.Account, req dto.GeneratePayrollRequest, actorUserID string) (*domain.PayrollResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DateTo.Before(req.DateFrom) {
		return nil, apperrors.NewValidation("date_to cannot precede date_from")
	}
	from := req.DateFrom.UTC()
	to := EndOfDay(req.DateTo.UTC())

	result := &domain.PayrollResult{TotalAmount: decimal.Zero}
	now := time.Now().UTC()

	for _, code := range req.SupplierAccountCodes {
		payslip, err := s.buildPayslip(ctx, customerAccount, code, from, to, now, actorUserID)
		if err != nil {
			logger.Warn("Supplier skipped in payroll batch",
				slog.String("supplier_code", code),
				slog.String("reason", err.Error()))
			result.SuppliersSkipped++
			result.Skipped = append(result.Skipped, domain.PayrollSkipped{
				SupplierCode: code,
				Reason:       skipReason(err),
			})
			continue
		}
		result.SuppliersProcessed++
		result.TotalAmount = result.TotalAmount.Add(payslip.NetAmount)
		result.Payslips = append(result.Payslips, *payslip)
	}

	outcome := "success"
	if result.SuppliersSkipped > 0 {
		outcome = "partial"
	}
	metrics.PayrollBatchesTotal.WithLabelValues(outcome).Inc()
	logger.Info("Payroll batch completed",
		slog.Int("processed", result.SuppliersProcessed),
		slog.Int("skipped", result.SuppliersSkipped),
		slog.String("total", result.TotalAmount.String()))
	return result, nil
}

// buildPayslip aggregates one supplier and persists the payslip.
func (s *PayrollService) buildPayslip(ctx context.Context, customerAccount *domain.Account, supplierCode string, from, to, now time.Time, actorUserID string) (*domain.Payslip, error) {
	supplier, err := s.accountRepo.FindAccountByCode(ctx, supplierCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("Supplier account not found")
		}
		return nil, fmt.Errorf("failed to resolve supplier: %w", err)
	}
	if !supplier.IsActive() {
		return nil, apperrors.NewNotFound("Supplier account not found")
	}

	gross, count, err := s.saleRepo.SumAcceptedSales(ctx, supplier.AccountID, customerAccount.AccountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales: %w", err)
	}

	deductions, err := s.feeRepo.SumDeductions(ctx, supplier.AccountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum deductions: %w", err)
	}

	rules, err := s.feeRepo.ListActiveFeeRules(ctx, supplier.AccountID, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load fee rules: %w", err)
	}
	for _, rule := range rules {
		deductions = deductions.Add(rule.Evaluate(gross))
	}

	payslip := domain.Payslip{
		PayslipID:         uuid.NewString(),
		CustomerAccountID: customerAccount.AccountID,
		SupplierAccountID: supplier.AccountID,
		SupplierName:      supplier.Name,
		PeriodFrom:        from,
		PeriodTo:          to,
		MilkSalesCount:    count,
		GrossAmount:       gross,
		DeductionAmount:   deductions,
		NetAmount:         gross.Sub(deductions),
		Status:            domain.PayslipGenerated,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.payrollRepo.SavePayslip(ctx, payslip); err != nil {
		return nil, fmt.Errorf("failed to save payslip: %w", err)
	}
	return &payslip, nil
}

// skipReason surfaces app-level messages but hides raw infrastructure errors
// from the batch report.
func skipReason(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Aggregation failed"
}

// ListPayslips pages the caller's persisted payslips, newest first.
func (s *PayrollService) ListPayslips(ctx context.Context, customerAccountID string, params dto.ListPayslipsParams) ([]domain.Payslip, error) {
	var from, to *time.Time
	if params.DateFrom != "" {
		t, err := time.Parse("2006-01-02", params.DateFrom)
		if err != nil {
			return nil, apperrors.NewValidation("date_from must be YYYY-MM-DD")
		}
		from = &t
	}
	if params.DateTo != "" {
		t, err := time.Parse("2006-01-02", params.DateTo)
		if err != nil {
			return nil, apperrors.NewValidation("date_to must be YYYY-MM-DD")
		}
		t = EndOfDay(t)
		to = &t
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	payslips, err := s.payrollRepo.ListPayslips(ctx, customerAccountID, from, to, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	return payslips, nil
}

// RenderPayslipPDF produces a printable payslip document.
func (s *PayrollService) RenderPayslipPDF(ctx context.Context, customerAccountID, payslipID string) ([]byte, error) {
	p, err := s.payrollRepo.FindPayslipByID(ctx, payslipID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("Payslip not found")
		}
		return nil, fmt.Errorf("failed to find payslip: %w", err)
	}
	if p.CustomerAccountID != customerAccountID {
		return nil, apperrors.NewNotFound("Payslip not found")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Supplier Payslip")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Supplier", p.SupplierName},
		{"Period", fmt.Sprintf("%s to %s", p.PeriodFrom.Format("2006-01-02"), p.PeriodTo.Format("2006-01-02"))},
		{"Milk sales", fmt.Sprintf("%d", p.MilkSalesCount)},
		{"Gross amount", p.GrossAmount.StringFixed(2)},
		{"Deductions", p.DeductionAmount.StringFixed(2)},
		{"Net amount", p.NetAmount.StringFixed(2)},
		{"Status", string(p.Status)},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 8, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 8, "Generated on "+time.Now().UTC().Format("2006-01-02 15:04")+" UTC")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip PDF: %w", err)
	}
	return buf.Bytes(), nil
}
