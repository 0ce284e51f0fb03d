package repositories

import (
	"context"
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
)

// PayrollRepositoryFacade defines persistence for generated payslips.
type PayrollRepositoryFacade interface {
	SavePayslip(ctx context.Context, p domain.Payslip) error
	FindPayslipByID(ctx context.Context, payslipID string) (*domain.Payslip, error)
	ListPayslips(ctx context.Context, customerAccountID string, from, to *time.Time, limit, offset int) ([]domain.Payslip, error)
}
