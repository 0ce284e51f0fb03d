package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPayrollRepository struct {
	BaseRepository
}

func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepositoryFacade {
	return &PgxPayrollRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPayrollRepository implements portsrepo.PayrollRepositoryFacade
var _ portsrepo.PayrollRepositoryFacade = (*PgxPayrollRepository)(nil)

const payslipColumns = `
	payslip_id, customer_account_id, supplier_account_id, supplier_name,
	period_from, period_to, milk_sales_count, gross_amount, deduction_amount, net_amount, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPayslip(row pgx.Row) (*domain.Payslip, error) {
	var p domain.Payslip
	err := row.Scan(
		&p.PayslipID, &p.CustomerAccountID, &p.SupplierAccountID, &p.SupplierName,
		&p.PeriodFrom, &p.PeriodTo, &p.MilkSalesCount, &p.GrossAmount, &p.DeductionAmount, &p.NetAmount, &p.Status,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan payslip: %w", err)
	}
	return &p, nil
}

func (r *PgxPayrollRepository) SavePayslip(ctx context.Context, p domain.Payslip) error {
	query := `
		INSERT INTO payslips (` + payslipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		p.PayslipID, p.CustomerAccountID, p.SupplierAccountID, p.SupplierName,
		p.PeriodFrom, p.PeriodTo, p.MilkSalesCount, p.GrossAmount, p.DeductionAmount, p.NetAmount, p.Status,
		p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payslip: %w", err)
	}
	return nil
}

func (r *PgxPayrollRepository) FindPayslipByID(ctx context.Context, payslipID string) (*domain.Payslip, error) {
	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE payslip_id = $1;`
	return scanPayslip(r.Pool.QueryRow(ctx, query, payslipID))
}

func (r *PgxPayrollRepository) ListPayslips(ctx context.Context, customerAccountID string, from, to *time.Time, limit, offset int) ([]domain.Payslip, error) {
	query := `
		SELECT ` + payslipColumns + `
		FROM payslips
		WHERE customer_account_id = $1`
	args := []any{customerAccountID}

	if from != nil {
		args = append(args, *from)
		query += " AND period_from >= $" + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += " AND period_to <= $" + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payslips: %w", err)
	}
	defer rows.Close()

	payslips := []domain.Payslip{}
	for rows.Next() {
		var p domain.Payslip
		err := rows.Scan(
			&p.PayslipID, &p.CustomerAccountID, &p.SupplierAccountID, &p.SupplierName,
			&p.PeriodFrom, &p.PeriodTo, &p.MilkSalesCount, &p.GrossAmount, &p.DeductionAmount, &p.NetAmount, &p.Status,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip row: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payslip rows: %w", err)
	}
	return payslips, nil
}
