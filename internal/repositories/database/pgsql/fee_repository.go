package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxFeeRepository struct {
	BaseRepository
}

func newPgxFeeRepository(pool *pgxpool.Pool) portsrepo.FeeRepositoryFacade {
	return &PgxFeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxFeeRepository implements portsrepo.FeeRepositoryFacade
var _ portsrepo.FeeRepositoryFacade = (*PgxFeeRepository)(nil)

const feeTypeColumns = `
	fee_type_id, code, name, category, calculation_type,
	created_at, created_by, last_updated_at, last_updated_by`

func scanFeeType(row pgx.Row) (*domain.FeeType, error) {
	var ft domain.FeeType
	err := row.Scan(
		&ft.FeeTypeID, &ft.Code, &ft.Name, &ft.Category, &ft.CalculationType,
		&ft.CreatedAt, &ft.CreatedBy, &ft.LastUpdatedAt, &ft.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan fee type: %w", err)
	}
	return &ft, nil
}

func (r *PgxFeeRepository) SaveFeeType(ctx context.Context, ft domain.FeeType) error {
	query := `
		INSERT INTO fee_types (` + feeTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		ft.FeeTypeID, ft.Code, ft.Name, ft.Category, ft.CalculationType,
		ft.CreatedAt, ft.CreatedBy, ft.LastUpdatedAt, ft.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save fee type: %w", err)
	}
	return nil
}

func (r *PgxFeeRepository) FindFeeTypeByID(ctx context.Context, feeTypeID string) (*domain.FeeType, error) {
	query := `SELECT ` + feeTypeColumns + ` FROM fee_types WHERE fee_type_id = $1;`
	return scanFeeType(r.Pool.QueryRow(ctx, query, feeTypeID))
}

func (r *PgxFeeRepository) FindFeeTypeByCode(ctx context.Context, code string) (*domain.FeeType, error) {
	query := `SELECT ` + feeTypeColumns + ` FROM fee_types WHERE code = $1;`
	return scanFeeType(r.Pool.QueryRow(ctx, query, code))
}

func (r *PgxFeeRepository) ListFeeTypes(ctx context.Context) ([]domain.FeeType, error) {
	query := `SELECT ` + feeTypeColumns + ` FROM fee_types ORDER BY code ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee types: %w", err)
	}
	defer rows.Close()

	types := []domain.FeeType{}
	for rows.Next() {
		var ft domain.FeeType
		err := rows.Scan(
			&ft.FeeTypeID, &ft.Code, &ft.Name, &ft.Category, &ft.CalculationType,
			&ft.CreatedAt, &ft.CreatedBy, &ft.LastUpdatedAt, &ft.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee type row: %w", err)
		}
		types = append(types, ft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee type rows: %w", err)
	}
	return types, nil
}

const feeRuleColumns = `
	rule_id, fee_type_id, supplier_account_id, calculation_type, amount,
	min_amount, max_amount, effective_from, effective_to,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxFeeRepository) SaveFeeRule(ctx context.Context, rule domain.SupplierFeeRule) error {
	query := `
		INSERT INTO supplier_fee_rules (` + feeRuleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		rule.RuleID, rule.FeeTypeID, rule.SupplierAccountID, rule.CalculationType, rule.Amount,
		rule.MinAmount, rule.MaxAmount, rule.EffectiveFrom, rule.EffectiveTo,
		rule.CreatedAt, rule.CreatedBy, rule.LastUpdatedAt, rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save fee rule: %w", err)
	}
	return nil
}

func (r *PgxFeeRepository) ListActiveFeeRules(ctx context.Context, supplierAccountID string, at time.Time) ([]domain.SupplierFeeRule, error) {
	query := `
		SELECT ` + feeRuleColumns + `
		FROM supplier_fee_rules
		WHERE supplier_account_id = $1
		  AND effective_from <= $2
		  AND (effective_to IS NULL OR effective_to >= $2)
		ORDER BY effective_from ASC;
	`
	return r.queryFeeRules(ctx, query, supplierAccountID, at)
}

func (r *PgxFeeRepository) ListFeeRulesBySupplier(ctx context.Context, supplierAccountID string) ([]domain.SupplierFeeRule, error) {
	query := `
		SELECT ` + feeRuleColumns + `
		FROM supplier_fee_rules
		WHERE supplier_account_id = $1
		ORDER BY effective_from DESC;
	`
	return r.queryFeeRules(ctx, query, supplierAccountID)
}

func (r *PgxFeeRepository) queryFeeRules(ctx context.Context, query string, args ...any) ([]domain.SupplierFeeRule, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee rules: %w", err)
	}
	defer rows.Close()

	rules := []domain.SupplierFeeRule{}
	for rows.Next() {
		var rule domain.SupplierFeeRule
		err := rows.Scan(
			&rule.RuleID, &rule.FeeTypeID, &rule.SupplierAccountID, &rule.CalculationType, &rule.Amount,
			&rule.MinAmount, &rule.MaxAmount, &rule.EffectiveFrom, &rule.EffectiveTo,
			&rule.CreatedAt, &rule.CreatedBy, &rule.LastUpdatedAt, &rule.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee rule row: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee rule rows: %w", err)
	}
	return rules, nil
}

const deductionColumns = `
	deduction_id, supplier_account_id, fee_type_id, milk_sale_id, amount, reason, applied_at,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxFeeRepository) SaveDeduction(ctx context.Context, d domain.SupplierDeduction) error {
	query := `
		INSERT INTO supplier_deductions (` + deductionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		d.DeductionID, d.SupplierAccountID, d.FeeTypeID, d.MilkSaleID, d.Amount, d.Reason, d.AppliedAt,
		d.CreatedAt, d.CreatedBy, d.LastUpdatedAt, d.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save deduction: %w", err)
	}
	return nil
}

func (r *PgxFeeRepository) ListDeductionsBySupplier(ctx context.Context, supplierAccountID string, limit, offset int) ([]domain.SupplierDeduction, error) {
	query := `
		SELECT ` + deductionColumns + `
		FROM supplier_deductions
		WHERE supplier_account_id = $1
		ORDER BY applied_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, supplierAccountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query deductions: %w", err)
	}
	defer rows.Close()

	deductions := []domain.SupplierDeduction{}
	for rows.Next() {
		var d domain.SupplierDeduction
		err := rows.Scan(
			&d.DeductionID, &d.SupplierAccountID, &d.FeeTypeID, &d.MilkSaleID, &d.Amount, &d.Reason, &d.AppliedAt,
			&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deduction row: %w", err)
		}
		deductions = append(deductions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deduction rows: %w", err)
	}
	return deductions, nil
}

func (r *PgxFeeRepository) SumDeductions(ctx context.Context, supplierAccountID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM supplier_deductions
		WHERE supplier_account_id = $1 AND applied_at >= $2 AND applied_at <= $3;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, supplierAccountID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum deductions: %w", err)
	}
	return total, nil
}
