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
	"github.com/shopspring/decimal"
)

type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSaleRepository implements portsrepo.SaleRepositoryFacade
var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const saleColumns = `
	sale_id, supplier_account_id, customer_account_id, quantity, unit_price, total_amount,
	status, sale_at, notes, recorded_by,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSale(row pgx.Row) (*domain.MilkSale, error) {
	var s domain.MilkSale
	err := row.Scan(
		&s.SaleID, &s.SupplierAccountID, &s.CustomerAccountID, &s.Quantity, &s.UnitPrice, &s.TotalAmount,
		&s.Status, &s.SaleAt, &s.Notes, &s.RecordedBy,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan sale: %w", err)
	}
	return &s, nil
}

func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.MilkSale) error {
	query := `
		INSERT INTO milk_sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		sale.SaleID, sale.SupplierAccountID, sale.CustomerAccountID, sale.Quantity, sale.UnitPrice, sale.TotalAmount,
		sale.Status, sale.SaleAt, sale.Notes, sale.RecordedBy,
		sale.CreatedAt, sale.CreatedBy, sale.LastUpdatedAt, sale.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save sale: %w", err)
	}
	return nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.MilkSale, error) {
	query := `SELECT ` + saleColumns + ` FROM milk_sales WHERE sale_id = $1;`
	return scanSale(r.Pool.QueryRow(ctx, query, saleID))
}

func (r *PgxSaleRepository) UpdateSale(ctx context.Context, sale domain.MilkSale) error {
	query := `
		UPDATE milk_sales SET
			supplier_account_id = $2, customer_account_id = $3, quantity = $4, unit_price = $5,
			total_amount = $6, status = $7, sale_at = $8, notes = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE sale_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		sale.SaleID, sale.SupplierAccountID, sale.CustomerAccountID, sale.Quantity, sale.UnitPrice,
		sale.TotalAmount, sale.Status, sale.SaleAt, sale.Notes,
		sale.LastUpdatedAt, sale.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListSales builds the filter clause dynamically; soft-deleted records never
// surface.
func (r *PgxSaleRepository) ListSales(ctx context.Context, accountID string, asSupplier bool, filter domain.SaleFilter) ([]domain.MilkSale, error) {
	sideColumn := "s.customer_account_id"
	counterpartColumn := "s.supplier_account_id"
	if asSupplier {
		sideColumn = "s.supplier_account_id"
		counterpartColumn = "s.customer_account_id"
	}

	query := `
		SELECT s.sale_id, s.supplier_account_id, s.customer_account_id, s.quantity, s.unit_price, s.total_amount,
		       s.status, s.sale_at, s.notes, s.recorded_by,
		       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
		FROM milk_sales s
		WHERE ` + sideColumn + ` = $1 AND s.status <> 'DELETED'`
	args := []any{accountID}

	addArg := func(clause string, value any) {
		args = append(args, value)
		query += " AND " + clause + "$" + strconv.Itoa(len(args))
	}

	if filter.CounterpartCode != "" {
		args = append(args, filter.CounterpartCode)
		query += " AND " + counterpartColumn + " IN (SELECT account_id FROM accounts WHERE code = $" + strconv.Itoa(len(args)) + ")"
	}
	if filter.Status != nil {
		addArg("s.status = ", string(*filter.Status))
	}
	if filter.DateFrom != nil {
		addArg("s.sale_at >= ", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg("s.sale_at <= ", *filter.DateTo)
	}
	if filter.QuantityMin != nil {
		addArg("s.quantity >= ", *filter.QuantityMin)
	}
	if filter.QuantityMax != nil {
		addArg("s.quantity <= ", *filter.QuantityMax)
	}
	if filter.PriceMin != nil {
		addArg("s.unit_price >= ", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		addArg("s.unit_price <= ", *filter.PriceMax)
	}

	args = append(args, filter.Limit)
	query += " ORDER BY s.sale_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.MilkSale{}
	for rows.Next() {
		var s domain.MilkSale
		err := rows.Scan(
			&s.SaleID, &s.SupplierAccountID, &s.CustomerAccountID, &s.Quantity, &s.UnitPrice, &s.TotalAmount,
			&s.Status, &s.SaleAt, &s.Notes, &s.RecordedBy,
			&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", err)
	}
	return sales, nil
}

func (r *PgxSaleRepository) SumAcceptedSales(ctx context.Context, supplierAccountID, customerAccountID string, from, to time.Time) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM milk_sales
		WHERE supplier_account_id = $1 AND customer_account_id = $2
		  AND status = 'ACCEPTED'
		  AND sale_at >= $3 AND sale_at <= $4;
	`
	var total decimal.Decimal
	var count int
	err := r.Pool.QueryRow(ctx, query, supplierAccountID, customerAccountID, from, to).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to sum accepted sales: %w", err)
	}
	return total, count, nil
}
