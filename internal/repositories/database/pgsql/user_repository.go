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
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `
	user_id, name, phone, email, password_hash, national_id, default_account_id,
	kyc_province, kyc_district, kyc_sector, kyc_cell, kyc_village,
	kyc_id_front_photo, kyc_id_back_photo, kyc_selfie_photo, kyc_status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.NationalID, &u.DefaultAccountID,
		&u.KYC.Province, &u.KYC.District, &u.KYC.Sector, &u.KYC.Cell, &u.KYC.Village,
		&u.KYC.IDFrontPhoto, &u.KYC.IDBackPhoto, &u.KYC.SelfiePhoto, &u.KYCStatus,
		&u.CreatedAt, &u.CreatedBy, &u.LastUpdatedAt, &u.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		user.UserID, user.Name, user.Phone, user.Email, user.PasswordHash, user.NationalID, user.DefaultAccountID,
		user.KYC.Province, user.KYC.District, user.KYC.Sector, user.KYC.Cell, user.KYC.Village,
		user.KYC.IDFrontPhoto, user.KYC.IDBackPhoto, user.KYC.SelfiePhoto, user.KYCStatus,
		user.CreatedAt, user.CreatedBy, user.LastUpdatedAt, user.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return scanUser(r.Pool.QueryRow(ctx, query, userID))
}

func (r *PgxUserRepository) FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE (phone = $1 AND phone <> '') OR (email = $1 AND email <> '')
		LIMIT 1;
	`
	return scanUser(r.Pool.QueryRow(ctx, query, identifier))
}

func (r *PgxUserRepository) FindUserByContact(ctx context.Context, phone, email, nationalID string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE (phone = $1 AND $1 <> '')
		   OR (email = $2 AND $2 <> '')
		   OR (national_id = $3 AND $3 <> '')
		LIMIT 1;
	`
	return scanUser(r.Pool.QueryRow(ctx, query, phone, email, nationalID))
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users SET
			name = $2, phone = $3, email = $4, password_hash = $5, national_id = $6,
			kyc_province = $7, kyc_district = $8, kyc_sector = $9, kyc_cell = $10, kyc_village = $11,
			kyc_id_front_photo = $12, kyc_id_back_photo = $13, kyc_selfie_photo = $14, kyc_status = $15,
			last_updated_at = $16, last_updated_by = $17
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		user.UserID, user.Name, user.Phone, user.Email, user.PasswordHash, user.NationalID,
		user.KYC.Province, user.KYC.District, user.KYC.Sector, user.KYC.Cell, user.KYC.Village,
		user.KYC.IDFrontPhoto, user.KYC.IDBackPhoto, user.KYC.SelfiePhoto, user.KYCStatus,
		user.LastUpdatedAt, user.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateDefaultAccount(ctx context.Context, userID string, accountID string, updatedBy string) error {
	query := `
		UPDATE users SET default_account_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, accountID, time.Now().UTC(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update default account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
