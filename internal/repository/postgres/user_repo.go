package postgres

import (
	"context"
	"errors"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

// CreateWithProfile inserts the user and its role-matched profile row in one
// transaction, so a registered user always has a profile.
func (r *userRepo) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO users (id, email, display_name, role, password_hash, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = tx.Exec(ctx, query, user.ID, user.Email, user.DisplayName, user.Role, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("User with this email already exists")
		}
		return apperror.Internal(err)
	}

	switch {
	case profile.Freelancer != nil:
		p := profile.Freelancer
		_, err = tx.Exec(ctx,
			`INSERT INTO freelancer_profiles (user_id, skills, experience, portfolio_url, hourly_rate, availability)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			p.UserID, p.Skills, p.Experience, p.PortfolioURL, p.HourlyRate, p.Availability)
	case profile.Hirer != nil:
		p := profile.Hirer
		_, err = tx.Exec(ctx,
			`INSERT INTO hirer_profiles (user_id, company_name, industry, company_size, website)
             VALUES ($1, $2, $3, $4, $5)`,
			p.UserID, p.CompanyName, p.Industry, p.CompanySize, p.Website)
	}
	if err != nil {
		return apperror.Internal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, display_name, role, password_hash, created_at, updated_at FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, display_name, role, password_hash, created_at, updated_at FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// Update never writes the role column: a user's role is immutable after
// registration.
func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email = $2, display_name = $3, password_hash = $4, updated_at = $5 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, user.ID, user.Email, user.DisplayName, user.PasswordHash, user.UpdatedAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.Role, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
