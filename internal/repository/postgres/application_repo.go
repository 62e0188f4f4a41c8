package postgres

import (
	"context"
	"errors"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.JobApplication) error {
	query := `
		INSERT INTO applications (job_id, freelancer_id, cover_letter, proposed_budget, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	err := r.db.QueryRow(ctx, query,
		app.JobID,
		app.FreelancerID,
		app.CoverLetter,
		app.ProposedBudget,
		app.Status,
		app.CreatedAt,
		app.UpdatedAt,
	).Scan(&app.ID)
	if err != nil {
		// Two racing submits can both pass the usecase's duplicate check;
		// the unique (job_id, freelancer_id) pair settles it here.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("You have already applied to this job")
		}
		return err
	}
	return nil
}

// GetByID retrieves an application with joined job and freelancer data.
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.JobApplication, error) {
	query := `
		SELECT
			a.id, a.job_id, a.freelancer_id, a.cover_letter, a.proposed_budget,
			a.status, a.created_at, a.updated_at,
			j.title as job_title,
			u.display_name as freelancer_name
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		LEFT JOIN users u ON a.freelancer_id = u.id
		WHERE a.id = $1`

	var app domain.JobApplication
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.FreelancerID, &app.CoverLetter, &app.ProposedBudget,
		&app.Status, &app.CreatedAt, &app.UpdatedAt,
		&app.JobTitle, &app.FreelancerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.JobApplication, error) {
	query := `
		SELECT
			a.id, a.job_id, a.freelancer_id, a.cover_letter, a.proposed_budget,
			a.status, a.created_at, a.updated_at,
			u.display_name as freelancer_name
		FROM applications a
		LEFT JOIN users u ON a.freelancer_id = u.id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.JobApplication
	for rows.Next() {
		var app domain.JobApplication
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.FreelancerID, &app.CoverLetter, &app.ProposedBudget,
			&app.Status, &app.CreatedAt, &app.UpdatedAt,
			&app.FreelancerName,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

func (r *applicationRepo) GetByFreelancerID(ctx context.Context, freelancerID string) ([]domain.JobApplication, error) {
	query := `
		SELECT
			a.id, a.job_id, a.freelancer_id, a.cover_letter, a.proposed_budget,
			a.status, a.created_at, a.updated_at,
			j.title as job_title
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.freelancer_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, freelancerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.JobApplication
	for rows.Next() {
		var app domain.JobApplication
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.FreelancerID, &app.CoverLetter, &app.ProposedBudget,
			&app.Status, &app.CreatedAt, &app.UpdatedAt,
			&app.JobTitle,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

func (r *applicationRepo) Exists(ctx context.Context, jobID int64, freelancerID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND freelancer_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, freelancerID).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Accept applies the accept side effects as one all-or-nothing transaction:
// the application becomes ACCEPTED, its job becomes FILLED, and every sibling
// still PENDING becomes REJECTED. SHORTLISTED and other non-pending siblings
// are left untouched. The application row is re-read inside the transaction
// so a concurrent accept or withdraw makes this call fail without mutating
// anything.
func (r *applicationRepo) Accept(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var jobID int64
	var status string
	err = tx.QueryRow(ctx, `SELECT job_id, status FROM applications WHERE id = $1 FOR UPDATE`, id).Scan(&jobID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if status != domain.ApplicationStatusPending && status != domain.ApplicationStatusShortlisted {
		return domain.ErrNotFound
	}

	now := time.Now()
	if _, err := tx.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`,
		id, domain.ApplicationStatusAccepted, now,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE jobs SET status = $2, updated_at = $3 WHERE id = $1`,
		jobID, domain.JobStatusFilled, now,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = $3 WHERE job_id = $1 AND id <> $4 AND status = $5`,
		jobID, domain.ApplicationStatusRejected, now, id, domain.ApplicationStatusPending,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
