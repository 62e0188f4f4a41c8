package postgres

import (
	"context"
	"errors"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) CreateFreelancer(ctx context.Context, p *domain.FreelancerProfile) error {
	query := `INSERT INTO freelancer_profiles (user_id, skills, experience, portfolio_url, hourly_rate, availability)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, p.UserID, p.Skills, p.Experience, p.PortfolioURL, p.HourlyRate, p.Availability)
	return err
}

func (r *profileRepo) CreateHirer(ctx context.Context, p *domain.HirerProfile) error {
	query := `INSERT INTO hirer_profiles (user_id, company_name, industry, company_size, website)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, p.UserID, p.CompanyName, p.Industry, p.CompanySize, p.Website)
	return err
}

func (r *profileRepo) GetFreelancerByUserID(ctx context.Context, userID string) (*domain.FreelancerProfile, error) {
	query := `SELECT user_id, skills, experience, portfolio_url, hourly_rate, availability
              FROM freelancer_profiles WHERE user_id = $1`
	var p domain.FreelancerProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Skills, &p.Experience, &p.PortfolioURL, &p.HourlyRate, &p.Availability,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetHirerByUserID(ctx context.Context, userID string) (*domain.HirerProfile, error) {
	query := `SELECT user_id, company_name, industry, company_size, website
              FROM hirer_profiles WHERE user_id = $1`
	var p domain.HirerProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.CompanyName, &p.Industry, &p.CompanySize, &p.Website,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) UpdateFreelancer(ctx context.Context, p *domain.FreelancerProfile) error {
	query := `UPDATE freelancer_profiles SET skills = $2, experience = $3, portfolio_url = $4, hourly_rate = $5, availability = $6
              WHERE user_id = $1`
	result, err := r.db.Exec(ctx, query, p.UserID, p.Skills, p.Experience, p.PortfolioURL, p.HourlyRate, p.Availability)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) UpdateHirer(ctx context.Context, p *domain.HirerProfile) error {
	query := `UPDATE hirer_profiles SET company_name = $2, industry = $3, company_size = $4, website = $5
              WHERE user_id = $1`
	result, err := r.db.Exec(ctx, query, p.UserID, p.CompanyName, p.Industry, p.CompanySize, p.Website)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
