package postgres

import (
	"context"
	"errors"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/validation"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type categoryRepo struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) domain.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return scanCategory(r.db.QueryRow(ctx,
		`SELECT id, name, description, slug FROM categories WHERE id = $1`, id))
}

func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return scanCategory(r.db.QueryRow(ctx,
		`SELECT id, name, description, slug FROM categories WHERE slug = $1`, slug))
}

func (r *categoryRepo) Fetch(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Slug); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

type skillRepo struct {
	db *pgxpool.Pool
}

func NewSkillRepository(db *pgxpool.Pool) domain.SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) Fetch(ctx context.Context) ([]domain.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, slug FROM skills ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSkills(rows)
}

func (r *skillRepo) GetBySlugs(ctx context.Context, slugs []string) ([]domain.Skill, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, name, slug FROM skills WHERE slug = ANY($1) ORDER BY name`, slugs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSkills(rows)
}

// GetOrCreate resolves each name to a skill row, creating missing ones. The
// upsert keys on the slug derived from the name, so "Go" and "go" resolve to
// the same skill.
func (r *skillRepo) GetOrCreate(ctx context.Context, names []string) ([]domain.Skill, error) {
	var skills []domain.Skill
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		slug := validation.Slugify(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true

		var skill domain.Skill
		err := r.db.QueryRow(ctx,
			`INSERT INTO skills (name, slug) VALUES ($1, $2)
             ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
             RETURNING id, name, slug`,
			name, slug,
		).Scan(&skill.ID, &skill.Name, &skill.Slug)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

func collectSkills(rows pgx.Rows) ([]domain.Skill, error) {
	var skills []domain.Skill
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}
