package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, hirer_id, title, description, status, category_id, budget_min, budget_max, fixed_budget, duration, deadline, is_remote, location, experience_level, is_public, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

// Create inserts the job and its skill links in one transaction.
func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO jobs (hirer_id, title, description, status, category_id, budget_min, budget_max, fixed_budget, duration, deadline, is_remote, location, experience_level, is_public, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	err = tx.QueryRow(ctx, query,
		job.HirerID, job.Title, job.Description, job.Status, job.CategoryID,
		job.BudgetMin, job.BudgetMax, job.FixedBudget, job.Duration, job.Deadline,
		job.IsRemote, job.Location, job.ExperienceLevel, job.IsPublic,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
	if err != nil {
		return err
	}

	if err := replaceSkills(ctx, tx, job.ID, job.Skills); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachSkills(ctx, []*domain.Job{job}); err != nil {
		return nil, err
	}
	return job, nil
}

// searchWhere builds the WHERE clauses for Search. The clauses are ANDed and
// the returned args line up with their $n placeholders. Every filter narrows
// the base predicate over public published jobs; the skills filter requires
// the job's skill set to contain every requested slug.
func searchWhere(q domain.JobSearchQuery) ([]string, []interface{}) {
	where := []string{"j.status = 'PUBLISHED'", "j.is_public = TRUE"}
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Keyword != "" {
		p := arg("%" + q.Keyword + "%")
		where = append(where, fmt.Sprintf("(j.title ILIKE %s OR j.description ILIKE %s)", p, p))
	}
	if q.CategoryID != nil {
		where = append(where, fmt.Sprintf("j.category_id = %s", arg(*q.CategoryID)))
	}
	if len(q.SkillSlugs) > 0 {
		slugs := arg(q.SkillSlugs)
		count := arg(len(q.SkillSlugs))
		where = append(where, fmt.Sprintf(`j.id IN (
			SELECT js.job_id FROM job_skills js
			JOIN skills s ON s.id = js.skill_id
			WHERE s.slug = ANY(%s)
			GROUP BY js.job_id
			HAVING COUNT(DISTINCT s.id) = %s)`, slugs, count))
	}
	if q.BudgetMin != nil {
		p := arg(*q.BudgetMin)
		where = append(where, fmt.Sprintf("(j.budget_min >= %s OR j.fixed_budget >= %s)", p, p))
	}
	if q.BudgetMax != nil {
		p := arg(*q.BudgetMax)
		where = append(where, fmt.Sprintf("(j.budget_max <= %s OR j.fixed_budget <= %s)", p, p))
	}
	if q.RemoteOnly {
		where = append(where, "j.is_remote = TRUE")
	}
	if q.ExperienceLevel != "" {
		where = append(where, fmt.Sprintf("j.experience_level = %s", arg(q.ExperienceLevel)))
	}

	return where, args
}

func (r *jobRepo) Search(ctx context.Context, q domain.JobSearchQuery, limit, offset int) ([]domain.Job, int64, error) {
	where, args := searchWhere(q)
	whereClause := strings.Join(where, " AND ")

	countQuery := `SELECT COUNT(*) FROM jobs j WHERE ` + whereClause
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// The skills filter is a subquery rather than a join, so rows never
	// multiply and no DISTINCT is needed.
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM jobs j WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		prefixColumns("j"), whereClause, orderBy(q.Sort), len(args)-1, len(args))

	jobs, err := r.fetchJobs(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// orderBy maps a sort key to its ORDER BY clause. Creation time descending is
// always the secondary key.
func orderBy(sort string) string {
	switch sort {
	case domain.SortOldest:
		return "j.created_at ASC"
	case domain.SortBudgetHigh:
		return "COALESCE(j.budget_max, j.fixed_budget) DESC NULLS LAST, j.created_at DESC"
	case domain.SortBudgetLow:
		return "COALESCE(j.budget_min, j.fixed_budget) ASC NULLS LAST, j.created_at DESC"
	case domain.SortDeadline:
		return "j.deadline ASC NULLS LAST, j.created_at DESC"
	default:
		return "j.created_at DESC"
	}
}

func (r *jobRepo) FetchByHirerID(ctx context.Context, hirerID string, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT ` + prefixColumns("j") + ` FROM jobs j WHERE j.hirer_id = $1 ORDER BY j.created_at DESC LIMIT $2 OFFSET $3`
	jobs, err := r.fetchJobs(ctx, query, hirerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE hirer_id = $1`, hirerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) FetchByCategoryID(ctx context.Context, categoryID int64, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT ` + prefixColumns("j") + ` FROM jobs j
              WHERE j.category_id = $1 AND j.status = 'PUBLISHED' AND j.is_public = TRUE
              ORDER BY j.created_at DESC LIMIT $2 OFFSET $3`
	jobs, err := r.fetchJobs(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM jobs WHERE category_id = $1 AND status = 'PUBLISHED' AND is_public = TRUE`
	if err := r.db.QueryRow(ctx, countQuery, categoryID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// Update persists the job fields and replaces its skill set in one
// transaction. The owner reference is never written.
func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE jobs SET
		title = $2,
		description = $3,
		status = $4,
		category_id = $5,
		budget_min = $6,
		budget_max = $7,
		fixed_budget = $8,
		duration = $9,
		deadline = $10,
		is_remote = $11,
		location = $12,
		experience_level = $13,
		is_public = $14,
		updated_at = $15
	WHERE id = $1`
	result, err := tx.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Status, job.CategoryID,
		job.BudgetMin, job.BudgetMax, job.FixedBudget, job.Duration, job.Deadline,
		job.IsRemote, job.Location, job.ExperienceLevel, job.IsPublic, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := replaceSkills(ctx, tx, job.ID, job.Skills); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.Exec(ctx, `UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) fetchJobs(ctx context.Context, query string, args ...interface{}) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Job, len(jobs))
	for i := range jobs {
		refs[i] = &jobs[i]
	}
	if err := r.attachSkills(ctx, refs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// attachSkills loads the skill sets for the given jobs with one query.
func (r *jobRepo) attachSkills(ctx context.Context, jobs []*domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]int64, len(jobs))
	byID := make(map[int64]*domain.Job, len(jobs))
	for i, job := range jobs {
		ids[i] = job.ID
		byID[job.ID] = job
	}

	query := `SELECT js.job_id, s.id, s.name, s.slug FROM job_skills js
              JOIN skills s ON s.id = js.skill_id
              WHERE js.job_id = ANY($1) ORDER BY s.name`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var jobID int64
		var skill domain.Skill
		if err := rows.Scan(&jobID, &skill.ID, &skill.Name, &skill.Slug); err != nil {
			return err
		}
		if job := byID[jobID]; job != nil {
			job.Skills = append(job.Skills, skill)
		}
	}
	return rows.Err()
}

func replaceSkills(ctx context.Context, tx pgx.Tx, jobID int64, skills []domain.Skill) error {
	if _, err := tx.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1`, jobID); err != nil {
		return err
	}
	for _, skill := range skills {
		if _, err := tx.Exec(ctx, `INSERT INTO job_skills (job_id, skill_id) VALUES ($1, $2)`, jobID, skill.ID); err != nil {
			return err
		}
	}
	return nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.HirerID, &job.Title, &job.Description, &job.Status, &job.CategoryID,
		&job.BudgetMin, &job.BudgetMax, &job.FixedBudget, &job.Duration, &job.Deadline,
		&job.IsRemote, &job.Location, &job.ExperienceLevel, &job.IsPublic,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func prefixColumns(alias string) string {
	cols := strings.Split(jobColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}
