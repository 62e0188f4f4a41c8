package usecase

import (
	"context"
	"errors"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo      domain.JobRepository
	categoryRepo domain.CategoryRepository
	skillRepo    domain.SkillRepository
}

func NewJobUsecase(jobRepo domain.JobRepository, categoryRepo domain.CategoryRepository, skillRepo domain.SkillRepository) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:      jobRepo,
		categoryRepo: categoryRepo,
		skillRepo:    skillRepo,
	}
}

// CreateJob creates a job for the viewer. The initial status is always DRAFT
// regardless of caller input.
func (u *jobUsecase) CreateJob(ctx context.Context, viewer *domain.Viewer, fields domain.JobFields) (*domain.Job, error) {
	if !viewer.IsHirer() {
		return nil, apperror.Forbidden("Only hirers can create jobs")
	}

	now := time.Now()
	job := &domain.Job{
		HirerID:   viewer.ID,
		Status:    domain.JobStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.applyFields(ctx, job, fields); err != nil {
		return nil, err
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// UpdateJob saves the given fields and optionally moves the job along its
// lifecycle: publish (DRAFT or CLOSED -> PUBLISHED), close (PUBLISHED ->
// CLOSED), reopen (CLOSED -> PUBLISHED).
func (u *jobUsecase) UpdateJob(ctx context.Context, viewer *domain.Viewer, jobID int64, fields domain.JobFields, action domain.JobAction) (*domain.Job, error) {
	job, err := u.visibleJob(ctx, viewer, jobID)
	if err != nil {
		return nil, err
	}
	if !viewer.IsHirer() || job.HirerID != viewer.ID {
		return nil, apperror.Forbidden("Only the owning hirer can edit this job")
	}

	if err := u.applyFields(ctx, job, fields); err != nil {
		return nil, err
	}

	switch action {
	case domain.JobActionSave, "":
		// field save only
	case domain.JobActionPublish:
		if !job.CanTransition(domain.JobStatusPublished) {
			return nil, apperror.BadRequest("Only draft or closed jobs can be published")
		}
		job.Status = domain.JobStatusPublished
	case domain.JobActionClose:
		if job.Status != domain.JobStatusPublished {
			return nil, apperror.BadRequest("Only published jobs can be closed")
		}
		job.Status = domain.JobStatusClosed
	case domain.JobActionReopen:
		if job.Status != domain.JobStatusClosed {
			return nil, apperror.BadRequest("Only closed jobs can be reopened")
		}
		job.Status = domain.JobStatusPublished
	default:
		return nil, apperror.BadRequest("Unknown action")
	}

	job.UpdatedAt = time.Now()
	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// DeleteJob removes a job. Permitted only while the job is still a draft and
// only for its owner.
func (u *jobUsecase) DeleteJob(ctx context.Context, viewer *domain.Viewer, jobID int64) error {
	job, err := u.visibleJob(ctx, viewer, jobID)
	if err != nil {
		return err
	}
	if !viewer.IsHirer() || job.HirerID != viewer.ID {
		return apperror.Forbidden("Only the owning hirer can delete this job")
	}
	if job.Status != domain.JobStatusDraft {
		return apperror.Forbidden("Only draft jobs can be deleted")
	}
	if err := u.jobRepo.Delete(ctx, jobID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) GetJob(ctx context.Context, viewer *domain.Viewer, jobID int64) (*domain.Job, error) {
	return u.visibleJob(ctx, viewer, jobID)
}

func (u *jobUsecase) ListJobs(ctx context.Context, viewer *domain.Viewer, q domain.JobSearchQuery, page, pageSize int) ([]domain.Job, int64, error) {
	if q.Sort == "" {
		q.Sort = domain.SortNewest
	}
	if !domain.IsValidSortKey(q.Sort) {
		return nil, 0, apperror.BadRequest("Invalid sort key")
	}
	if q.ExperienceLevel != "" && !domain.IsValidExperienceLevel(q.ExperienceLevel) {
		return nil, 0, apperror.BadRequest("Invalid experience level")
	}

	limit, offset := paginate(page, pageSize)
	return u.jobRepo.Search(ctx, q, limit, offset)
}

func (u *jobUsecase) ListMyJobs(ctx context.Context, viewer *domain.Viewer, page, pageSize int) ([]domain.Job, int64, error) {
	if !viewer.IsHirer() {
		return nil, 0, apperror.Forbidden("Only hirers have job listings")
	}
	limit, offset := paginate(page, pageSize)
	return u.jobRepo.FetchByHirerID(ctx, viewer.ID, limit, offset)
}

func (u *jobUsecase) ListJobsByCategory(ctx context.Context, categorySlug string, page, pageSize int) ([]domain.Job, int64, error) {
	category, err := u.categoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, apperror.NotFound("Category not found")
		}
		return nil, 0, apperror.Internal(err)
	}
	limit, offset := paginate(page, pageSize)
	return u.jobRepo.FetchByCategoryID(ctx, category.ID, limit, offset)
}

// visibleJob loads a job, applies deadline expiry, and enforces the read
// rule. A job the viewer may not see is reported as absent.
func (u *jobUsecase) visibleJob(ctx context.Context, viewer *domain.Viewer, jobID int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	if job.ApplyExpiry(time.Now()) {
		if err := u.jobRepo.UpdateStatus(ctx, job.ID, job.Status); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	if !job.VisibleTo(viewer) {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

// applyFields copies the mutable fields onto the job, resolves skills and
// category, and enforces the budget/location invariant.
func (u *jobUsecase) applyFields(ctx context.Context, job *domain.Job, fields domain.JobFields) error {
	if fields.Title == "" {
		return apperror.BadRequest("Title is required")
	}
	if fields.Description == "" {
		return apperror.BadRequest("Description is required")
	}
	if fields.ExperienceLevel == "" {
		fields.ExperienceLevel = domain.ExperienceIntermediate
	}
	if !domain.IsValidExperienceLevel(fields.ExperienceLevel) {
		return apperror.BadRequest("Invalid experience level")
	}

	if fields.CategoryID != nil {
		if _, err := u.categoryRepo.GetByID(ctx, *fields.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.BadRequest("Category does not exist")
			}
			return apperror.Internal(err)
		}
	}

	skills, err := u.skillRepo.GetOrCreate(ctx, fields.SkillNames)
	if err != nil {
		return apperror.Internal(err)
	}

	job.Title = fields.Title
	job.Description = fields.Description
	job.CategoryID = fields.CategoryID
	job.Skills = skills
	job.BudgetMin = fields.BudgetMin
	job.BudgetMax = fields.BudgetMax
	job.FixedBudget = fields.FixedBudget
	job.Duration = fields.Duration
	job.Deadline = fields.Deadline
	job.IsRemote = fields.IsRemote
	job.Location = fields.Location
	job.ExperienceLevel = fields.ExperienceLevel
	job.IsPublic = fields.IsPublic

	if err := job.ValidateBudget(); err != nil {
		return apperror.BadRequest(err.Error())
	}
	return nil
}

func paginate(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize, (page - 1) * pageSize
}
