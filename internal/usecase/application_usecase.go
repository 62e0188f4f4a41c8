package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
}

func NewApplicationUsecase(applicationRepo domain.ApplicationRepository, jobRepo domain.JobRepository) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
	}
}

// SubmitApplication lets a freelancer apply to a published job. At most one
// application per (job, freelancer) pair, in any status.
func (u *applicationUsecase) SubmitApplication(ctx context.Context, viewer *domain.Viewer, jobID int64, fields domain.ApplicationFields) (*domain.JobApplication, error) {
	if !viewer.IsFreelancer() {
		return nil, apperror.Forbidden("Only freelancers can apply to jobs")
	}
	if fields.CoverLetter == "" {
		return nil, apperror.BadRequest("Cover letter is required")
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	// Visibility first, against the stored status: an invisible job stays
	// indistinguishable from a missing one. A job that expires on this very
	// request was visible a moment ago, so it reports as closed rather than
	// absent.
	if !job.VisibleTo(viewer) {
		return nil, apperror.NotFound("Job not found")
	}
	if job.ApplyExpiry(time.Now()) {
		if err := u.jobRepo.UpdateStatus(ctx, job.ID, job.Status); err != nil {
			return nil, apperror.Internal(err)
		}
	}
	if job.Status != domain.JobStatusPublished {
		return nil, apperror.BadRequest("This job is not open for applications")
	}

	exists, err := u.applicationRepo.Exists(ctx, jobID, viewer.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("You have already applied to this job")
	}

	// Bound-check each side independently; an absent bound is unchecked.
	if fields.ProposedBudget != nil {
		if job.BudgetMin != nil && *fields.ProposedBudget < *job.BudgetMin {
			return nil, apperror.BadRequest(fmt.Sprintf("Proposed budget is below the minimum budget of %.2f", *job.BudgetMin))
		}
		if job.BudgetMax != nil && *fields.ProposedBudget > *job.BudgetMax {
			return nil, apperror.BadRequest(fmt.Sprintf("Proposed budget is above the maximum budget of %.2f", *job.BudgetMax))
		}
	}

	app := &domain.JobApplication{
		JobID:          jobID,
		FreelancerID:   viewer.ID,
		CoverLetter:    fields.CoverLetter,
		ProposedBudget: fields.ProposedBudget,
		Status:         domain.ApplicationStatusPending,
	}
	if err := u.applicationRepo.Create(ctx, app); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// UpdateApplicationStatus lets the job's owning hirer move an application
// along its lifecycle. Accepting an application atomically fills the job and
// rejects the remaining PENDING applications; SHORTLISTED siblings are left
// as they are.
func (u *applicationUsecase) UpdateApplicationStatus(ctx context.Context, viewer *domain.Viewer, applicationID int64, newStatus string) (*domain.JobApplication, error) {
	if !domain.IsValidApplicationStatus(newStatus) {
		return nil, apperror.BadRequest("Invalid status")
	}

	app, job, err := u.visibleApplication(ctx, viewer, applicationID)
	if err != nil {
		return nil, err
	}
	if !viewer.IsHirer() || job.HirerID != viewer.ID {
		return nil, apperror.Forbidden("Only the job's hirer can update application status")
	}

	if !app.CanTransition(newStatus) {
		return nil, apperror.BadRequest(fmt.Sprintf("Cannot move application from %s to %s", app.Status, newStatus))
	}

	if newStatus == domain.ApplicationStatusAccepted {
		if err := u.applicationRepo.Accept(ctx, app.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.Conflict("Application is no longer acceptable")
			}
			return nil, apperror.Internal(err)
		}
	} else {
		if err := u.applicationRepo.UpdateStatus(ctx, app.ID, newStatus); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	app.Status = newStatus
	return app, nil
}

// WithdrawApplication lets the submitting freelancer pull a pending or
// shortlisted application.
func (u *applicationUsecase) WithdrawApplication(ctx context.Context, viewer *domain.Viewer, applicationID int64) (*domain.JobApplication, error) {
	app, err := u.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	if !viewer.IsFreelancer() || app.FreelancerID != viewer.ID {
		return nil, apperror.Forbidden("Only the submitting freelancer can withdraw an application")
	}
	if !app.CanWithdraw() {
		return nil, apperror.Forbidden("Only pending or shortlisted applications can be withdrawn")
	}

	if err := u.applicationRepo.UpdateStatus(ctx, app.ID, domain.ApplicationStatusWithdrawn); err != nil {
		return nil, apperror.Internal(err)
	}
	app.Status = domain.ApplicationStatusWithdrawn
	return app, nil
}

func (u *applicationUsecase) GetApplication(ctx context.Context, viewer *domain.Viewer, applicationID int64) (*domain.JobApplication, error) {
	app, _, err := u.visibleApplication(ctx, viewer, applicationID)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (u *applicationUsecase) ListMyApplications(ctx context.Context, viewer *domain.Viewer) ([]domain.JobApplication, error) {
	if !viewer.IsFreelancer() {
		return nil, apperror.Forbidden("Only freelancers have application listings")
	}
	return u.applicationRepo.GetByFreelancerID(ctx, viewer.ID)
}

func (u *applicationUsecase) ListApplicationsForJob(ctx context.Context, viewer *domain.Viewer, jobID int64) ([]domain.JobApplication, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if !job.VisibleTo(viewer) {
		return nil, apperror.NotFound("Job not found")
	}
	if !viewer.IsHirer() || job.HirerID != viewer.ID {
		return nil, apperror.Forbidden("Only the job's hirer can view its applications")
	}
	return u.applicationRepo.GetByJobID(ctx, jobID)
}

// visibleApplication loads an application and its parent job and enforces the
// read rule: the submitting freelancer and the job's hirer may see it, nobody
// else. An invisible application is indistinguishable from a missing one.
func (u *applicationUsecase) visibleApplication(ctx context.Context, viewer *domain.Viewer, applicationID int64) (*domain.JobApplication, *domain.Job, error) {
	app, err := u.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, apperror.NotFound("Application not found")
		}
		return nil, nil, apperror.Internal(err)
	}

	job, err := u.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}

	ownedByViewer := viewer.IsFreelancer() && app.FreelancerID == viewer.ID
	jobOwnedByViewer := viewer.IsHirer() && job.HirerID == viewer.ID
	if !ownedByViewer && !jobOwnedByViewer {
		return nil, nil, apperror.NotFound("Application not found")
	}
	return app, job, nil
}
