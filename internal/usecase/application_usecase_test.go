package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/internal/usecase"
	"go-marketplace-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func publishedJob() *domain.Job {
	return &domain.Job{
		ID:        10,
		HirerID:   hirer.ID,
		Status:    domain.JobStatusPublished,
		IsPublic:  true,
		BudgetMin: f64(100),
		BudgetMax: f64(500),
	}
}

func newApplicationUC(appRepo *MockApplicationRepo, jobRepo *MockJobRepo) domain.ApplicationUsecase {
	return usecase.NewApplicationUsecase(appRepo, jobRepo)
}

func TestSubmitApplication(t *testing.T) {
	t.Run("freelancer applies to a published job", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)
		appRepo.On("Exists", mock.Anything, int64(10), freelancer.ID).Return(false, nil)
		appRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		app, err := uc.SubmitApplication(context.Background(), freelancer, 10, domain.ApplicationFields{
			CoverLetter:    "I can build this",
			ProposedBudget: f64(300),
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, freelancer.ID, app.FreelancerID)
	})

	t.Run("hirer cannot apply", func(t *testing.T) {
		uc := newApplicationUC(new(MockApplicationRepo), new(MockJobRepo))

		_, err := uc.SubmitApplication(context.Background(), hirer, 10, domain.ApplicationFields{CoverLetter: "x"})
		assertCode(t, err, http.StatusForbidden)
	})

	t.Run("cover letter required", func(t *testing.T) {
		uc := newApplicationUC(new(MockApplicationRepo), new(MockJobRepo))

		_, err := uc.SubmitApplication(context.Background(), freelancer, 10, domain.ApplicationFields{})
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("draft job looks absent", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		job := publishedJob()
		job.Status = domain.JobStatusDraft
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(job, nil)

		_, err := uc.SubmitApplication(context.Background(), freelancer, 10, domain.ApplicationFields{CoverLetter: "x"})
		assertCode(t, err, http.StatusNotFound)
	})

	t.Run("closed job rejects applications", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		job := publishedJob()
		job.Status = domain.JobStatusClosed
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(job, nil)

		_, err := uc.SubmitApplication(context.Background(), freelancer, 10, domain.ApplicationFields{CoverLetter: "x"})
		assertCode(t, err, http.StatusNotFound)
	})

	t.Run("expired deadline closes the door", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		past := time.Now().Add(-time.Minute)
		job := publishedJob()
		job.Deadline = &past
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(job, nil)
		jobRepo.On("UpdateStatus", mock.Anything, int64(10), domain.JobStatusExpired).Return(nil)

		_, err := uc.SubmitApplication(context.Background(), freelancer, 10, domain.ApplicationFields{CoverLetter: "x"})
		assertCode(t, err, http.StatusBadRequest)
		jobRepo.AssertCalled(t, "UpdateStatus", mock.Anything, int64(10), domain.JobStatusExpired)
	})

	t.Run("duplicate application rejected", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)
		appRepo.On("Exists", mock.Anything, int64(10), freelancer.ID).Return(true, nil)

		_, err := uc.SubmitApplication(context.Background(), freelancer, 10, domain.ApplicationFields{CoverLetter: "x"})
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("racing duplicate surfaces the conflict from the unique pair", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)
		appRepo.On("Exists", mock.Anything, int64(10), freelancer.ID).Return(false, nil)
		appRepo.On("Create", mock.Anything, mock.Anything).Return(apperror.Conflict("You have already applied to this job"))

		_, err := uc.SubmitApplication(context.Background(), freelancer, 10, domain.ApplicationFields{CoverLetter: "x"})
		assertCode(t, err, http.StatusConflict)
	})

	t.Run("unexpected create failure reads as internal", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)
		appRepo.On("Exists", mock.Anything, int64(10), freelancer.ID).Return(false, nil)
		appRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		_, err := uc.SubmitApplication(context.Background(), freelancer, 10, domain.ApplicationFields{CoverLetter: "x"})
		assertCode(t, err, http.StatusInternalServerError)
	})

	t.Run("proposed budget outside range rejected", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)
		appRepo.On("Exists", mock.Anything, int64(10), freelancer.ID).Return(false, nil)

		_, err := uc.SubmitApplication(context.Background(), freelancer, 10, domain.ApplicationFields{
			CoverLetter:    "x",
			ProposedBudget: f64(50),
		})
		assertCode(t, err, http.StatusBadRequest)

		_, err = uc.SubmitApplication(context.Background(), freelancer, 10, domain.ApplicationFields{
			CoverLetter:    "x",
			ProposedBudget: f64(9000),
		})
		assertCode(t, err, http.StatusBadRequest)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	pendingApp := func() *domain.JobApplication {
		return &domain.JobApplication{
			ID:           5,
			JobID:        10,
			FreelancerID: freelancer.ID,
			Status:       domain.ApplicationStatusPending,
		}
	}

	t.Run("hirer shortlists a pending application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		appRepo.On("GetByID", mock.Anything, int64(5)).Return(pendingApp(), nil)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)
		appRepo.On("UpdateStatus", mock.Anything, int64(5), domain.ApplicationStatusShortlisted).Return(nil)

		app, err := uc.UpdateApplicationStatus(context.Background(), hirer, 5, domain.ApplicationStatusShortlisted)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusShortlisted, app.Status)
	})

	t.Run("accept goes through the transactional path", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		appRepo.On("GetByID", mock.Anything, int64(5)).Return(pendingApp(), nil)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)
		appRepo.On("Accept", mock.Anything, int64(5)).Return(nil)

		app, err := uc.UpdateApplicationStatus(context.Background(), hirer, 5, domain.ApplicationStatusAccepted)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, app.Status)
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent accept surfaces a conflict", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		appRepo.On("GetByID", mock.Anything, int64(5)).Return(pendingApp(), nil)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)
		appRepo.On("Accept", mock.Anything, int64(5)).Return(domain.ErrNotFound)

		_, err := uc.UpdateApplicationStatus(context.Background(), hirer, 5, domain.ApplicationStatusAccepted)
		assertCode(t, err, http.StatusConflict)
	})

	t.Run("terminal application cannot move", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		app := pendingApp()
		app.Status = domain.ApplicationStatusRejected
		appRepo.On("GetByID", mock.Anything, int64(5)).Return(app, nil)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)

		_, err := uc.UpdateApplicationStatus(context.Background(), hirer, 5, domain.ApplicationStatusAccepted)
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("other hirer cannot see the application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		appRepo.On("GetByID", mock.Anything, int64(5)).Return(pendingApp(), nil)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)

		_, err := uc.UpdateApplicationStatus(context.Background(), otherHirer, 5, domain.ApplicationStatusShortlisted)
		assertCode(t, err, http.StatusNotFound)
	})

	t.Run("submitting freelancer cannot set status", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		appRepo.On("GetByID", mock.Anything, int64(5)).Return(pendingApp(), nil)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)

		_, err := uc.UpdateApplicationStatus(context.Background(), freelancer, 5, domain.ApplicationStatusShortlisted)
		assertCode(t, err, http.StatusForbidden)
	})

	t.Run("invalid status name rejected", func(t *testing.T) {
		uc := newApplicationUC(new(MockApplicationRepo), new(MockJobRepo))

		_, err := uc.UpdateApplicationStatus(context.Background(), hirer, 5, "MAYBE")
		assertCode(t, err, http.StatusBadRequest)
	})
}

func TestWithdrawApplication(t *testing.T) {
	shortlisted := func() *domain.JobApplication {
		return &domain.JobApplication{
			ID:           5,
			JobID:        10,
			FreelancerID: freelancer.ID,
			Status:       domain.ApplicationStatusShortlisted,
		}
	}

	t.Run("freelancer withdraws a shortlisted application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(appRepo, new(MockJobRepo))

		appRepo.On("GetByID", mock.Anything, int64(5)).Return(shortlisted(), nil)
		appRepo.On("UpdateStatus", mock.Anything, int64(5), domain.ApplicationStatusWithdrawn).Return(nil)

		app, err := uc.WithdrawApplication(context.Background(), freelancer, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusWithdrawn, app.Status)
	})

	t.Run("someone else cannot withdraw", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(appRepo, new(MockJobRepo))

		appRepo.On("GetByID", mock.Anything, int64(5)).Return(shortlisted(), nil)

		_, err := uc.WithdrawApplication(context.Background(), hirer, 5)
		assertCode(t, err, http.StatusForbidden)

		other := &domain.Viewer{ID: "free-2", Role: domain.RoleFreelancer}
		_, err = uc.WithdrawApplication(context.Background(), other, 5)
		assertCode(t, err, http.StatusForbidden)
	})

	t.Run("accepted application cannot be withdrawn", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(appRepo, new(MockJobRepo))

		app := shortlisted()
		app.Status = domain.ApplicationStatusAccepted
		appRepo.On("GetByID", mock.Anything, int64(5)).Return(app, nil)

		_, err := uc.WithdrawApplication(context.Background(), freelancer, 5)
		assertCode(t, err, http.StatusForbidden)
	})
}

func TestApplicationListing(t *testing.T) {
	t.Run("only freelancers list own applications", func(t *testing.T) {
		uc := newApplicationUC(new(MockApplicationRepo), new(MockJobRepo))

		_, err := uc.ListMyApplications(context.Background(), hirer)
		assertCode(t, err, http.StatusForbidden)
	})

	t.Run("job owner lists job applications", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)
		appRepo.On("GetByJobID", mock.Anything, int64(10)).Return([]domain.JobApplication{{ID: 1}}, nil)

		apps, err := uc.ListApplicationsForJob(context.Background(), hirer, 10)
		assert.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("non-owner cannot list applications of a visible job", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)

		_, err := uc.ListApplicationsForJob(context.Background(), otherHirer, 10)
		assertCode(t, err, http.StatusForbidden)
	})

	t.Run("applicant sees own application details", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		appRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.JobApplication{
			ID: 5, JobID: 10, FreelancerID: freelancer.ID, Status: domain.ApplicationStatusPending,
		}, nil)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)

		app, err := uc.GetApplication(context.Background(), freelancer, 5)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), app.ID)
	})

	t.Run("unrelated freelancer gets not found", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUC(appRepo, jobRepo)

		appRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.JobApplication{
			ID: 5, JobID: 10, FreelancerID: freelancer.ID, Status: domain.ApplicationStatusPending,
		}, nil)
		jobRepo.On("GetByID", mock.Anything, int64(10)).Return(publishedJob(), nil)

		other := &domain.Viewer{ID: "free-2", Role: domain.RoleFreelancer}
		_, err := uc.GetApplication(context.Background(), other, 5)
		assertCode(t, err, http.StatusNotFound)
	})
}
