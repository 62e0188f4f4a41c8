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

var (
	hirer      = &domain.Viewer{ID: "hirer-1", Role: domain.RoleHirer}
	otherHirer = &domain.Viewer{ID: "hirer-2", Role: domain.RoleHirer}
	freelancer = &domain.Viewer{ID: "free-1", Role: domain.RoleFreelancer}
)

func assertCode(t *testing.T, err error, code int) {
	t.Helper()
	assert.Error(t, err)
	var appErr *apperror.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, code, appErr.Code)
	}
}

func validFields() domain.JobFields {
	return domain.JobFields{
		Title:       "Build an API",
		Description: "REST backend for a marketplace",
		FixedBudget: f64(1000),
		IsRemote:    true,
		IsPublic:    true,
	}
}

func newJobUC(jobRepo *MockJobRepo) (domain.JobUsecase, *MockCategoryRepo, *MockSkillRepo) {
	categoryRepo := new(MockCategoryRepo)
	skillRepo := new(MockSkillRepo)
	skillRepo.On("GetOrCreate", mock.Anything, mock.Anything).Return([]domain.Skill{}, nil).Maybe()
	return usecase.NewJobUsecase(jobRepo, categoryRepo, skillRepo), categoryRepo, skillRepo
}

func TestCreateJob(t *testing.T) {
	t.Run("hirer creates a draft", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		job, err := uc.CreateJob(context.Background(), hirer, validFields())
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusDraft, job.Status)
		assert.Equal(t, hirer.ID, job.HirerID)
	})

	t.Run("freelancer cannot create", func(t *testing.T) {
		uc, _, _ := newJobUC(new(MockJobRepo))

		_, err := uc.CreateJob(context.Background(), freelancer, validFields())
		assertCode(t, err, http.StatusForbidden)
	})

	t.Run("anonymous cannot create", func(t *testing.T) {
		uc, _, _ := newJobUC(new(MockJobRepo))

		_, err := uc.CreateJob(context.Background(), nil, validFields())
		assertCode(t, err, http.StatusForbidden)
	})

	t.Run("budget invariant enforced", func(t *testing.T) {
		uc, _, _ := newJobUC(new(MockJobRepo))

		fields := validFields()
		fields.BudgetMin = f64(100) // fixed AND range
		_, err := uc.CreateJob(context.Background(), hirer, fields)
		assertCode(t, err, http.StatusBadRequest)

		fields = validFields()
		fields.FixedBudget = nil // neither
		_, err = uc.CreateJob(context.Background(), hirer, fields)
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("on-site job requires location", func(t *testing.T) {
		uc, _, _ := newJobUC(new(MockJobRepo))

		fields := validFields()
		fields.IsRemote = false
		fields.Location = ""
		_, err := uc.CreateJob(context.Background(), hirer, fields)
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, categoryRepo, _ := newJobUC(jobRepo)

		catID := int64(99)
		categoryRepo.On("GetByID", mock.Anything, catID).Return(nil, domain.ErrNotFound)

		fields := validFields()
		fields.CategoryID = &catID
		_, err := uc.CreateJob(context.Background(), hirer, fields)
		assertCode(t, err, http.StatusBadRequest)
	})
}

func TestUpdateJobLifecycle(t *testing.T) {
	t.Run("owner publishes a draft", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
			ID: 1, HirerID: hirer.ID, Status: domain.JobStatusDraft, IsPublic: true,
		}, nil)
		jobRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		job, err := uc.UpdateJob(context.Background(), hirer, 1, validFields(), domain.JobActionPublish)
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusPublished, job.Status)
	})

	t.Run("filled job cannot be published", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
			ID: 1, HirerID: hirer.ID, Status: domain.JobStatusFilled, IsPublic: true,
		}, nil)

		_, err := uc.UpdateJob(context.Background(), hirer, 1, validFields(), domain.JobActionPublish)
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("closed job reopens", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
			ID: 1, HirerID: hirer.ID, Status: domain.JobStatusClosed, IsPublic: true,
		}, nil)
		jobRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		job, err := uc.UpdateJob(context.Background(), hirer, 1, validFields(), domain.JobActionReopen)
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusPublished, job.Status)
	})

	t.Run("non-owner cannot see a draft", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
			ID: 1, HirerID: hirer.ID, Status: domain.JobStatusDraft, IsPublic: true,
		}, nil)

		_, err := uc.UpdateJob(context.Background(), otherHirer, 1, validFields(), domain.JobActionSave)
		assertCode(t, err, http.StatusNotFound)
	})

	t.Run("non-owner cannot edit a published job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
			ID: 1, HirerID: hirer.ID, Status: domain.JobStatusPublished, IsPublic: true,
		}, nil)

		_, err := uc.UpdateJob(context.Background(), otherHirer, 1, validFields(), domain.JobActionSave)
		assertCode(t, err, http.StatusForbidden)
	})
}

func TestDeleteJob(t *testing.T) {
	t.Run("owner deletes a draft", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
			ID: 1, HirerID: hirer.ID, Status: domain.JobStatusDraft,
		}, nil)
		jobRepo.On("Delete", mock.Anything, int64(1)).Return(nil)

		assert.NoError(t, uc.DeleteJob(context.Background(), hirer, 1))
	})

	t.Run("published job cannot be deleted", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
			ID: 1, HirerID: hirer.ID, Status: domain.JobStatusPublished, IsPublic: true,
		}, nil)

		err := uc.DeleteJob(context.Background(), hirer, 1)
		assertCode(t, err, http.StatusForbidden)
		jobRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("non-owner gets not found for a draft", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
			ID: 1, HirerID: hirer.ID, Status: domain.JobStatusDraft,
		}, nil)

		err := uc.DeleteJob(context.Background(), otherHirer, 1)
		assertCode(t, err, http.StatusNotFound)
	})
}

func TestGetJobVisibility(t *testing.T) {
	t.Run("anonymous cannot see a private published job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
			ID: 1, HirerID: hirer.ID, Status: domain.JobStatusPublished, IsPublic: false,
		}, nil)

		_, err := uc.GetJob(context.Background(), nil, 1)
		assertCode(t, err, http.StatusNotFound)
	})

	t.Run("owner sees the same private job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
			ID: 1, HirerID: hirer.ID, Status: domain.JobStatusPublished, IsPublic: false,
		}, nil)

		job, err := uc.GetJob(context.Background(), hirer, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), job.ID)
	})

	t.Run("published job past deadline expires on read", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		past := time.Now().Add(-time.Hour)
		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
			ID: 1, HirerID: hirer.ID, Status: domain.JobStatusPublished, IsPublic: true, Deadline: &past,
		}, nil)
		jobRepo.On("UpdateStatus", mock.Anything, int64(1), domain.JobStatusExpired).Return(nil)

		job, err := uc.GetJob(context.Background(), hirer, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusExpired, job.Status)
		jobRepo.AssertCalled(t, "UpdateStatus", mock.Anything, int64(1), domain.JobStatusExpired)
	})

	t.Run("missing job is not found", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)

		_, err := uc.GetJob(context.Background(), hirer, 404)
		assertCode(t, err, http.StatusNotFound)
	})
}

func TestListJobs(t *testing.T) {
	t.Run("invalid sort key rejected", func(t *testing.T) {
		uc, _, _ := newJobUC(new(MockJobRepo))

		_, _, err := uc.ListJobs(context.Background(), nil, domain.JobSearchQuery{Sort: "bogus"}, 1, 10)
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("sort defaults to newest", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("Search", mock.Anything, mock.MatchedBy(func(q domain.JobSearchQuery) bool {
			return q.Sort == domain.SortNewest
		}), 10, 0).Return([]domain.Job{}, int64(0), nil)

		_, _, err := uc.ListJobs(context.Background(), nil, domain.JobSearchQuery{}, 1, 10)
		assert.NoError(t, err)
	})

	t.Run("page clamping", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("Search", mock.Anything, mock.Anything, 10, 0).Return([]domain.Job{}, int64(0), nil)

		_, _, err := uc.ListJobs(context.Background(), nil, domain.JobSearchQuery{}, -3, 0)
		assert.NoError(t, err)
	})
}

func TestListMyJobs(t *testing.T) {
	t.Run("freelancer has no job listings", func(t *testing.T) {
		uc, _, _ := newJobUC(new(MockJobRepo))

		_, _, err := uc.ListMyJobs(context.Background(), freelancer, 1, 10)
		assertCode(t, err, http.StatusForbidden)
	})

	t.Run("hirer lists own jobs", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, _, _ := newJobUC(jobRepo)

		jobRepo.On("FetchByHirerID", mock.Anything, hirer.ID, 10, 0).
			Return([]domain.Job{{ID: 1}}, int64(1), nil)

		jobs, total, err := uc.ListMyJobs(context.Background(), hirer, 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, jobs, 1)
	})
}

func TestListJobsByCategory(t *testing.T) {
	t.Run("unknown category is not found", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, categoryRepo, _ := newJobUC(jobRepo)

		categoryRepo.On("GetBySlug", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

		_, _, err := uc.ListJobsByCategory(context.Background(), "nope", 1, 10)
		assertCode(t, err, http.StatusNotFound)
	})

	t.Run("resolves slug then fetches", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc, categoryRepo, _ := newJobUC(jobRepo)

		categoryRepo.On("GetBySlug", mock.Anything, "design").Return(&domain.Category{ID: 3, Slug: "design"}, nil)
		jobRepo.On("FetchByCategoryID", mock.Anything, int64(3), 10, 0).
			Return([]domain.Job{}, int64(0), nil)

		_, _, err := uc.ListJobsByCategory(context.Background(), "design", 1, 10)
		assert.NoError(t, err)
	})
}

func TestJobRepoErrorsWrapped(t *testing.T) {
	jobRepo := new(MockJobRepo)
	uc, _, _ := newJobUC(jobRepo)

	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("connection refused"))

	_, err := uc.GetJob(context.Background(), hirer, 1)
	assertCode(t, err, http.StatusInternalServerError)
}
