package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Public routes run behind optional auth, so owners see their own
	// unpublished jobs at the same URLs everyone else gets 404s from.
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
	}
	public.GET("/categories/:slug/jobs", handler.ListByCategory)

	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
	}

	hirers := protected.Group("/hirers")
	{
		hirers.GET("/jobs", handler.ListMine)
	}
}

type JobRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	CategoryID      *int64   `json:"category_id"`
	Skills          []string `json:"skills"`
	BudgetMin       *float64 `json:"budget_min"`
	BudgetMax       *float64 `json:"budget_max"`
	FixedBudget     *float64 `json:"fixed_budget"`
	Duration        string   `json:"duration"`
	Deadline        *string  `json:"deadline"` // RFC 3339
	IsRemote        bool     `json:"is_remote"`
	Location        string   `json:"location"`
	ExperienceLevel string   `json:"experience_level"`
	IsPublic        *bool    `json:"is_public"`
}

func (r *JobRequest) toFields() (domain.JobFields, error) {
	fields := domain.JobFields{
		Title:           r.Title,
		Description:     r.Description,
		CategoryID:      r.CategoryID,
		SkillNames:      r.Skills,
		BudgetMin:       r.BudgetMin,
		BudgetMax:       r.BudgetMax,
		FixedBudget:     r.FixedBudget,
		Duration:        r.Duration,
		IsRemote:        r.IsRemote,
		Location:        r.Location,
		ExperienceLevel: r.ExperienceLevel,
		IsPublic:        true,
	}
	if r.IsPublic != nil {
		fields.IsPublic = *r.IsPublic
	}
	if r.Deadline != nil && *r.Deadline != "" {
		t, err := time.Parse(time.RFC3339, *r.Deadline)
		if err != nil {
			return fields, apperror.BadRequest("Invalid deadline format, expected RFC 3339")
		}
		fields.Deadline = &t
	}
	return fields, nil
}

// Create godoc
// @Summary      Create a job
// @Description  Create a new job posting in DRAFT status (Hirer only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	fields, err := req.toFields()
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), viewerFrom(c), fields)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// Update godoc
// @Summary      Update a job
// @Description  Update a job's fields and optionally move it through its lifecycle via the action query parameter (save, publish, close, reopen)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id      path      int         true   "Job ID"
// @Param        action  query     string      false  "Lifecycle action"  Enums(save, publish, close, reopen)
// @Param        job     body      JobRequest  true   "Job JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, err := jobID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	fields, err := req.toFields()
	if err != nil {
		c.Error(err)
		return
	}

	action := domain.JobAction(c.DefaultQuery("action", string(domain.JobActionSave)))
	switch action {
	case domain.JobActionSave, domain.JobActionPublish, domain.JobActionClose, domain.JobActionReopen:
	default:
		c.Error(apperror.BadRequest("Invalid action"))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), viewerFrom(c), id, fields, action)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// Delete godoc
// @Summary      Delete a job
// @Description  Delete a draft job posting
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := jobID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), viewerFrom(c), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}

// GetDetails godoc
// @Summary      Get job details
// @Description  Get a single job. Owners see their jobs in any status, everyone else only public published ones.
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := jobID(c)
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), viewerFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// List godoc
// @Summary      Search jobs
// @Description  List public published jobs with optional filters and sorting
// @Tags         jobs
// @Produce      json
// @Param        q           query     string  false  "Keyword over title and description"
// @Param        category_id query     int     false  "Category ID"
// @Param        skills      query     string  false  "Comma-separated skill slugs, all required"
// @Param        budget_min  query     number  false  "Minimum budget"
// @Param        budget_max  query     number  false  "Maximum budget"
// @Param        remote      query     bool    false  "Remote jobs only"
// @Param        experience  query     string  false  "Experience level"  Enums(ENTRY, INTERMEDIATE, EXPERT)
// @Param        sort        query     string  false  "Sort key"  Enums(newest, oldest, budget_high, budget_low, deadline)
// @Param        page        query     int     false  "Page number"
// @Param        page_size   query     int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	q := domain.JobSearchQuery{
		Keyword:         c.Query("q"),
		ExperienceLevel: c.Query("experience"),
		Sort:            c.Query("sort"),
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid category_id"))
			return
		}
		q.CategoryID = &id
	}
	if raw := c.Query("skills"); raw != "" {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				q.SkillSlugs = append(q.SkillSlugs, slug)
			}
		}
	}
	if raw := c.Query("budget_min"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid budget_min"))
			return
		}
		q.BudgetMin = &f
	}
	if raw := c.Query("budget_max"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid budget_max"))
			return
		}
		q.BudgetMax = &f
	}
	q.RemoteOnly = c.Query("remote") == "true"

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), viewerFrom(c), q, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", gin.H{
		"jobs":      jobs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ListMine godoc
// @Summary      List own jobs
// @Description  List the authenticated hirer's jobs in any status
// @Tags         hirers
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /hirers/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	jobs, total, err := h.jobUC.ListMyJobs(c.Request.Context(), viewerFrom(c), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Hirer job list", gin.H{
		"jobs":      jobs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ListByCategory godoc
// @Summary      List jobs in a category
// @Description  List public published jobs belonging to the category identified by slug
// @Tags         categories
// @Produce      json
// @Param        slug       path      string  true   "Category slug"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /categories/{slug}/jobs [get]
func (h *JobHandler) ListByCategory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	jobs, total, err := h.jobUC.ListJobsByCategory(c.Request.Context(), c.Param("slug"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Category job list", gin.H{
		"jobs":      jobs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func jobID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("Invalid ID format")
	}
	return id, nil
}
