package v1

import (
	"net/http"
	"strconv"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	protected.POST("/jobs/:id/applications", handler.Submit)
	protected.GET("/jobs/:id/applications", handler.ListForJob)

	applications := protected.Group("/applications")
	{
		applications.GET("", handler.ListMine)
		applications.GET("/:id", handler.GetDetails)
		applications.PATCH("/:id/status", handler.UpdateStatus)
		applications.POST("/:id/withdraw", handler.Withdraw)
	}
}

type SubmitApplicationRequest struct {
	CoverLetter    string   `json:"cover_letter" binding:"required"`
	ProposedBudget *float64 `json:"proposed_budget"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Submit godoc
// @Summary      Apply to a job
// @Description  Submit an application to a published job (Freelancer only)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id           path      int                       true  "Job ID"
// @Param        application  body      SubmitApplicationRequest  true  "Application JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Submit(c *gin.Context) {
	jID, err := jobID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.SubmitApplication(c.Request.Context(), viewerFrom(c), jID, domain.ApplicationFields{
		CoverLetter:    req.CoverLetter,
		ProposedBudget: req.ProposedBudget,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListForJob godoc
// @Summary      List applications for a job
// @Description  List all applications submitted to one of the hirer's own jobs
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	jID, err := jobID(c)
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.applicationUC.ListApplicationsForJob(c.Request.Context(), viewerFrom(c), jID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job applications", apps)
}

// ListMine godoc
// @Summary      List own applications
// @Description  List the authenticated freelancer's applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.applicationUC.ListMyApplications(c.Request.Context(), viewerFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "My applications", apps)
}

// GetDetails godoc
// @Summary      Get application details
// @Description  Get one application. Visible only to the submitting freelancer and the job's owner.
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetDetails(c *gin.Context) {
	id, err := applicationID(c)
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.GetApplication(c.Request.Context(), viewerFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application details", app)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Move an application through its lifecycle (job owner only). Accepting fills the job and rejects pending siblings.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path      int                             true  "Application ID"
// @Param        status  body      UpdateApplicationStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := applicationID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.UpdateApplicationStatus(c.Request.Context(), viewerFrom(c), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", app)
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Description  Withdraw a pending or shortlisted application (submitting freelancer only)
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/withdraw [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, err := applicationID(c)
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.WithdrawApplication(c.Request.Context(), viewerFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application withdrawn", app)
}

func applicationID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("Invalid ID format")
	}
	return id, nil
}
