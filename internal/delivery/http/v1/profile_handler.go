package v1

import (
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profiles := protected.Group("/profile")
	{
		profiles.GET("", handler.Get)
		profiles.PUT("/freelancer", handler.UpdateFreelancer)
		profiles.PUT("/hirer", handler.UpdateHirer)
	}
}

type UpdateFreelancerProfileRequest struct {
	Skills       string   `json:"skills"`
	Experience   string   `json:"experience"`
	PortfolioURL string   `json:"portfolio_url"`
	HourlyRate   *float64 `json:"hourly_rate"`
	Availability string   `json:"availability"`
}

type UpdateHirerProfileRequest struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
	CompanySize string `json:"company_size"`
	Website     string `json:"website"`
}

// Get godoc
// @Summary      Get own profile
// @Description  Get the role-matched profile of the authenticated user
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileUC.GetProfile(c.Request.Context(), viewerFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile details", profile)
}

// UpdateFreelancer godoc
// @Summary      Update freelancer profile
// @Description  Update the freelancer profile of the authenticated user
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateFreelancerProfileRequest  true  "Profile JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /profile/freelancer [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateFreelancer(c *gin.Context) {
	var req UpdateFreelancerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := &domain.FreelancerProfile{
		Skills:       req.Skills,
		Experience:   req.Experience,
		PortfolioURL: req.PortfolioURL,
		HourlyRate:   req.HourlyRate,
		Availability: req.Availability,
	}

	if err := h.profileUC.UpdateFreelancerProfile(c.Request.Context(), viewerFrom(c), profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// UpdateHirer godoc
// @Summary      Update hirer profile
// @Description  Update the hirer profile of the authenticated user
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateHirerProfileRequest  true  "Profile JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /profile/hirer [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateHirer(c *gin.Context) {
	var req UpdateHirerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := &domain.HirerProfile{
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
		Website:     req.Website,
	}

	if err := h.profileUC.UpdateHirerProfile(c.Request.Context(), viewerFrom(c), profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}
