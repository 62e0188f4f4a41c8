package v1

import (
	"net/http"

	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type TaxonomyHandler struct {
	taxonomyUC domain.TaxonomyUsecase
}

func NewTaxonomyHandler(public *gin.RouterGroup, taxonomyUC domain.TaxonomyUsecase) {
	handler := &TaxonomyHandler{taxonomyUC: taxonomyUC}

	public.GET("/categories", handler.ListCategories)
	public.GET("/categories/:slug", handler.GetCategory)
	public.GET("/skills", handler.ListSkills)
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /categories [get]
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.taxonomyUC.ListCategories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Category list", categories)
}

// GetCategory godoc
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        slug  path      string  true  "Category slug"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /categories/{slug} [get]
func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	category, err := h.taxonomyUC.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Category details", category)
}

// ListSkills godoc
// @Summary      List skills
// @Tags         skills
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /skills [get]
func (h *TaxonomyHandler) ListSkills(c *gin.Context) {
	skills, err := h.taxonomyUC.ListSkills(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill list", skills)
}
