package v1

import (
	"net/http"

	"go-marketplace-backend/config"
	"go-marketplace-backend/internal/delivery/http/middleware"
	"go-marketplace-backend/internal/delivery/http/response"
	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ProfileUC     domain.ProfileUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	TaxonomyUC    domain.TaxonomyUsecase
	Tokens        *auth.TokenIssuer
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares. CORS must run first.
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(deps.Config.RateLimitRequests, deps.Config.RateLimitWindow)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public reads resolve the caller when a token is present, so owners see
	// their own drafts at the same URLs anonymous visitors get 404s from.
	public := v1.Group("")
	public.Use(middleware.OptionalAuthMiddleware(deps.Tokens, deps.AuthUC))

	// Login and registration carry a stricter rate limit.
	authRoutes := v1.Group("")
	authRoutes.Use(middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig()))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewAuthHandler(authRoutes, protected, deps.AuthUC)
		NewProfileHandler(protected, deps.ProfileUC)
		NewJobHandler(public, protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewTaxonomyHandler(public, deps.TaxonomyUC)
	}

	return r
}
