package v1

import (
	"go-marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// viewerFrom builds the acting principal from context values set by the auth
// middleware. Returns nil for anonymous requests.
func viewerFrom(c *gin.Context) *domain.Viewer {
	id := c.GetString(string(domain.KeyUserID))
	if id == "" {
		return nil
	}
	return &domain.Viewer{
		ID:   id,
		Role: c.GetString(string(domain.KeyUserRole)),
	}
}
