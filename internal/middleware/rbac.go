package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
	"github.com/noah-isme/classroom-gateway/pkg/response"
)

// RequireUserTypes lets through callers whose role is one of allowed.
func RequireUserTypes(allowed ...models.UserType) gin.HandlerFunc {
	set := make(map[models.UserType]struct{}, len(allowed))
	for _, t := range allowed {
		set[t] = struct{}{}
	}
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := set[identity.UserType]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireTeacher is RequireUserTypes for teachers only.
func RequireTeacher() gin.HandlerFunc {
	return RequireUserTypes(models.UserTypeTeacher)
}

// RequireStudent is RequireUserTypes for students only.
func RequireStudent() gin.HandlerFunc {
	return RequireUserTypes(models.UserTypeStudent)
}
