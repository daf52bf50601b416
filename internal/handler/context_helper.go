package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-gateway/internal/middleware"
	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

func identityFromContext(c *gin.Context) (models.Identity, error) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return models.Identity{}, appErrors.ErrUnauthorized
	}
	return *identity, nil
}

// idParam reads a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Validation("invalid "+name, map[string]string{name: "must be a positive integer"})
	}
	return id, nil
}

// idParams reads several path ids, stopping at the first invalid one.
func idParams(c *gin.Context, names ...string) ([]int64, error) {
	ids := make([]int64, len(names))
	for i, name := range names {
		id, err := idParam(c, name)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
