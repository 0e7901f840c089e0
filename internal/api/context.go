// internal/api/context.go
// Typed helpers for reading the authenticated principal and numeric path
// parameters out of a gin.Context.

package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tournament-planner/internal/models"
)

// AuthUserID returns the caller's user ID as set by middleware.RequireAuth.
func AuthUserID(c *gin.Context) (models.ID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := raw.(models.ID)
	return id, ok
}

// ParamID parses a gin path parameter as a models.ID, writing a failure
// envelope and returning ok=false if it isn't a valid non-zero integer.
func ParamID(c *gin.Context, name string) (models.ID, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		FailWith(c, 400, "ERR_INVALID_INPUT", "invalid "+name+" parameter")
		return 0, false
	}
	return models.ID(id), true
}
