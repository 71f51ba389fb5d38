package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/middleware"
)

// actor pulls the authenticated identity that AuthMiddleware stored.
func actor(c *gin.Context) (uint, domain.Role) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role, _ := c.Get(middleware.ContextUserRole)
	r, _ := role.(string)
	return userID, domain.Role(r)
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
