package handler

import (
	"time"

	"approvals/internal/middleware"
	"approvals/internal/model"
	"approvals/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actorFrom builds the service actor from the claims RequirePermission stored.
func actorFrom(c *gin.Context) service.Actor {
	actor := service.Actor{Now: time.Now()}
	if id, err := uuid.Parse(c.GetString(middleware.CtxUserID)); err == nil {
		actor.UserID = id
	}
	if company, err := uuid.Parse(c.GetString(middleware.CtxCompanyID)); err == nil {
		actor.CompanyID = &company
	}
	actor.Portal = c.GetString(middleware.CtxUserRole) == model.RolePortal
	return actor
}
