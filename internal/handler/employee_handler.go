package handler

import (
	"net/http"

	"approvals/internal/middleware"
	"approvals/internal/service"
	"approvals/pkg/response"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	employeeService service.EmployeeService
}

func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func (h *EmployeeHandler) RegisterRoutes(router *gin.RouterGroup) {
	employees := router.Group("/api/employees")
	{
		employees.POST("/link-portal-users", middleware.RequirePermission(service.PermEmployeesManage), h.LinkPortalUsers)
		employees.GET("/:id/approvals/count", middleware.RequirePermission(service.PermApprovalsRead), h.CountApprovals)
	}
}

// LinkPortalUsers links unlinked employees to portal users sharing their work email
// @Summary      Link portal users
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.LinkPortalUsersResult}
// @Router       /api/employees/link-portal-users [post]
func (h *EmployeeHandler) LinkPortalUsers(c *gin.Context) {
	result, err := h.employeeService.LinkPortalUsers(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// CountApprovals returns how many approval requests belong to an employee
// @Summary      Count employee approvals
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Employee ID"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/employees/{id}/approvals/count [get]
func (h *EmployeeHandler) CountApprovals(c *gin.Context) {
	count, err := h.employeeService.CountRequests(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"count": count}))
}
