package handler

import (
	"net/http"

	"approvals/internal/middleware"
	"approvals/internal/model"
	"approvals/internal/service"
	"approvals/pkg/pagination"
	"approvals/pkg/response"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	approvalService service.ApprovalService
}

func NewApprovalHandler(approvalService service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

func (h *ApprovalHandler) RegisterRoutes(router *gin.RouterGroup) {
	approvals := router.Group("/api/approvals")
	{
		approvals.GET("", middleware.RequirePermission(service.PermApprovalsRead), h.ListApprovalRequests)
		approvals.GET("/:id", middleware.RequirePermission(service.PermApprovalsRead), h.GetApprovalRequest)
		approvals.POST("", middleware.RequirePermission(service.PermApprovalsWrite), h.CreateApprovalRequest)
		approvals.PUT("/:id", middleware.RequirePermission(service.PermApprovalsWrite), h.UpdateApprovalRequest)
		approvals.POST("/:id/submit", middleware.RequirePermission(service.PermApprovalsWrite), h.SubmitApprovalRequest)
		approvals.PUT("/:id/approve", middleware.RequirePermission(service.PermApprovalsApprove), h.ApproveRequest)
		approvals.PUT("/:id/refuse", middleware.RequirePermission(service.PermApprovalsApprove), h.RefuseRequest)
		approvals.POST("/:id/check-stock", middleware.RequirePermission(service.PermApprovalsRead), h.CheckStock)
	}
}

// ListApprovalRequests returns approval requests, optionally filtered by status and employee
// @Summary      List approval requests
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Param        status       query     string  false  "new, pending, approved or refused"
// @Param        employee_id  query     string  false  "Employee ID"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Items per page (default 20)"
// @Success      200          {object}  response.Response{data=pagination.Page[service.ApprovalRequestResponse]}
// @Router       /api/approvals [get]
func (h *ApprovalHandler) ListApprovalRequests(c *gin.Context) {
	p := pagination.Parse(c)

	approvals, total, err := h.approvalService.List(c.Request.Context(), actorFrom(c), service.ListApprovalsQuery{
		Status:     c.Query("status"),
		EmployeeID: c.Query("employee_id"),
		Page:       p.Page,
		Limit:      p.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Wrap(p, approvals, total)))
}

// GetApprovalRequest returns one request with its lines, employee, manager and linked documents
// @Summary      Get approval request
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.ApprovalRequestResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/approvals/{id} [get]
func (h *ApprovalHandler) GetApprovalRequest(c *gin.Context) {
	result, err := h.approvalService.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// CreateApprovalRequest creates a request, submitting it right away when asked to
// @Summary      Create approval request
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.ApprovalRequestInput  true  "Request"
// @Success      201      {object}  response.Response{data=service.ApprovalRequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/approvals [post]
func (h *ApprovalHandler) CreateApprovalRequest(c *gin.Context) {
	var req service.ApprovalRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.approvalService.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// UpdateApprovalRequest replaces fields and lines; a pending request returns to new
// @Summary      Edit approval request
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Request ID"
// @Param        request  body      service.ApprovalRequestInput  true  "Request"
// @Success      200      {object}  response.Response{data=service.ApprovalRequestResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/approvals/{id} [put]
func (h *ApprovalHandler) UpdateApprovalRequest(c *gin.Context) {
	var req service.ApprovalRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.approvalService.Update(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// SubmitApprovalRequest moves a new request to pending after the budget check
// @Summary      Submit approval request
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.ApprovalRequestResponse}
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/approvals/{id}/submit [post]
func (h *ApprovalHandler) SubmitApprovalRequest(c *gin.Context) {
	result, err := h.approvalService.Submit(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ApproveRequest approves a pending request and creates its purchase order or transfer
// @Summary      Approve request
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.ApprovalRequestResponse}
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/approvals/{id}/approve [put]
func (h *ApprovalHandler) ApproveRequest(c *gin.Context) {
	result, err := h.approvalService.Decide(c.Request.Context(), actorFrom(c), c.Param("id"), model.RequestStatusApproved, service.DecisionInput{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// RefuseRequest refuses a pending request
// @Summary      Refuse request
// @Tags         approvals
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true   "Request ID"
// @Param        request  body      service.DecisionInput  false  "Reason"
// @Success      200      {object}  response.Response{data=service.ApprovalRequestResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/approvals/{id}/refuse [put]
func (h *ApprovalHandler) RefuseRequest(c *gin.Context) {
	var req service.DecisionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		// reason is optional
		req.Reason = ""
	}

	result, err := h.approvalService.Decide(c.Request.Context(), actorFrom(c), c.Param("id"), model.RequestStatusRefused, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// CheckStock verifies the source location can serve every line
// @Summary      Check stock availability
// @Tags         approvals
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response{data=service.ApprovalRequestResponse}
// @Failure      422  {object}  response.Response
// @Router       /api/approvals/{id}/check-stock [post]
func (h *ApprovalHandler) CheckStock(c *gin.Context) {
	result, err := h.approvalService.CheckStockAvailability(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
