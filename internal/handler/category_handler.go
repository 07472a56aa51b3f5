package handler

import (
	"net/http"
	"time"

	"approvals/internal/middleware"
	"approvals/internal/service"
	"approvals/pkg/response"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/approval-categories", middleware.RequirePermission(service.PermApprovalsRead), h.ListApprovalCategories)
	router.GET("/api/budget-categories", middleware.RequirePermission(service.PermBudgetsRead), h.ListBudgetCategories)
	router.GET("/api/budgets/:id/availability", middleware.RequirePermission(service.PermBudgetsRead), h.BudgetAvailability)
}

// ListApprovalCategories returns the active approval categories
// @Summary      List approval categories
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.ApprovalCategory}
// @Router       /api/approval-categories [get]
func (h *CategoryHandler) ListApprovalCategories(c *gin.Context) {
	categories, err := h.categoryService.ListApprovalCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// ListBudgetCategories returns all budget categories
// @Summary      List budget categories
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.BudgetCategory}
// @Router       /api/budget-categories [get]
func (h *CategoryHandler) ListBudgetCategories(c *gin.Context) {
	budgets, err := h.categoryService.ListBudgetCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, budgets))
}

// BudgetAvailability returns spent and remaining amounts for the current period
// @Summary      Budget availability
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Budget category ID"
// @Success      200  {object}  response.Response{data=service.BudgetAvailabilityResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/budgets/{id}/availability [get]
func (h *CategoryHandler) BudgetAvailability(c *gin.Context) {
	result, err := h.categoryService.BudgetAvailability(c.Request.Context(), c.Param("id"), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
