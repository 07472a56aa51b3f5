package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"approvals/internal/handler/mocks"
	"approvals/internal/middleware"
	"approvals/internal/model"
	"approvals/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func withClaims(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID.String())
		c.Set(middleware.CtxUserRole, role)
		c.Next()
	}
}

func newApprovalRouter(t *testing.T, role string) (*gin.Engine, *mocks.MockApprovalService, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockApprovalService(ctrl)
	h := NewApprovalHandler(svc)
	userID := uuid.New()

	r := gin.New()
	r.Use(withClaims(userID, role))
	r.GET("/api/approvals", h.ListApprovalRequests)
	r.GET("/api/approvals/:id", h.GetApprovalRequest)
	r.POST("/api/approvals", h.CreateApprovalRequest)
	r.PUT("/api/approvals/:id", h.UpdateApprovalRequest)
	r.POST("/api/approvals/:id/submit", h.SubmitApprovalRequest)
	r.PUT("/api/approvals/:id/approve", h.ApproveRequest)
	r.PUT("/api/approvals/:id/refuse", h.RefuseRequest)
	r.POST("/api/approvals/:id/check-stock", h.CheckStock)
	return r, svc, userID
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApprovalHandler_Create(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _, _ := newApprovalRouter(t, "staff")

		w := doJSON(r, http.MethodPost, "/api/approvals", "{")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing category", func(t *testing.T) {
		r, _, _ := newApprovalRouter(t, "staff")

		w := doJSON(r, http.MethodPost, "/api/approvals", `{"reason":"laptops"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("portal actor is passed through", func(t *testing.T) {
		r, svc, userID := newApprovalRouter(t, "portal")

		svc.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, actor service.Actor, in service.ApprovalRequestInput) (*service.ApprovalRequestResponse, error) {
				assert.Equal(t, userID, actor.UserID)
				assert.True(t, actor.Portal)
				assert.Equal(t, "cat-1", in.CategoryID)
				assert.True(t, in.Amount.Decimal.Equal(decimal.NewFromInt(250)))
				return &service.ApprovalRequestResponse{ID: "req-1", Name: "REQ-20261015-00001", Status: model.RequestStatusPending}, nil
			})

		w := doJSON(r, http.MethodPost, "/api/approvals", `{"category_id":"cat-1","amount":"250"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var body struct {
			Data service.ApprovalRequestResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, model.RequestStatusPending, body.Data.Status)
	})
}

func TestApprovalHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"invalid transition", service.ErrInvalidTransition, http.StatusConflict},
		{"locked", service.ErrRequestLocked, http.StatusConflict},
		{"already fulfilled", service.ErrAlreadyFulfilled, http.StatusConflict},
		{"missing vendor", service.ErrMissingVendor, http.StatusUnprocessableEntity},
		{"missing locations", service.ErrMissingLocations, http.StatusUnprocessableEntity},
		{"budget exceeded", &service.BudgetExceededError{Category: "Office", Spent: decimal.NewFromInt(900), Requested: decimal.NewFromInt(200), Ceiling: decimal.NewFromInt(1000)}, http.StatusUnprocessableEntity},
		{"invalid input", service.ErrInvalidInput, http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, svc, _ := newApprovalRouter(t, "manager")
			svc.EXPECT().
				Decide(gomock.Any(), gomock.Any(), "req-1", model.RequestStatusApproved, service.DecisionInput{}).
				Return(nil, tt.err)

			w := doJSON(r, http.MethodPut, "/api/approvals/req-1/approve", "")
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestApprovalHandler_Refuse(t *testing.T) {
	r, svc, _ := newApprovalRouter(t, "manager")
	svc.EXPECT().
		Decide(gomock.Any(), gomock.Any(), "req-1", model.RequestStatusRefused, service.DecisionInput{Reason: "over budget"}).
		Return(&service.ApprovalRequestResponse{ID: "req-1", Status: model.RequestStatusRefused, RefusalReason: "over budget"}, nil)

	w := doJSON(r, http.MethodPut, "/api/approvals/req-1/refuse", `{"reason":"over budget"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApprovalHandler_RefuseWithoutBody(t *testing.T) {
	r, svc, _ := newApprovalRouter(t, "manager")
	svc.EXPECT().
		Decide(gomock.Any(), gomock.Any(), "req-1", model.RequestStatusRefused, service.DecisionInput{}).
		Return(&service.ApprovalRequestResponse{ID: "req-1", Status: model.RequestStatusRefused}, nil)

	w := doJSON(r, http.MethodPut, "/api/approvals/req-1/refuse", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApprovalHandler_CheckStockShortages(t *testing.T) {
	r, svc, _ := newApprovalRouter(t, "staff")
	productID := uuid.New()
	svc.EXPECT().
		CheckStockAvailability(gomock.Any(), gomock.Any(), "req-1").
		Return(nil, &service.InsufficientStockError{Shortages: []service.Shortage{{
			ProductID:   productID,
			ProductName: "Cable",
			Requested:   decimal.NewFromInt(10),
			Available:   decimal.NewFromInt(4),
		}}})

	w := doJSON(r, http.MethodPost, "/api/approvals/req-1/check-stock", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Data struct {
			Shortages []service.Shortage `json:"shortages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Shortages, 1)
	assert.Equal(t, productID, body.Data.Shortages[0].ProductID)
	assert.True(t, body.Data.Shortages[0].Available.Equal(decimal.NewFromInt(4)))
}

func TestApprovalHandler_List(t *testing.T) {
	r, svc, _ := newApprovalRouter(t, "staff")
	svc.EXPECT().
		List(gomock.Any(), gomock.Any(), service.ListApprovalsQuery{Status: model.RequestStatusPending, Page: 2, Limit: 5}).
		Return([]service.ApprovalRequestResponse{{ID: "req-1"}}, int64(6), nil)

	w := doJSON(r, http.MethodGet, "/api/approvals?status=pending&page=2&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(6), body.Data.Total)
}

func TestApprovalHandler_Submit(t *testing.T) {
	r, svc, _ := newApprovalRouter(t, "staff")
	svc.EXPECT().
		Submit(gomock.Any(), gomock.Any(), "req-1").
		Return(&service.ApprovalRequestResponse{ID: "req-1", Status: model.RequestStatusPending}, nil)

	w := doJSON(r, http.MethodPost, "/api/approvals/req-1/submit", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
