package service

import (
	"context"

	"approvals/internal/model"
)

// FulfillmentStrategy turns an approved request into a downstream document.
// The approval service runs the first strategy that applies.
type FulfillmentStrategy interface {
	Name() string
	Applies(req *model.ApprovalRequest) bool
	Build(ctx context.Context, actor Actor, req *model.ApprovalRequest) error
}

// SubmitHook runs inside the submit transaction after the budget check.
// Returning an error aborts the submission.
type SubmitHook interface {
	OnSubmit(ctx context.Context, actor Actor, req *model.ApprovalRequest) error
}
