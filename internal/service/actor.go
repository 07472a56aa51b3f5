package service

import (
	"time"

	"approvals/internal/model"

	"github.com/google/uuid"
)

// Actor is the identity and clock every core operation runs under.
type Actor struct {
	UserID    uuid.UUID
	CompanyID *uuid.UUID
	Portal    bool
	Now       time.Time
}

func (a Actor) now() time.Time {
	if a.Now.IsZero() {
		return time.Now()
	}
	return a.Now
}

// userRef is nil for system actors.
func (a Actor) userRef() *uuid.UUID {
	if a.UserID == uuid.Nil {
		return nil
	}
	id := a.UserID
	return &id
}

// canAccess reports whether the actor may see req. Portal users only reach the
// requests they own.
func (a Actor) canAccess(req *model.ApprovalRequest) bool {
	return !a.Portal || req.OwnerID == a.UserID
}
