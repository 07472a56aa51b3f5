package service

import (
	"context"
	"errors"
	"fmt"

	"approvals/internal/model"
	"approvals/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type LinkPortalUsersResult struct {
	Linked  int      `json:"linked"`
	Skipped int      `json:"skipped"`
	Names   []string `json:"linked_employees"`
}

type EmployeeService interface {
	ResolveEmployee(ctx context.Context, ownerID uuid.UUID) (*model.Employee, error)
	LinkPortalUsers(ctx context.Context, actor Actor) (LinkPortalUsersResult, error)
	CountRequests(ctx context.Context, employeeID string) (int64, error)
}

type employeeService struct {
	employees repository.EmployeeRepository
	users     repository.UserRepository
	requests  repository.ApprovalRepository
	txManager repository.TransactionManager
	audit     AuditService
	log       zerolog.Logger
}

func NewEmployeeService(
	employees repository.EmployeeRepository,
	users repository.UserRepository,
	requests repository.ApprovalRepository,
	txManager repository.TransactionManager,
	audit AuditService,
	log zerolog.Logger,
) EmployeeService {
	return &employeeService{
		employees: employees,
		users:     users,
		requests:  requests,
		txManager: txManager,
		audit:     audit,
		log:       log,
	}
}

// ResolveEmployee returns the employee behind an account: a direct account link
// wins over a work email match. It returns nil when neither exists.
func (s *employeeService) ResolveEmployee(ctx context.Context, ownerID uuid.UUID) (*model.Employee, error) {
	employee, err := s.employees.FindByUserID(ctx, ownerID)
	if err == nil {
		return employee, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}

	user, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Email == "" {
		return nil, nil
	}

	employee, err = s.employees.FindByWorkEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up employee by email: %w", err)
	}
	return employee, nil
}

// LinkPortalUsers attaches unlinked employees to the portal account sharing their work email.
func (s *employeeService) LinkPortalUsers(ctx context.Context, actor Actor) (LinkPortalUsersResult, error) {
	result := LinkPortalUsersResult{Names: []string{}}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		employees, err := s.employees.ListUnlinkedWithEmail(txCtx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}

		for _, e := range employees {
			user, err := s.users.FindPortalUserByEmail(txCtx, e.WorkEmail)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					result.Skipped++
					continue
				}
				return fmt.Errorf("failed to look up portal user: %w", err)
			}
			if err := s.employees.LinkUser(txCtx, e.ID, user.ID); err != nil {
				return fmt.Errorf("failed to link employee %s: %w", e.Name, err)
			}
			result.Linked++
			result.Names = append(result.Names, e.Name)
		}

		if result.Linked == 0 {
			return nil
		}
		return s.audit.Record(txCtx, actor, AuditEntry{
			Action:  model.ActionLinkPortalEmployees,
			Message: fmt.Sprintf("Linked %d employees to portal users", result.Linked),
			Details: map[string]interface{}{"employees": result.Names},
		})
	})
	if err != nil {
		return LinkPortalUsersResult{}, err
	}

	s.log.Info().Int("linked", result.Linked).Int("skipped", result.Skipped).Msg("portal users linked")
	return result, nil
}

func (s *employeeService) CountRequests(ctx context.Context, employeeID string) (int64, error) {
	id, err := parseID(employeeID, "employee id")
	if err != nil {
		return 0, err
	}
	if _, err := s.employees.FindByID(ctx, id); err != nil {
		return 0, notFound(err, "employee")
	}
	return s.requests.CountByEmployee(ctx, id)
}
