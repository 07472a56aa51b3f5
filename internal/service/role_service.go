package service

import (
	"context"
	"fmt"

	"approvals/internal/model"
	"approvals/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type UpdateRolePermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids" binding:"required"`
}

type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	IsSystem    bool                 `json:"is_system"`
	Portal      bool                 `json:"portal"`
	Permissions []PermissionResponse `json:"permissions"`
	CreatedAt   string               `json:"created_at"`
}

type PermissionResponse struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

// Permission codes checked by the HTTP layer
const (
	PermApprovalsRead    = "approvals.read"
	PermApprovalsWrite   = "approvals.write"
	PermApprovalsApprove = "approvals.approve"
	PermCatalogRead      = "catalog.read"
	PermCatalogWrite     = "catalog.write"
	PermBudgetsRead      = "budgets.read"
	PermEmployeesManage  = "employees.manage"
	PermAuditRead        = "audit.read"
	PermRolesManage      = "roles.manage"
)

// --- Interface ---

type RoleService interface {
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	ListPermissions(ctx context.Context) ([]PermissionResponse, error)
	UpdateRolePermissions(ctx context.Context, roleID string, req UpdateRolePermissionsRequest) (*RoleResponse, error)
	SeedDefaultRolesAndPermissions(ctx context.Context) error
}

type roleService struct {
	repo      repository.RoleRepository
	txManager repository.TransactionManager
}

func NewRoleService(repo repository.RoleRepository, txManager repository.TransactionManager) RoleService {
	return &roleService{repo: repo, txManager: txManager}
}

// --- Implementation ---

func (s *roleService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		res = append(res, toRoleResponse(r))
	}
	return res, nil
}

func (s *roleService) ListPermissions(ctx context.Context) ([]PermissionResponse, error) {
	perms, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions: %w", err)
	}

	res := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		res = append(res, toPermissionResponse(p))
	}
	return res, nil
}

func (s *roleService) UpdateRolePermissions(ctx context.Context, roleID string, req UpdateRolePermissionsRequest) (*RoleResponse, error) {
	id, err := parseID(roleID, "role id")
	if err != nil {
		return nil, err
	}

	permIDs := make([]uuid.UUID, 0, len(req.PermissionIDs))
	for _, pid := range req.PermissionIDs {
		parsed, err := parseID(pid, "permission id")
		if err != nil {
			return nil, err
		}
		permIDs = append(permIDs, parsed)
	}

	if err := s.repo.ReplacePermissions(ctx, id, permIDs); err != nil {
		return nil, notFound(err, "role")
	}

	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "role")
	}
	resp := toRoleResponse(*role)
	return &resp, nil
}

// SeedDefaultRolesAndPermissions creates the default permissions and roles if not already present
func (s *roleService) SeedDefaultRolesAndPermissions(ctx context.Context) error {
	defaultPermissions := []model.Permission{
		{Code: PermApprovalsRead, Name: "View approval requests", Group: "approvals"},
		{Code: PermApprovalsWrite, Name: "Create and submit approval requests", Group: "approvals"},
		{Code: PermApprovalsApprove, Name: "Approve / refuse requests", Group: "approvals"},
		{Code: PermCatalogRead, Name: "Browse products and vendors", Group: "catalog"},
		{Code: PermCatalogWrite, Name: "Register vendors", Group: "catalog"},
		{Code: PermBudgetsRead, Name: "View budget availability", Group: "budgets"},
		{Code: PermEmployeesManage, Name: "Manage employee directory", Group: "employees"},
		{Code: PermAuditRead, Name: "View activity history", Group: "audit"},
		{Code: PermRolesManage, Name: "Manage roles", Group: "roles"},
	}

	roleDefinitions := []struct {
		Name        string
		Description string
		PermCodes   []string
	}{
		{
			Name:        model.RoleAdmin,
			Description: "Administrator, full access",
			PermCodes: []string{
				PermApprovalsRead, PermApprovalsWrite, PermApprovalsApprove,
				PermCatalogRead, PermCatalogWrite, PermBudgetsRead,
				PermEmployeesManage, PermAuditRead, PermRolesManage,
			},
		},
		{
			Name:        model.RoleManager,
			Description: "Approver of team requests",
			PermCodes: []string{
				PermApprovalsRead, PermApprovalsWrite, PermApprovalsApprove,
				PermCatalogRead, PermCatalogWrite, PermBudgetsRead, PermAuditRead,
			},
		},
		{
			Name:        model.RoleStaff,
			Description: "Employee raising requests",
			PermCodes:   []string{PermApprovalsRead, PermApprovalsWrite, PermCatalogRead, PermCatalogWrite},
		},
		{
			Name:        model.RolePortal,
			Description: "Self-service portal user",
			PermCodes:   []string{PermApprovalsRead, PermApprovalsWrite, PermCatalogRead},
		},
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		permByCode := make(map[string]uuid.UUID, len(defaultPermissions))
		for i := range defaultPermissions {
			p := &defaultPermissions[i]
			if err := s.repo.UpsertPermission(txCtx, p); err != nil {
				return fmt.Errorf("failed to seed permission '%s': %w", p.Code, err)
			}
			permByCode[p.Code] = p.ID
		}

		for _, def := range roleDefinitions {
			role, err := s.repo.FindByName(txCtx, def.Name)
			if err != nil {
				role = &model.Role{Name: def.Name, Description: def.Description, IsSystem: true}
				if err := s.repo.Create(txCtx, role); err != nil {
					return fmt.Errorf("failed to seed role '%s': %w", def.Name, err)
				}
			}

			permIDs := make([]uuid.UUID, 0, len(def.PermCodes))
			for _, code := range def.PermCodes {
				permIDs = append(permIDs, permByCode[code])
			}
			if err := s.repo.ReplacePermissions(txCtx, role.ID, permIDs); err != nil {
				return fmt.Errorf("failed to assign permissions to role '%s': %w", def.Name, err)
			}
		}
		return nil
	})
}

// --- Helpers ---

func toRoleResponse(r model.Role) RoleResponse {
	perms := make([]PermissionResponse, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, toPermissionResponse(p))
	}

	return RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		Portal:      r.IsPortal(),
		Permissions: perms,
		CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toPermissionResponse(p model.Permission) PermissionResponse {
	return PermissionResponse{
		ID:    p.ID.String(),
		Code:  p.Code,
		Name:  p.Name,
		Group: p.Group,
	}
}
