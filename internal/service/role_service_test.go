package service

import (
	"context"
	"sort"
	"testing"

	"approvals/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRoles struct {
	roles []model.Role
	perms []model.Permission
}

func (r *fakeRoles) Create(_ context.Context, role *model.Role) error {
	role.ID = uuid.New()
	r.roles = append(r.roles, *role)
	return nil
}

func (r *fakeRoles) FindByID(_ context.Context, id uuid.UUID) (*model.Role, error) {
	for i := range r.roles {
		if r.roles[i].ID == id {
			role := r.roles[i]
			return &role, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoles) FindByName(_ context.Context, name string) (*model.Role, error) {
	for i := range r.roles {
		if r.roles[i].Name == name {
			role := r.roles[i]
			return &role, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoles) ListAll(context.Context) ([]model.Role, error) { return r.roles, nil }

func (r *fakeRoles) ListPermissions(context.Context) ([]model.Permission, error) { return r.perms, nil }

func (r *fakeRoles) ReplacePermissions(_ context.Context, roleID uuid.UUID, ids []uuid.UUID) error {
	for i := range r.roles {
		if r.roles[i].ID != roleID {
			continue
		}
		granted := []model.Permission{}
		for _, p := range r.perms {
			for _, id := range ids {
				if p.ID == id {
					granted = append(granted, p)
				}
			}
		}
		r.roles[i].Permissions = granted
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRoles) PermissionCodes(ctx context.Context, name string) ([]string, error) {
	role, err := r.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		codes = append(codes, p.Code)
	}
	sort.Strings(codes)
	return codes, nil
}

func (r *fakeRoles) UpsertPermission(_ context.Context, perm *model.Permission) error {
	for i := range r.perms {
		if r.perms[i].Code == perm.Code {
			r.perms[i].Name, r.perms[i].Group = perm.Name, perm.Group
			perm.ID = r.perms[i].ID
			return nil
		}
	}
	perm.ID = uuid.New()
	r.perms = append(r.perms, *perm)
	return nil
}

func TestRoleService_SeedIsIdempotent(t *testing.T) {
	repo := &fakeRoles{}
	svc := NewRoleService(repo, &fakeTx{st: newStore(fixtureNow)})
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaultRolesAndPermissions(ctx))
	require.NoError(t, svc.SeedDefaultRolesAndPermissions(ctx))

	assert.Len(t, repo.roles, 4)
	assert.Len(t, repo.perms, 9)

	portal, err := repo.PermissionCodes(ctx, model.RolePortal)
	require.NoError(t, err)
	assert.Equal(t, []string{PermApprovalsRead, PermApprovalsWrite, PermCatalogRead}, portal)

	staff, err := repo.PermissionCodes(ctx, model.RoleStaff)
	require.NoError(t, err)
	assert.NotContains(t, staff, PermApprovalsApprove)

	roles, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	for _, r := range roles {
		assert.True(t, r.IsSystem)
		assert.Equal(t, r.Name == model.RolePortal, r.Portal)
	}
}

func TestRoleService_UpdateRolePermissions(t *testing.T) {
	repo := &fakeRoles{}
	svc := NewRoleService(repo, &fakeTx{st: newStore(fixtureNow)})
	ctx := context.Background()
	require.NoError(t, svc.SeedDefaultRolesAndPermissions(ctx))

	staff, err := repo.FindByName(ctx, model.RoleStaff)
	require.NoError(t, err)
	var approve model.Permission
	for _, p := range repo.perms {
		if p.Code == PermApprovalsApprove {
			approve = p
		}
	}

	resp, err := svc.UpdateRolePermissions(ctx, staff.ID.String(), UpdateRolePermissionsRequest{PermissionIDs: []string{approve.ID.String()}})
	require.NoError(t, err)
	require.Len(t, resp.Permissions, 1)
	assert.Equal(t, PermApprovalsApprove, resp.Permissions[0].Code)

	_, err = svc.UpdateRolePermissions(ctx, "not-a-uuid", UpdateRolePermissionsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateRolePermissions(ctx, uuid.NewString(), UpdateRolePermissionsRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}
