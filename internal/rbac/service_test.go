package rbac_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askstack/askstack/internal/rbac"
	"github.com/askstack/askstack/internal/shared"
	_ "github.com/askstack/askstack/testing"
)

func newMockService(t *testing.T) (*rbac.Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return rbac.NewService(mock), mock
}

func TestEffectivePermissions(t *testing.T) {
	service, mock := newMockService(t)

	mock.ExpectQuery(`SELECT DISTINCT p\.name`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"name"}).
			AddRow("create_answer").
			AddRow("create_question").
			AddRow("vote_question"))

	perms, err := service.EffectivePermissions(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"create_answer", "create_question", "vote_question"}, perms)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEffectivePermissionsEmpty(t *testing.T) {
	service, mock := newMockService(t)

	mock.ExpectQuery(`SELECT DISTINCT p\.name`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"name"}))

	perms, err := service.EffectivePermissions(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, perms)
}

func TestFindRoleByName(t *testing.T) {
	service, mock := newMockService(t)

	mock.ExpectQuery(`SELECT id FROM roles WHERE name = \$1`).
		WithArgs(rbac.RoleAdmin).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))

	id, err := service.FindRoleByName(context.Background(), rbac.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestFindRoleByNameMissing(t *testing.T) {
	service, mock := newMockService(t)

	mock.ExpectQuery(`SELECT id FROM roles WHERE name = \$1`).
		WithArgs("superhero").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := service.FindRoleByName(context.Background(), "superhero")
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, "role does not exist", err.Error())
}

func TestRolesOf(t *testing.T) {
	service, mock := newMockService(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT r\.id, r\.name, r\.created_at, r\.updated_at`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(int64(1), rbac.RoleUser, now, now).
			AddRow(int64(2), rbac.RoleProUser, now, now))

	roles, err := service.RolesOf(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, rbac.RoleUser, roles[0].Name)
	assert.Equal(t, rbac.RoleProUser, roles[1].Name)
}

func TestAssignRole(t *testing.T) {
	service, mock := newMockService(t)

	mock.ExpectExec(`INSERT INTO user_role`).
		WithArgs(int64(7), int64(2)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, service.AssignRole(context.Background(), 7, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionMatrixShape(t *testing.T) {
	all := rbac.AllPermissions()
	seen := make(map[string]struct{}, len(all))
	for _, p := range all {
		_, dup := seen[p]
		require.False(t, dup, "duplicate permission %q", p)
		seen[p] = struct{}{}
	}
	for _, p := range rbac.AdminOnlyPermissions() {
		assert.Contains(t, all, p)
	}
	for _, p := range rbac.ProUserPermissions() {
		assert.Contains(t, all, p)
	}
	assert.NotContains(t, rbac.ProUserPermissions(), rbac.PermDeleteUser)
}
