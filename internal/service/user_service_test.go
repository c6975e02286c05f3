package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.userSvc.CreateUser(ctx, "  Priya  ", domain.RoleDeveloper)
	require.NoError(t, err)
	assert.Equal(t, "Priya", user.Name)
	assert.Equal(t, domain.RoleDeveloper, user.Role)
	assert.NotEmpty(t, user.ID)
}

func TestCreateUser_DuplicateNameCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.userSvc.CreateUser(ctx, "Maria", domain.RoleTester)
	require.NoError(t, err)

	for _, name := range []string{"Maria", "maria", "MARIA"} {
		_, err := f.userSvc.CreateUser(ctx, name, domain.RoleDeveloper)
		require.Error(t, err, "name %q", name)
		assert.True(t, apperrors.IsRuleViolation(err))
		assert.Contains(t, err.Error(), "already exists")
	}

	// A different name is still fine.
	_, err = f.userSvc.CreateUser(ctx, "Marianne", domain.RoleDeveloper)
	assert.NoError(t, err)
}

func TestCreateUser_EmptyName(t *testing.T) {
	f := newFixture(t)

	_, err := f.userSvc.CreateUser(context.Background(), "   ", domain.RoleAdmin)
	require.Error(t, err)
	assert.True(t, apperrors.IsRuleViolation(err))
}

func TestCreateUser_InvalidRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.userSvc.CreateUser(context.Background(), "sam", domain.Role("MANAGER"))
	require.Error(t, err)
	assert.True(t, apperrors.IsRuleViolation(err))
	assert.Contains(t, err.Error(), "MANAGER")
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)

	users, err := f.userSvc.ListUsers(context.Background())
	require.NoError(t, err)
	// The fixture seeds four users.
	assert.Len(t, users, 4)
}
