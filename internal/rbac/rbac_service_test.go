package rbac_test

import (
	"testing"

	"tireops/internal/rbac"
	"tireops/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newService(t)

	t.Run("success employee can punch", func(t *testing.T) {
		allowed, err := svc.Enforce(rbac.RoleEmployee, "timeclock", "punch")
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("success admin inherits coach and employee permissions", func(t *testing.T) {
		allowed, err := svc.Enforce(rbac.RoleAdmin, "correction", "review")
		assert.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = svc.Enforce(rbac.RoleAdmin, "timeclock", "punch")
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("negative admin cannot delete equipment", func(t *testing.T) {
		allowed, err := svc.Enforce(rbac.RoleAdmin, "equipment", "delete")
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("success superuser can delete equipment", func(t *testing.T) {
		allowed, err := svc.Enforce(rbac.RoleSuperuser, "equipment", "delete")
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("negative employee cannot review corrections", func(t *testing.T) {
		allowed, err := svc.Enforce(rbac.RoleEmployee, "correction", "review")
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("negative unknown role denied", func(t *testing.T) {
		allowed, err := svc.Enforce("CONTRACTOR", "equipment", "read")
		assert.NoError(t, err)
		assert.False(t, allowed)
	})
}
