package rbac_test

import (
	"testing"

	"github.com/SukhanRumanov/prac3/internal/rbac"
	"github.com/SukhanRumanov/prac3/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	e, err := infra.NewEnforcer()
	assert.NoError(t, err)
	return rbac.NewService(e, zap.NewNop())
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		role, resource, action string
		allowed                bool
	}{
		{"user", rbac.ResourceDepartment, rbac.ActionRead, true},
		{"user", rbac.ResourceEmployee, rbac.ActionRead, true},
		{"user", rbac.ResourceDepartment, rbac.ActionCreate, false},
		{"user", rbac.ResourcePosition, rbac.ActionDelete, false},
		{"user", rbac.ResourceUser, rbac.ActionUpdate, false},
		{"user", rbac.ResourceUser, rbac.ActionRead, false},
		{"user", rbac.ResourceSkill, rbac.ActionRead, true},
		{"admin", rbac.ResourceDepartment, rbac.ActionRead, true},
		{"admin", rbac.ResourceEmployee, rbac.ActionDelete, true},
		{"admin", rbac.ResourceUser, rbac.ActionUpdate, true},
		{"anonymous", rbac.ResourceDepartment, rbac.ActionRead, false},
	}

	for _, tc := range cases {
		t.Run(tc.role+" "+tc.resource+" "+tc.action, func(t *testing.T) {
			allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestRBACService_RolesFor(t *testing.T) {
	svc := newService(t)

	assert.ElementsMatch(t, []string{"admin", "user"}, svc.RolesFor("admin"))
	assert.Equal(t, []string{"user"}, svc.RolesFor("user"))
}
