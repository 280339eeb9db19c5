package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Model grants by role. A wildcard object or action in a policy matches any
// requested value.
const Model = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// DefaultPolicies: regular users may read the catalogue and employees, admins
// may do anything and inherit the user role.
var DefaultPolicies = [][]string{
	{"user", "department", "read"},
	{"user", "position", "read"},
	{"user", "employee", "read"},
	{"user", "status", "read"},
	{"user", "skill", "read"},
	{"admin", "*", "*"},
}

var DefaultGroupings = [][]string{
	{"admin", "user"},
}

func NewEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(Model)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := e.AddPolicies(DefaultPolicies); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicies(DefaultGroupings); err != nil {
		return nil, err
	}

	return e, nil
}
