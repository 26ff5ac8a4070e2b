package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
)

const (
	RoleSuperuser = "SUPERUSER"
	RoleAdmin     = "ADMIN"
	RoleCoach     = "COACH"
	RoleEmployee  = "EMPLOYEE"
)

// rolePolicies memetakan role ke resource/action yang diizinkan.
// Role atasan mewarisi seluruh izin role di bawahnya lewat grouping policy.
var rolePolicies = [][3]string{
	{RoleEmployee, "timeclock", "punch"},
	{RoleEmployee, "correction", "create"},
	{RoleEmployee, "equipment", "read"},

	{RoleCoach, "timeclock", "read"},
	{RoleCoach, "correction", "review"},
	{RoleCoach, "attendance", "read"},
	{RoleCoach, "writeup", "create"},
	{RoleCoach, "personnel", "read"},

	{RoleAdmin, "timeclock", "manage"},
	{RoleAdmin, "personnel", "manage"},
	{RoleAdmin, "equipment", "create"},
	{RoleAdmin, "equipment", "assign"},
	{RoleAdmin, "equipment", "return"},
	{RoleAdmin, "equipment", "reassign"},
	{RoleAdmin, "equipment", "retire"},
	{RoleAdmin, "equipment", "manage"},

	{RoleSuperuser, "equipment", "delete"},
}

var roleHierarchy = [][2]string{
	{RoleCoach, RoleEmployee},
	{RoleAdmin, RoleCoach},
	{RoleSuperuser, RoleAdmin},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer}
	if err := s.loadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicy() error {
	s.enforcer.ClearPolicy()

	for _, p := range rolePolicies {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	for _, g := range roleHierarchy {
		if _, err := s.enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
