package policy

import (
	"slices"
	"sync"

	"solartrack/cmd/internal/domain/entity"
)

// RoleConfigRepository reads per-role permission overrides. The
// database is the system of record for overrides; the evaluator only
// caches what it read.
type RoleConfigRepository interface {
	FindByRole(role string) (*entity.RoleConfig, error)
}

// Evaluator resolves a role name to its permission set: the persisted
// override when one exists, otherwise the built-in defaults. Resolved
// sets are cached until Invalidate is called for the role.
type Evaluator struct {
	repo     RoleConfigRepository
	defaults map[string][]string

	mu    sync.RWMutex
	cache map[string][]string
}

func NewEvaluator(repo RoleConfigRepository) *Evaluator {
	return &Evaluator{
		repo:     repo,
		defaults: entity.DefaultRolePermissions(),
		cache:    make(map[string][]string),
	}
}

// PermissionsFor resolves the effective permission set of a role. An
// unknown role resolves to the empty set, not an error.
func (e *Evaluator) PermissionsFor(role string) ([]string, error) {
	e.mu.RLock()
	cached, ok := e.cache[role]
	e.mu.RUnlock()
	if ok {
		return cached, nil
	}

	config, err := e.repo.FindByRole(role)
	if err != nil {
		return nil, err
	}

	perms := e.defaults[role]
	if config != nil {
		perms = config.Permissoes
	}

	e.mu.Lock()
	e.cache[role] = perms
	e.mu.Unlock()
	return perms, nil
}

func (e *Evaluator) HasPermission(role, permissionID string) (bool, error) {
	perms, err := e.PermissionsFor(role)
	if err != nil {
		return false, err
	}
	return slices.Contains(perms, permissionID), nil
}

func (e *Evaluator) HasAnyPermission(role string, permissionIDs []string) (bool, error) {
	perms, err := e.PermissionsFor(role)
	if err != nil {
		return false, err
	}

	for _, id := range permissionIDs {
		if slices.Contains(perms, id) {
			return true, nil
		}
	}
	return false, nil
}

func (e *Evaluator) HasAllPermissions(role string, permissionIDs []string) (bool, error) {
	perms, err := e.PermissionsFor(role)
	if err != nil {
		return false, err
	}

	for _, id := range permissionIDs {
		if !slices.Contains(perms, id) {
			return false, nil
		}
	}
	return true, nil
}

// Invalidate drops the cached set for a role after its override row
// changed.
func (e *Evaluator) Invalidate(role string) {
	e.mu.Lock()
	delete(e.cache, role)
	e.mu.Unlock()
}
