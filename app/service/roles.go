package service

import (
	"context"
	"sort"

	"github.com/vibast-solutions/ms-go-accounts/app/entity"
)

type roleRepository interface {
	FindByUserID(ctx context.Context, userID uint64) ([]*entity.Role, error)
	FindByID(ctx context.Context, id uint64) (*entity.Role, error)
}

type RoleService struct {
	roleRepo roleRepository
}

func NewRoleService(roleRepo roleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// EffectiveRoles returns the names of a user's directly assigned roles plus
// every ancestor reachable via parent links. Visited role ids are tracked so
// the walk terminates even if the role graph contains a cycle; a repeated id
// is treated as a terminal node.
func (s *RoleService) EffectiveRoles(ctx context.Context, userID uint64) (map[string]struct{}, error) {
	direct, err := s.roleRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{})
	visited := make(map[uint64]struct{})
	for _, role := range direct {
		cur := role
		for cur != nil {
			if _, seen := visited[cur.ID]; seen {
				break
			}
			visited[cur.ID] = struct{}{}
			names[cur.Name] = struct{}{}

			if !cur.ParentRoleID.Valid {
				break
			}
			parentID := uint64(cur.ParentRoleID.Int64)
			if _, seen := visited[parentID]; seen {
				break
			}
			parent, err := s.roleRepo.FindByID(ctx, parentID)
			if err != nil {
				return nil, err
			}
			cur = parent
		}
	}
	return names, nil
}

// EffectiveRoleNames is EffectiveRoles as a sorted slice, for API responses.
func (s *RoleService) EffectiveRoleNames(ctx context.Context, userID uint64) ([]string, error) {
	roles, err := s.EffectiveRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *RoleService) HasRole(ctx context.Context, userID uint64, required string) (bool, error) {
	roles, err := s.EffectiveRoles(ctx, userID)
	if err != nil {
		return false, err
	}
	_, ok := roles[required]
	return ok, nil
}
