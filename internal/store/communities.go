package store

import (
	"context"
	"strings"

	"agora/internal/models"
)

// Communities returns all community records.
func (s *Store) Communities(ctx context.Context) ([]models.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("communities", "read")
	return s.loadCommunitiesLocked(ctx)
}

// CommunityByID returns the community with the given id, or nil when none
// exists.
func (s *Store) CommunityByID(ctx context.Context, id string) (*models.Community, error) {
	communities, err := s.Communities(ctx)
	if err != nil {
		return nil, err
	}
	for i := range communities {
		if communities[i].ID == id {
			return &communities[i], nil
		}
	}
	return nil, nil
}

// CommunityByName looks a community up by name, case-insensitively.
func (s *Store) CommunityByName(ctx context.Context, name string) (*models.Community, error) {
	communities, err := s.Communities(ctx)
	if err != nil {
		return nil, err
	}
	for i := range communities {
		if strings.EqualFold(communities[i].Name, name) {
			return &communities[i], nil
		}
	}
	return nil, nil
}

// AddCommunity appends the community. Names are unique
// case-insensitively; collisions fail with a validation error.
func (s *Store) AddCommunity(ctx context.Context, community models.Community) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("communities", "add")

	communities, err := s.loadCommunitiesLocked(ctx)
	if err != nil {
		return err
	}
	for _, c := range communities {
		if strings.EqualFold(c.Name, community.Name) {
			return models.NewValidationError("Community name already exists")
		}
	}
	communities = append(communities, community)
	return s.saveLocked(ctx, keyCommunities, communities)
}

// UpdateCommunity applies the patch to the matching community. A missing
// id is a silent no-op.
func (s *Store) UpdateCommunity(ctx context.Context, id string, patch models.CommunityPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("communities", "update")

	communities, err := s.loadCommunitiesLocked(ctx)
	if err != nil {
		return err
	}
	for i := range communities {
		if communities[i].ID == id {
			patch.Apply(&communities[i])
			return s.saveLocked(ctx, keyCommunities, communities)
		}
	}
	return nil
}

// DeleteCommunity removes the community record. A missing id is a silent
// no-op. Posts in the community are left in place.
func (s *Store) DeleteCommunity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("communities", "delete")
	return s.deleteCommunityLocked(ctx, id)
}

func (s *Store) deleteCommunityLocked(ctx context.Context, id string) error {
	communities, err := s.loadCommunitiesLocked(ctx)
	if err != nil {
		return err
	}
	kept := communities[:0]
	for _, c := range communities {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(communities) {
		return nil
	}
	return s.saveLocked(ctx, keyCommunities, kept)
}
