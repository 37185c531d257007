package store

import (
	"context"
	"strings"

	"agora/internal/models"
)

// Users returns all user records.
func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("users", "read")
	return s.loadUsersLocked(ctx)
}

// UserByID returns the user with the given id, or nil when none exists.
func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// UserByUsername looks a user up by name, case-insensitively.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			return &users[i], nil
		}
	}
	return nil, nil
}

// AddUser appends the user. Usernames are unique case-insensitively;
// collisions fail with a validation error and nothing is written.
func (s *Store) AddUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("users", "add")

	users, err := s.loadUsersLocked(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, user.Username) {
			return models.NewValidationError("Username already exists")
		}
	}
	users = append(users, user)
	return s.saveLocked(ctx, keyUsers, users)
}

// UpdateUser applies the patch to the matching user. A missing id is a
// silent no-op. A username change must not collide with another user.
func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("users", "update")
	return s.updateUserLocked(ctx, id, patch)
}

func (s *Store) updateUserLocked(ctx context.Context, id string, patch models.UserPatch) error {
	users, err := s.loadUsersLocked(ctx)
	if err != nil {
		return err
	}
	if patch.Username != nil {
		for _, u := range users {
			if u.ID != id && strings.EqualFold(u.Username, *patch.Username) {
				return models.NewValidationError("Username already exists")
			}
		}
	}
	for i := range users {
		if users[i].ID == id {
			patch.Apply(&users[i])
			return s.saveLocked(ctx, keyUsers, users)
		}
	}
	return nil
}

// AdjustKarma shifts the user's karma by delta; karma may go negative. A
// missing id is a silent no-op.
func (s *Store) AdjustKarma(ctx context.Context, id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("users", "update")

	users, err := s.loadUsersLocked(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].Karma += delta
			return s.saveLocked(ctx, keyUsers, users)
		}
	}
	return nil
}

// DeleteUser removes the user record. A missing id is a silent no-op.
// Content the user authored stays; moderation's RemoveUser is the
// admin-gated wrapper around this.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("users", "delete")
	return s.deleteUserLocked(ctx, id)
}

func (s *Store) deleteUserLocked(ctx context.Context, id string) error {
	users, err := s.loadUsersLocked(ctx)
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(users) {
		return nil
	}
	return s.saveLocked(ctx, keyUsers, kept)
}
