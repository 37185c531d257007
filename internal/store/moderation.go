package store

import (
	"context"

	"agora/internal/models"
)

// Moderation transitions. Every entry point takes the acting user's id
// and refuses to write unless that user exists, is not banned, and holds
// the admin role. Role and ban flag are independent: promoting a banned
// user does not unban them, banning an admin does not demote them.

func (s *Store) requireAdminLocked(ctx context.Context, actorID string) error {
	users, err := s.loadUsersLocked(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.ID != actorID {
			continue
		}
		if u.IsBanned {
			return models.NewUnauthorizedError("Banned users cannot moderate")
		}
		if u.Role != models.RoleAdmin {
			return models.NewUnauthorizedError("Admin privileges required")
		}
		return nil
	}
	return models.NewUnauthorizedError("Acting user not found")
}

func (s *Store) setRole(ctx context.Context, actorID, userID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("users", "moderate")

	if err := s.requireAdminLocked(ctx, actorID); err != nil {
		return err
	}
	return s.updateUserLocked(ctx, userID, models.UserPatch{Role: &role})
}

// PromoteToModerator sets the user's role to moderator.
func (s *Store) PromoteToModerator(ctx context.Context, actorID, userID string) error {
	return s.setRole(ctx, actorID, userID, models.RoleModerator)
}

// PromoteToAdmin sets the user's role to admin.
func (s *Store) PromoteToAdmin(ctx context.Context, actorID, userID string) error {
	return s.setRole(ctx, actorID, userID, models.RoleAdmin)
}

// DemoteToUser resets any role back to user.
func (s *Store) DemoteToUser(ctx context.Context, actorID, userID string) error {
	return s.setRole(ctx, actorID, userID, models.RoleUser)
}

func (s *Store) setBanned(ctx context.Context, actorID, userID string, banned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("users", "moderate")

	if err := s.requireAdminLocked(ctx, actorID); err != nil {
		return err
	}
	return s.updateUserLocked(ctx, userID, models.UserPatch{IsBanned: &banned})
}

// BanUser sets the user's ban flag. The user's role is untouched.
func (s *Store) BanUser(ctx context.Context, actorID, userID string) error {
	return s.setBanned(ctx, actorID, userID, true)
}

// UnbanUser clears the user's ban flag.
func (s *Store) UnbanUser(ctx context.Context, actorID, userID string) error {
	return s.setBanned(ctx, actorID, userID, false)
}

func (s *Store) setPostFlag(ctx context.Context, actorID, postID string, patch models.PostPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("posts", "moderate")

	if err := s.requireAdminLocked(ctx, actorID); err != nil {
		return err
	}
	posts, err := s.loadPostsLocked(ctx)
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].ID == postID {
			patch.Apply(&posts[i])
			return s.saveLocked(ctx, keyPosts, posts)
		}
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

// PinPost marks the post pinned.
func (s *Store) PinPost(ctx context.Context, actorID, postID string) error {
	return s.setPostFlag(ctx, actorID, postID, models.PostPatch{IsPinned: boolPtr(true)})
}

// UnpinPost clears the pinned flag.
func (s *Store) UnpinPost(ctx context.Context, actorID, postID string) error {
	return s.setPostFlag(ctx, actorID, postID, models.PostPatch{IsPinned: boolPtr(false)})
}

// LockPost marks the post locked. Lock and pin do not interact.
func (s *Store) LockPost(ctx context.Context, actorID, postID string) error {
	return s.setPostFlag(ctx, actorID, postID, models.PostPatch{IsLocked: boolPtr(true)})
}

// UnlockPost clears the locked flag.
func (s *Store) UnlockPost(ctx context.Context, actorID, postID string) error {
	return s.setPostFlag(ctx, actorID, postID, models.PostPatch{IsLocked: boolPtr(false)})
}

// RemoveUser hard-deletes a user record. Admin only; a missing target is
// a silent no-op.
func (s *Store) RemoveUser(ctx context.Context, actorID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("users", "moderate")

	if err := s.requireAdminLocked(ctx, actorID); err != nil {
		return err
	}
	return s.deleteUserLocked(ctx, userID)
}

// RemoveCommunity deletes a community record. Admin only; posts filed
// under it are left in place, as community membership is by name.
func (s *Store) RemoveCommunity(ctx context.Context, actorID, communityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("communities", "moderate")

	if err := s.requireAdminLocked(ctx, actorID); err != nil {
		return err
	}
	return s.deleteCommunityLocked(ctx, communityID)
}
