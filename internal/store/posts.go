package store

import (
	"context"
	"strings"

	"agora/internal/models"
)

// Posts returns all posts, newest first.
func (s *Store) Posts(ctx context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("posts", "read")
	return s.loadPostsLocked(ctx)
}

// PostByID returns the post with the given id, or nil when none exists.
func (s *Store) PostByID(ctx context.Context, id string) (*models.Post, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, nil
}

// PostsByAuthor returns the author's posts, newest first.
func (s *Store) PostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Post, 0)
	for _, p := range posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

// PostsByCommunity returns the community's posts, newest first. The name
// comparison is case-insensitive, like community lookups.
func (s *Store) PostsByCommunity(ctx context.Context, community string) ([]models.Post, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Post, 0)
	for _, p := range posts {
		if strings.EqualFold(p.Community, community) {
			out = append(out, p)
		}
	}
	return out, nil
}

// AddPost prepends the post to the collection (newest first).
func (s *Store) AddPost(ctx context.Context, post models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("posts", "add")

	posts, err := s.loadPostsLocked(ctx)
	if err != nil {
		return err
	}
	posts = append([]models.Post{post}, posts...)
	return s.saveLocked(ctx, keyPosts, posts)
}

// UpdatePost applies the patch to the matching post. A missing id is a
// silent no-op.
func (s *Store) UpdatePost(ctx context.Context, id string, patch models.PostPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("posts", "update")

	posts, err := s.loadPostsLocked(ctx)
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].ID == id {
			patch.Apply(&posts[i])
			return s.saveLocked(ctx, keyPosts, posts)
		}
	}
	return nil
}

// DeletePost removes the post along with its comment bucket and its ledger
// entries. A missing id is a silent no-op.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("posts", "delete")

	posts, err := s.loadPostsLocked(ctx)
	if err != nil {
		return err
	}
	kept := posts[:0]
	found := false
	for _, p := range posts {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return nil
	}
	if err := s.saveLocked(ctx, keyPosts, kept); err != nil {
		return err
	}

	comments, err := s.loadCommentsLocked(ctx)
	if err != nil {
		return err
	}
	if _, ok := comments[id]; ok {
		delete(comments, id)
		if err := s.saveLocked(ctx, keyComments, comments); err != nil {
			return err
		}
	}

	votes, err := s.loadVotesLocked(ctx)
	if err != nil {
		return err
	}
	keptVotes := votes[:0]
	for _, v := range votes {
		if v.PostID == id {
			continue
		}
		keptVotes = append(keptVotes, v)
	}
	if len(keptVotes) != len(votes) {
		return s.saveLocked(ctx, keyVotes, keptVotes)
	}
	return nil
}
