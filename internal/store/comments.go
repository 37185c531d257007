package store

import (
	"context"

	"agora/internal/models"
)

// CommentsByPost returns the post's comments, newest first. An unknown
// post id yields an empty list.
func (s *Store) CommentsByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("comments", "read")

	comments, err := s.loadCommentsLocked(ctx)
	if err != nil {
		return nil, err
	}
	list := comments[postID]
	if list == nil {
		return []models.Comment{}, nil
	}
	return list, nil
}

// CommentsByAuthor collects the author's comments across all posts.
func (s *Store) CommentsByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("comments", "read")

	comments, err := s.loadCommentsLocked(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Comment, 0)
	for _, list := range comments {
		for _, c := range list {
			if c.AuthorID == authorID {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

// AddComment prepends the comment to the post's bucket and increments the
// post's comment counter. The counter update is a silent no-op when the
// post record is missing, matching update semantics elsewhere.
func (s *Store) AddComment(ctx context.Context, postID string, comment models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("comments", "add")

	comment.PostID = postID

	comments, err := s.loadCommentsLocked(ctx)
	if err != nil {
		return err
	}
	comments[postID] = append([]models.Comment{comment}, comments[postID]...)
	if err := s.saveLocked(ctx, keyComments, comments); err != nil {
		return err
	}

	return s.adjustCommentsCountLocked(ctx, postID, +1)
}

// UpdateComment applies the patch to the matching comment. Missing post or
// comment ids are silent no-ops.
func (s *Store) UpdateComment(ctx context.Context, postID, commentID string, patch models.CommentPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("comments", "update")

	comments, err := s.loadCommentsLocked(ctx)
	if err != nil {
		return err
	}
	list, ok := comments[postID]
	if !ok {
		return nil
	}
	for i := range list {
		if list[i].ID == commentID {
			patch.Apply(&list[i])
			comments[postID] = list
			return s.saveLocked(ctx, keyComments, comments)
		}
	}
	return nil
}

// DeleteComment removes the comment and decrements the post's comment
// counter, which never goes below zero.
func (s *Store) DeleteComment(ctx context.Context, postID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("comments", "delete")

	comments, err := s.loadCommentsLocked(ctx)
	if err != nil {
		return err
	}
	list, ok := comments[postID]
	if !ok {
		return nil
	}
	kept := make([]models.Comment, 0, len(list))
	for _, c := range list {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(list) {
		return nil
	}
	comments[postID] = kept
	if err := s.saveLocked(ctx, keyComments, comments); err != nil {
		return err
	}

	return s.adjustCommentsCountLocked(ctx, postID, -1)
}

func (s *Store) adjustCommentsCountLocked(ctx context.Context, postID string, delta int) error {
	posts, err := s.loadPostsLocked(ctx)
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].ID == postID {
			posts[i].CommentsCount = max(0, posts[i].CommentsCount+delta)
			return s.saveLocked(ctx, keyPosts, posts)
		}
	}
	return nil
}
