package store

import (
	"context"
	"time"

	"agora/internal/models"
	"agora/internal/observability"
)

// VoteTarget is a tagged reference to the post or comment a vote applies
// to. It can only be built through PostTarget or CommentTarget, which is
// what makes the "exactly one of postId/commentId" rule structural.
type VoteTarget struct {
	postID    string
	commentID string
}

// PostTarget targets the post with the given id.
func PostTarget(postID string) VoteTarget {
	return VoteTarget{postID: postID}
}

// CommentTarget targets a comment. The owning post id is needed to find
// the comment's counters; the ledger entry itself only records the
// comment id.
func CommentTarget(postID, commentID string) VoteTarget {
	return VoteTarget{postID: postID, commentID: commentID}
}

// IsComment reports whether the target is a comment.
func (t VoteTarget) IsComment() bool { return t.commentID != "" }

// matches reports whether the ledger entry v is this target's entry.
func (t VoteTarget) matches(v models.Vote) bool {
	if t.IsComment() {
		return v.CommentID == t.commentID
	}
	return v.PostID == t.postID && v.CommentID == ""
}

// entry builds the ledger record for a vote on this target.
func (t VoteTarget) entry(userID string, voteType models.VoteType) models.Vote {
	v := models.Vote{UserID: userID, Type: voteType, Timestamp: time.Now().UnixMilli()}
	if t.IsComment() {
		v.CommentID = t.commentID
	} else {
		v.PostID = t.postID
	}
	return v
}

// VoteOutcome describes what a CastVote call did.
type VoteOutcome string

// Cast outcomes. OutcomeNone means the target does not exist and nothing
// was written.
const (
	OutcomeAdded    VoteOutcome = "added"
	OutcomeRemoved  VoteOutcome = "removed"
	OutcomeSwitched VoteOutcome = "switched"
	OutcomeNone     VoteOutcome = "none"
)

// VoteResult reports the outcome of a cast and the target's counters
// after it.
type VoteResult struct {
	Outcome   VoteOutcome
	Upvotes   int
	Downvotes int
}

// CastVote applies one user's vote of the given type to the target:
// a first vote inserts a ledger entry and bumps the matching counter, a
// repeat of the same type retracts it, and a vote of the other type
// switches it. At most one ledger entry ever exists per (user, target),
// counters clamp at zero, and the whole read-modify-write runs under the
// store lock so no partial application is observable.
func (s *Store) CastVote(ctx context.Context, userID string, target VoteTarget, voteType models.VoteType) (VoteResult, error) {
	if userID == "" {
		return VoteResult{}, models.NewValidationError("A user is required to vote")
	}
	if !voteType.IsValid() {
		return VoteResult{}, models.NewValidationError("Unknown vote type")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("votes", "cast")

	votes, err := s.loadVotesLocked(ctx)
	if err != nil {
		return VoteResult{}, err
	}

	existing := -1
	for i, v := range votes {
		if v.UserID == userID && target.matches(v) {
			existing = i
			break
		}
	}

	up, down, found, commit, err := s.targetCounters(ctx, target)
	if err != nil {
		return VoteResult{}, err
	}
	if !found {
		observability.VotesCastTotal.WithLabelValues(string(OutcomeNone)).Inc()
		return VoteResult{Outcome: OutcomeNone}, nil
	}

	var outcome VoteOutcome
	switch {
	case existing == -1:
		votes = append(votes, target.entry(userID, voteType))
		up, down = applyDelta(up, down, voteType, +1)
		outcome = OutcomeAdded
	case votes[existing].Type == voteType:
		votes = append(votes[:existing], votes[existing+1:]...)
		up, down = applyDelta(up, down, voteType, -1)
		outcome = OutcomeRemoved
	default:
		previous := votes[existing].Type
		votes = append(votes[:existing], votes[existing+1:]...)
		up, down = applyDelta(up, down, previous, -1)
		votes = append(votes, target.entry(userID, voteType))
		up, down = applyDelta(up, down, voteType, +1)
		outcome = OutcomeSwitched
	}

	if err := commit(up, down); err != nil {
		return VoteResult{}, err
	}
	if err := s.saveLocked(ctx, keyVotes, votes); err != nil {
		return VoteResult{}, err
	}

	observability.VotesCastTotal.WithLabelValues(string(outcome)).Inc()
	return VoteResult{Outcome: outcome, Upvotes: up, Downvotes: down}, nil
}

// VoteFor returns the user's current ledger entry for the target, or nil.
func (s *Store) VoteFor(ctx context.Context, userID string, target VoteTarget) (*models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("votes", "read")

	votes, err := s.loadVotesLocked(ctx)
	if err != nil {
		return nil, err
	}
	for i := range votes {
		if votes[i].UserID == userID && target.matches(votes[i]) {
			return &votes[i], nil
		}
	}
	return nil, nil
}

// Votes returns every ledger entry.
func (s *Store) Votes(ctx context.Context) ([]models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	countOp("votes", "read")
	return s.loadVotesLocked(ctx)
}

// targetCounters reads the target's counters and returns a commit
// function that writes them back. found is false when the target record
// does not exist.
func (s *Store) targetCounters(ctx context.Context, target VoteTarget) (up, down int, found bool, commit func(up, down int) error, err error) {
	if target.IsComment() {
		comments, err := s.loadCommentsLocked(ctx)
		if err != nil {
			return 0, 0, false, nil, err
		}
		list := comments[target.postID]
		for i := range list {
			if list[i].ID == target.commentID {
				idx := i
				commit := func(up, down int) error {
					list[idx].Upvotes = up
					list[idx].Downvotes = down
					comments[target.postID] = list
					return s.saveLocked(ctx, keyComments, comments)
				}
				return list[i].Upvotes, list[i].Downvotes, true, commit, nil
			}
		}
		return 0, 0, false, nil, nil
	}

	posts, err := s.loadPostsLocked(ctx)
	if err != nil {
		return 0, 0, false, nil, err
	}
	for i := range posts {
		if posts[i].ID == target.postID {
			idx := i
			commit := func(up, down int) error {
				posts[idx].Upvotes = up
				posts[idx].Downvotes = down
				return s.saveLocked(ctx, keyPosts, posts)
			}
			return posts[i].Upvotes, posts[i].Downvotes, true, commit, nil
		}
	}
	return 0, 0, false, nil, nil
}

// applyDelta shifts the counter for the given vote type, clamping at
// zero.
func applyDelta(up, down int, voteType models.VoteType, delta int) (int, int) {
	if voteType == models.VoteUp {
		return max(0, up+delta), down
	}
	return up, max(0, down+delta)
}
