package models

// VoteType is the direction of a vote.
type VoteType string

// Valid vote types.
const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// IsValid reports whether t is a known vote type.
func (t VoteType) IsValid() bool {
	return t == VoteUp || t == VoteDown
}

// ScoreValue returns the score delta a vote of this type contributes.
func (t VoteType) ScoreValue() int {
	switch t {
	case VoteUp:
		return 1
	case VoteDown:
		return -1
	}
	return 0
}

// Vote is a ledger entry recording one user's current stance on one
// target. Exactly one of PostID/CommentID is set; the store only creates
// votes through a tagged target type, so the exclusivity holds
// structurally even though the serialized shape keeps both fields.
type Vote struct {
	UserID    string   `json:"userId"`
	PostID    string   `json:"postId,omitempty"`
	CommentID string   `json:"commentId,omitempty"`
	Type      VoteType `json:"type"`
	Timestamp int64    `json:"timestamp"`
}
