package models

// Comment is a reply to a post. Comments are stored per post in a flat,
// newest-first list; Replies exists in the serialized shape for forward
// compatibility but is never populated.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	Timestamp int64     `json:"timestamp"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	Replies   []Comment `json:"replies,omitempty"`
	Edited    int64     `json:"edited,omitempty"`
	PostID    string    `json:"postId"`
}

// CommentPatch whitelists the mutable comment fields.
type CommentPatch struct {
	Content   *string
	Edited    *int64
	Upvotes   *int
	Downvotes *int
}

// Apply merges the patch onto c, clamping counters at zero.
func (cp CommentPatch) Apply(c *Comment) {
	if cp.Content != nil {
		c.Content = *cp.Content
	}
	if cp.Edited != nil {
		c.Edited = *cp.Edited
	}
	if cp.Upvotes != nil {
		c.Upvotes = max(0, *cp.Upvotes)
	}
	if cp.Downvotes != nil {
		c.Downvotes = max(0, *cp.Downvotes)
	}
}
