package models

// Post is a submission to a community. Author and Community are
// denormalized display names; AuthorID is the stable reference.
// CommentsCount must stay equal to the number of stored comments for the
// post and never goes negative.
type Post struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	AuthorID      string `json:"authorId"`
	Content       string `json:"content"`
	Image         string `json:"image,omitempty"`
	Link          string `json:"link,omitempty"`
	Timestamp     int64  `json:"timestamp"`
	Upvotes       int    `json:"upvotes"`
	Downvotes     int    `json:"downvotes"`
	CommentsCount int    `json:"commentsCount"`
	Community     string `json:"community"`
	Edited        int64  `json:"edited,omitempty"`
	IsPinned      bool   `json:"isPinned,omitempty"`
	IsLocked      bool   `json:"isLocked,omitempty"`
}

// PostPatch whitelists the mutable post fields. Identity fields (ID,
// AuthorID, Timestamp, Community) cannot be patched.
type PostPatch struct {
	Title         *string
	Content       *string
	Image         *string
	Link          *string
	Edited        *int64
	Upvotes       *int
	Downvotes     *int
	CommentsCount *int
	IsPinned      *bool
	IsLocked      *bool
}

// Apply merges the patch onto p, clamping counters at zero.
func (pp PostPatch) Apply(p *Post) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Content != nil {
		p.Content = *pp.Content
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	if pp.Link != nil {
		p.Link = *pp.Link
	}
	if pp.Edited != nil {
		p.Edited = *pp.Edited
	}
	if pp.Upvotes != nil {
		p.Upvotes = max(0, *pp.Upvotes)
	}
	if pp.Downvotes != nil {
		p.Downvotes = max(0, *pp.Downvotes)
	}
	if pp.CommentsCount != nil {
		p.CommentsCount = max(0, *pp.CommentsCount)
	}
	if pp.IsPinned != nil {
		p.IsPinned = *pp.IsPinned
	}
	if pp.IsLocked != nil {
		p.IsLocked = *pp.IsLocked
	}
}
