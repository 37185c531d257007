package models

// Community is a named board posts are filed under. Names are unique
// case-insensitively.
type Community struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     int      `json:"members"`
	Icon        string   `json:"icon"`
	CreatedAt   int64    `json:"createdAt"`
	CreatedBy   string   `json:"createdBy"`
	Rules       []string `json:"rules,omitempty"`
}

// CommunityPatch whitelists the mutable community fields. Name changes are
// not allowed because posts reference communities by name.
type CommunityPatch struct {
	Description *string
	Members     *int
	Icon        *string
	Rules       *[]string
}

// Apply merges the patch onto c.
func (cp CommunityPatch) Apply(c *Community) {
	if cp.Description != nil {
		c.Description = *cp.Description
	}
	if cp.Members != nil {
		c.Members = max(0, *cp.Members)
	}
	if cp.Icon != nil {
		c.Icon = *cp.Icon
	}
	if cp.Rules != nil {
		c.Rules = *cp.Rules
	}
}
