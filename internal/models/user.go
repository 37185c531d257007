// Package models contains the domain entities persisted by the forum data
// core, plus the shared error taxonomy. Field names in the JSON tags match
// the serialized collection layout and must not change.
package models

// Role values a user can hold. Ban status is tracked separately on the
// user record and is independent of role.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User represents a forum account. Karma may go negative.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	Avatar       string `json:"avatar"`
	Karma        int    `json:"karma"`
	Role         string `json:"role"`
	CreatedAt    int64  `json:"createdAt"`
	Bio          string `json:"bio,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`
	IsBanned     bool   `json:"isBanned,omitempty"`
}

// UserPatch is the whitelist of user fields that profile edits and
// moderation may change. Nil fields are left untouched; ID and CreatedAt
// are deliberately not patchable.
type UserPatch struct {
	Username     *string
	Email        *string
	Avatar       *string
	Bio          *string
	Karma        *int
	Role         *string
	IsBanned     *bool
	PasswordHash *string
}

// Apply merges the patch onto u.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Karma != nil {
		u.Karma = *p.Karma
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsBanned != nil {
		u.IsBanned = *p.IsBanned
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}
