package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostPatchApply(t *testing.T) {
	base := Post{
		ID: "p-1", Title: "original", Author: "rowan", AuthorID: "u-1",
		Content: "body", Timestamp: 1000, Upvotes: 3, Downvotes: 1,
		CommentsCount: 2, Community: "golang",
	}

	t.Run("nil fields leave record untouched", func(t *testing.T) {
		p := base
		PostPatch{}.Apply(&p)
		assert.Equal(t, base, p)
	})

	t.Run("set fields are applied", func(t *testing.T) {
		p := base
		title := "edited"
		locked := true
		PostPatch{Title: &title, IsLocked: &locked}.Apply(&p)
		assert.Equal(t, "edited", p.Title)
		assert.True(t, p.IsLocked)
		assert.Equal(t, base.AuthorID, p.AuthorID, "identity fields never change")
		assert.Equal(t, base.Timestamp, p.Timestamp)
	})

	t.Run("counters clamp at zero", func(t *testing.T) {
		p := base
		neg := -10
		PostPatch{Upvotes: &neg, Downvotes: &neg, CommentsCount: &neg}.Apply(&p)
		assert.Zero(t, p.Upvotes)
		assert.Zero(t, p.Downvotes)
		assert.Zero(t, p.CommentsCount)
	})
}

func TestUserPatchApply(t *testing.T) {
	base := User{ID: "u-1", Username: "rowan_dev", Role: RoleUser, Karma: 10}

	t.Run("role and ban flag change independently", func(t *testing.T) {
		u := base
		banned := true
		UserPatch{IsBanned: &banned}.Apply(&u)
		assert.True(t, u.IsBanned)
		assert.Equal(t, RoleUser, u.Role)

		role := RoleAdmin
		UserPatch{Role: &role}.Apply(&u)
		assert.Equal(t, RoleAdmin, u.Role)
		assert.True(t, u.IsBanned, "promotion must not unban")
	})

	t.Run("karma may go negative", func(t *testing.T) {
		u := base
		karma := -5
		UserPatch{Karma: &karma}.Apply(&u)
		assert.Equal(t, -5, u.Karma)
	})
}

func TestVoteType(t *testing.T) {
	assert.True(t, VoteUp.IsValid())
	assert.True(t, VoteDown.IsValid())
	assert.False(t, VoteType("sideways").IsValid())
	assert.Equal(t, 1, VoteUp.ScoreValue())
	assert.Equal(t, -1, VoteDown.ScoreValue())
}
