// Package seed provides the built-in fixture data empty collections are
// seeded from, an optional YAML fixture-file override, and a demo data
// generator for development.
package seed

import (
	"fmt"
	"os"

	"agora/internal/models"
	"agora/internal/store"

	"gopkg.in/yaml.v3"
)

// Fixture timestamps are fixed so that re-initializing always yields the
// exact same records.
const (
	fixtureEpoch = int64(1735689600000) // 2025-01-01T00:00:00Z
	day          = int64(24 * 60 * 60 * 1000)
)

// Defaults returns the built-in fixture set. Fixture accounts carry no
// password hash and cannot log in; they exist so a fresh store has
// something to show.
func Defaults() store.Fixtures {
	users := []models.User{
		{ID: "seed-user-admin", Username: "admin", Avatar: "🛡️", Karma: 120, Role: models.RoleAdmin, CreatedAt: fixtureEpoch},
		{ID: "seed-user-rowan", Username: "rowan_dev", Avatar: "🦝", Karma: 42, Role: models.RoleUser, CreatedAt: fixtureEpoch + day, Bio: "Backend tinkerer."},
		{ID: "seed-user-mira", Username: "mira_codes", Avatar: "🌙", Karma: 77, Role: models.RoleModerator, CreatedAt: fixtureEpoch + 2*day, Bio: "Moderates with a light touch."},
	}

	communities := []models.Community{
		{ID: "seed-comm-golang", Name: "golang", Description: "All things Go.", Members: 1284, Icon: "🐹", CreatedAt: fixtureEpoch, CreatedBy: "admin"},
		{ID: "seed-comm-webdev", Name: "webdev", Description: "Building for the browser.", Members: 5330, Icon: "🌐", CreatedAt: fixtureEpoch, CreatedBy: "admin", Rules: []string{"Stay on topic", "No spam"}},
		{ID: "seed-comm-askforum", Name: "askforum", Description: "Questions and answers.", Members: 912, Icon: "❓", CreatedAt: fixtureEpoch + day, CreatedBy: "mira_codes"},
	}

	posts := []models.Post{
		{
			ID: "seed-post-1", Title: "What's new in the standard library this cycle?",
			Author: "rowan_dev", AuthorID: "seed-user-rowan",
			Content:   "Went through the release notes so you don't have to. Highlights inside.",
			Timestamp: fixtureEpoch + 3*day, Upvotes: 18, Downvotes: 2,
			CommentsCount: 2, Community: "golang",
		},
		{
			ID: "seed-post-2", Title: "Show: a tiny local-first forum engine",
			Author: "mira_codes", AuthorID: "seed-user-mira",
			Content:   "Everything persists locally, no server required. Feedback welcome.",
			Link:      "https://example.com/local-first-forum",
			Timestamp: fixtureEpoch + 2*day, Upvotes: 31, Downvotes: 1,
			CommentsCount: 1, Community: "webdev",
		},
		{
			ID: "seed-post-3", Title: "Welcome! Read the rules before posting",
			Author: "admin", AuthorID: "seed-user-admin",
			Content:   "Be kind, stay on topic, report anything that looks off.",
			Timestamp: fixtureEpoch + day, Upvotes: 54, Downvotes: 0,
			CommentsCount: 0, Community: "askforum", IsPinned: true,
		},
	}

	comments := map[string][]models.Comment{
		"seed-post-1": {
			{ID: "seed-comment-1a", Author: "mira_codes", AuthorID: "seed-user-mira", Content: "The iterator changes are the sleeper hit.", Timestamp: fixtureEpoch + 3*day + 1000, Upvotes: 5, Downvotes: 0, PostID: "seed-post-1"},
			{ID: "seed-comment-1b", Author: "admin", AuthorID: "seed-user-admin", Content: "Pinning this for the weekly thread.", Timestamp: fixtureEpoch + 3*day + 2000, Upvotes: 2, Downvotes: 0, PostID: "seed-post-1"},
		},
		"seed-post-2": {
			{ID: "seed-comment-2a", Author: "rowan_dev", AuthorID: "seed-user-rowan", Content: "Love the offline angle. How big does the store file get?", Timestamp: fixtureEpoch + 2*day + 1000, Upvotes: 3, Downvotes: 0, PostID: "seed-post-2"},
		},
	}

	return store.Fixtures{
		Users:       users,
		Posts:       posts,
		Comments:    comments,
		Communities: communities,
	}
}

// LoadFile reads a fixture set from a YAML file, replacing the built-in
// defaults entirely. Keys follow yaml.v3's default field lowercasing
// (e.g. authorid, commentscount).
func LoadFile(path string) (store.Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return store.Fixtures{}, fmt.Errorf("read fixtures file: %w", err)
	}
	var f store.Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return store.Fixtures{}, fmt.Errorf("decode fixtures file %s: %w", path, err)
	}
	return f, nil
}
