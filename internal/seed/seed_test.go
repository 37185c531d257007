package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"agora/internal/kv"
	"agora/internal/observability"
	"agora/internal/store"
)

func TestDefaultsAreConsistent(t *testing.T) {
	f := Defaults()

	t.Run("comment counts match buckets", func(t *testing.T) {
		for _, p := range f.Posts {
			if got := len(f.Comments[p.ID]); p.CommentsCount != got {
				t.Errorf("post %s: commentsCount=%d but bucket holds %d", p.ID, p.CommentsCount, got)
			}
		}
		for postID := range f.Comments {
			found := false
			for _, p := range f.Posts {
				if p.ID == postID {
					found = true
				}
			}
			if !found {
				t.Errorf("comment bucket %s has no post", postID)
			}
		}
	})

	t.Run("usernames unique", func(t *testing.T) {
		seen := map[string]bool{}
		for _, u := range f.Users {
			key := strings.ToLower(u.Username)
			if seen[key] {
				t.Errorf("duplicate username %q", u.Username)
			}
			seen[key] = true
		}
	})

	t.Run("posts reference seeded authors and communities", func(t *testing.T) {
		userIDs := map[string]bool{}
		for _, u := range f.Users {
			userIDs[u.ID] = true
		}
		communityNames := map[string]bool{}
		for _, c := range f.Communities {
			communityNames[c.Name] = true
		}
		for _, p := range f.Posts {
			if !userIDs[p.AuthorID] {
				t.Errorf("post %s has unknown author %s", p.ID, p.AuthorID)
			}
			if !communityNames[p.Community] {
				t.Errorf("post %s has unknown community %s", p.ID, p.Community)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		again := Defaults()
		if len(again.Posts) != len(f.Posts) || again.Posts[0].Timestamp != f.Posts[0].Timestamp {
			t.Errorf("Defaults() is not stable across calls")
		}
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("reads a fixture set", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fixtures.yml")
		doc := `
users:
  - id: u-1
    username: custom_admin
    role: admin
communities:
  - id: c-1
    name: custom
posts:
  - id: p-1
    title: Hand-written fixture
    authorid: u-1
    community: custom
    commentscount: 1
comments:
  p-1:
    - id: cm-1
      authorid: u-1
      content: first
      postid: p-1
`
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}

		f, err := LoadFile(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(f.Users) != 1 || f.Users[0].Username != "custom_admin" {
			t.Errorf("users not decoded: %+v", f.Users)
		}
		if len(f.Comments["p-1"]) != 1 {
			t.Errorf("comment buckets not decoded: %+v", f.Comments)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yml")
		if err := os.WriteFile(path, []byte("users: {not a list"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Error("expected decode error")
		}
	})
}

func TestGenerator(t *testing.T) {
	s := store.New(kv.NewMemory(), Defaults(), store.WithLogger(observability.NopLogger()))
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	g := NewGenerator(s, observability.NopLogger())
	if err := g.Generate(ctx, 4, 6); err != nil {
		t.Fatalf("generate: %v", err)
	}

	users, _ := s.Users(ctx)
	if len(users) != len(Defaults().Users)+4 {
		t.Errorf("got %d users", len(users))
	}
	posts, _ := s.Posts(ctx)
	if len(posts) != len(Defaults().Posts)+6 {
		t.Errorf("got %d posts", len(posts))
	}

	// generated activity must satisfy the same invariants as live traffic
	for _, p := range posts {
		comments, err := s.CommentsByPost(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if p.CommentsCount != len(comments) {
			t.Errorf("post %s: commentsCount=%d, live=%d", p.ID, p.CommentsCount, len(comments))
		}
		if p.Upvotes < 0 || p.Downvotes < 0 {
			t.Errorf("post %s has negative counters", p.ID)
		}
	}

	votes, _ := s.Votes(ctx)
	seen := map[string]bool{}
	for _, v := range votes {
		key := v.UserID + "|" + v.PostID + "|" + v.CommentID
		if seen[key] {
			t.Errorf("duplicate ledger entry %s", key)
		}
		seen[key] = true
	}
}

func TestGeneratorNeedsCommunities(t *testing.T) {
	s := store.New(kv.NewMemory(), store.Fixtures{}, store.WithLogger(observability.NopLogger()))
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	g := NewGenerator(s, observability.NopLogger())
	if err := g.Generate(ctx, 1, 1); err == nil {
		t.Error("expected error when no communities exist")
	}
}
