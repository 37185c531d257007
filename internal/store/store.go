// Package store implements the forum data core: versioned collections
// persisted through a key-value backend, the vote ledger, the moderation
// transitions and the session slot.
//
// Every operation is a full read of a collection, an in-memory transform
// and a full write-back. A single coarse mutex serializes operations so
// the read-modify-write cycles stay atomic on multi-threaded hosts.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"agora/internal/kv"
	"agora/internal/models"
	"agora/internal/observability"
)

// SchemaVersion is written once on first initialization. Version bumps do
// not trigger migrations; a mismatch is only logged.
const SchemaVersion = "1.0.0"

// Storage keys, one per logical collection.
const (
	keyPosts       = "agora_posts"
	keyComments    = "agora_comments"
	keyUsers       = "agora_users"
	keyCommunities = "agora_communities"
	keyVotes       = "agora_votes"
	keyCurrentUser = "agora_current_user"
	keyVersion     = "agora_storage_version"
)

// Fixtures is the seed data written into empty collections on first use
// and the fallback returned when a collection is absent or corrupt.
type Fixtures struct {
	Users       []models.User               `yaml:"users"`
	Posts       []models.Post               `yaml:"posts"`
	Comments    map[string][]models.Comment `yaml:"comments"`
	Communities []models.Community          `yaml:"communities"`
}

// Store owns all access to the persisted collections. Construct with New,
// call Initialize once, then use. Instances are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	kv       kv.KV
	fixtures Fixtures
	log      *slog.Logger

	subMu   sync.RWMutex
	subs    map[int]func(SessionEvent)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger replaces the default JSON logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates a Store over the given backend with the given seed data.
func New(backend kv.KV, fixtures Fixtures, opts ...Option) *Store {
	s := &Store{
		kv:       backend,
		fixtures: fixtures,
		log:      observability.NewLogger(),
		subs:     make(map[int]func(SessionEvent)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize seeds empty collections from the fixtures and records the
// schema version if absent. It is idempotent: collections that already
// exist are left untouched.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, keyVersion)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if !ok {
		if err := s.kv.Set(ctx, keyVersion, []byte(SchemaVersion)); err != nil {
			return fmt.Errorf("write schema version: %w", err)
		}
	} else if string(raw) != SchemaVersion {
		s.log.Warn("schema version mismatch, no migration performed",
			"stored", string(raw), "current", SchemaVersion)
	}

	seeds := []struct {
		key   string
		value any
	}{
		{keyPosts, s.fixtures.Posts},
		{keyComments, s.commentFixtures()},
		{keyUsers, s.fixtures.Users},
		{keyCommunities, s.fixtures.Communities},
		{keyVotes, []models.Vote{}},
	}
	for _, seed := range seeds {
		_, ok, err := s.kv.Get(ctx, seed.key)
		if err != nil {
			return fmt.Errorf("check collection %s: %w", seed.key, err)
		}
		if ok {
			continue
		}
		if err := s.saveLocked(ctx, seed.key, seed.value); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) commentFixtures() map[string][]models.Comment {
	if s.fixtures.Comments != nil {
		return s.fixtures.Comments
	}
	return map[string][]models.Comment{}
}

// loadLocked reads and decodes the collection under key into dst. A
// missing collection leaves dst at the provided defaults. Corrupt bytes
// are recovered by re-seeding the collection from the defaults already in
// dst; the decode error is logged and counted, never returned.
func (s *Store) loadLocked(ctx context.Context, key, collection string, dst any) error {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", collection, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		corrupt := models.NewCorruptDataError(collection, err)
		s.log.Warn("re-seeding corrupt collection", "collection", collection, "error", corrupt)
		observability.CollectionReseedsTotal.WithLabelValues(collection).Inc()
		return s.saveLocked(ctx, key, dst)
	}
	return nil
}

func (s *Store) saveLocked(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return models.NewInternalError(fmt.Errorf("encode %s: %w", key, err))
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) loadPostsLocked(ctx context.Context) ([]models.Post, error) {
	posts := clonePosts(s.fixtures.Posts)
	if err := s.loadLocked(ctx, keyPosts, "posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Store) loadCommentsLocked(ctx context.Context) (map[string][]models.Comment, error) {
	comments := cloneComments(s.commentFixtures())
	if err := s.loadLocked(ctx, keyComments, "comments", &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *Store) loadUsersLocked(ctx context.Context) ([]models.User, error) {
	users := cloneUsers(s.fixtures.Users)
	if err := s.loadLocked(ctx, keyUsers, "users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) loadCommunitiesLocked(ctx context.Context) ([]models.Community, error) {
	communities := cloneCommunities(s.fixtures.Communities)
	if err := s.loadLocked(ctx, keyCommunities, "communities", &communities); err != nil {
		return nil, err
	}
	return communities, nil
}

func (s *Store) loadVotesLocked(ctx context.Context) ([]models.Vote, error) {
	votes := []models.Vote{}
	if err := s.loadLocked(ctx, keyVotes, "votes", &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

func clonePosts(in []models.Post) []models.Post {
	out := make([]models.Post, len(in))
	copy(out, in)
	return out
}

func cloneUsers(in []models.User) []models.User {
	out := make([]models.User, len(in))
	copy(out, in)
	return out
}

func cloneCommunities(in []models.Community) []models.Community {
	out := make([]models.Community, len(in))
	copy(out, in)
	return out
}

func cloneComments(in map[string][]models.Comment) map[string][]models.Comment {
	out := make(map[string][]models.Comment, len(in))
	for postID, list := range in {
		cp := make([]models.Comment, len(list))
		copy(cp, list)
		out[postID] = cp
	}
	return out
}

func countOp(collection, op string) {
	observability.StoreOpsTotal.WithLabelValues(collection, op).Inc()
}
