package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"agora/internal/auth"
	"agora/internal/models"
	"agora/internal/store"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Generator creates demo data through the store's public API, so
// everything it writes satisfies the same invariants as live traffic.
type Generator struct {
	store *store.Store
	log   *slog.Logger
	rand  *rand.Rand
}

// NewGenerator returns a Generator bound to the given store.
func NewGenerator(s *store.Store, log *slog.Logger) *Generator {
	gofakeit.Seed(time.Now().UnixNano())
	return &Generator{
		store: s,
		log:   log,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate creates numUsers demo accounts and numPosts posts spread
// across them, each with a handful of comments and votes. All demo
// accounts share the password "password123".
func (g *Generator) Generate(ctx context.Context, numUsers, numPosts int) error {
	// one bcrypt round for the whole batch
	sharedHash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	users := make([]models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := models.User{
			ID:           uuid.NewString(),
			Username:     fmt.Sprintf("%s_%d", gofakeit.Username(), i),
			Email:        gofakeit.Email(),
			Avatar:       auth.DefaultAvatar,
			Role:         models.RoleUser,
			CreatedAt:    time.Now().UnixMilli(),
			Bio:          gofakeit.Sentence(8),
			PasswordHash: sharedHash,
		}
		if err := g.store.AddUser(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.Username, err)
		}
		users = append(users, user)
	}
	g.log.Info("seeded demo users", "count", len(users))

	communities, err := g.store.Communities(ctx)
	if err != nil {
		return err
	}
	if len(communities) == 0 {
		return models.NewValidationError("no communities to post into; initialize the store first")
	}

	posts := make([]models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[g.rand.Intn(len(users))]
		community := communities[g.rand.Intn(len(communities))]
		post := models.Post{
			ID:        uuid.NewString(),
			Title:     gofakeit.Sentence(6),
			Author:    author.Username,
			AuthorID:  author.ID,
			Content:   gofakeit.Paragraph(1, 3, 8, "\n"),
			Timestamp: time.Now().UnixMilli(),
			Community: community.Name,
		}
		if err := g.store.AddPost(ctx, post); err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}
	g.log.Info("seeded demo posts", "count", len(posts))

	var commentCount, voteCount int
	for _, post := range posts {
		for i := g.rand.Intn(4); i > 0; i-- {
			commenter := users[g.rand.Intn(len(users))]
			comment := models.Comment{
				ID:        uuid.NewString(),
				Author:    commenter.Username,
				AuthorID:  commenter.ID,
				Content:   gofakeit.Sentence(12),
				Timestamp: time.Now().UnixMilli(),
			}
			if err := g.store.AddComment(ctx, post.ID, comment); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			commentCount++
		}

		for _, voter := range users {
			if voter.ID == post.AuthorID || g.rand.Intn(3) != 0 {
				continue
			}
			voteType := models.VoteUp
			if g.rand.Intn(5) == 0 {
				voteType = models.VoteDown
			}
			if _, err := g.store.CastVote(ctx, voter.ID, store.PostTarget(post.ID), voteType); err != nil {
				return fmt.Errorf("seed vote: %w", err)
			}
			voteCount++
		}
	}
	g.log.Info("seeded demo activity", "comments", commentCount, "votes", voteCount)
	return nil
}
