// Package main provides maintenance utilities for an agora store:
// initializing, seeding demo data and running moderation actions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"agora/internal/config"
	"agora/internal/kv"
	"agora/internal/observability"
	"agora/internal/seed"
	"agora/internal/store"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  agora init                                  - Initialize the store with fixture data")
	fmt.Println("  agora seed [-users N] [-posts N]            - Generate demo data")
	fmt.Println("  agora list-users                            - List all users")
	fmt.Println("  agora list-posts                            - List all posts")
	fmt.Println("  agora promote [-as admin] <username>        - Promote a user to admin")
	fmt.Println("  agora demote [-as admin] <username>         - Demote a user to regular user")
	fmt.Println("  agora ban [-as admin] <username>            - Ban a user")
	fmt.Println("  agora unban [-as admin] <username>          - Unban a user")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	backend, err := kv.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store backend: %v", err)
	}

	fixtures := seed.Defaults()
	if cfg.FixturesFile != "" {
		fixtures, err = seed.LoadFile(cfg.FixturesFile)
		if err != nil {
			log.Fatalf("Failed to load fixtures file: %v", err)
		}
	}

	logger := observability.NewLogger()
	st := store.New(backend, fixtures, store.WithLogger(logger))
	defer st.Close()

	ctx := context.Background()
	if err := st.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	switch os.Args[1] {
	case "init":
		fmt.Println("Store initialized")

	case "seed":
		fs := flag.NewFlagSet("seed", flag.ExitOnError)
		numUsers := fs.Int("users", 10, "Number of demo users to create")
		numPosts := fs.Int("posts", 25, "Number of demo posts to create")
		fs.Parse(os.Args[2:])

		g := seed.NewGenerator(st, logger)
		if err := g.Generate(ctx, *numUsers, *numPosts); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		fmt.Printf("Seeded %d users and %d posts\n", *numUsers, *numPosts)

	case "list-users":
		users, err := st.Users(ctx)
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
		for _, u := range users {
			banned := ""
			if u.IsBanned {
				banned = " [banned]"
			}
			fmt.Printf("%-24s %-10s karma=%d%s\n", u.Username, u.Role, u.Karma, banned)
		}

	case "list-posts":
		posts, err := st.Posts(ctx)
		if err != nil {
			log.Fatalf("Failed to list posts: %v", err)
		}
		for _, p := range posts {
			fmt.Printf("%-40q %s/%s ↑%d ↓%d 💬%d\n", p.Title, p.Community, p.Author, p.Upvotes, p.Downvotes, p.CommentsCount)
		}

	case "promote", "demote", "ban", "unban":
		runModeration(ctx, st, os.Args[1], os.Args[2:])

	default:
		usage()
	}
}

func runModeration(ctx context.Context, st *store.Store, action string, args []string) {
	fs := flag.NewFlagSet(action, flag.ExitOnError)
	asUser := fs.String("as", "admin", "Username of the acting admin")
	fs.Parse(args)
	if fs.NArg() < 1 {
		usage()
	}

	actor, err := st.UserByUsername(ctx, *asUser)
	if err != nil || actor == nil {
		log.Fatalf("Acting user %q not found", *asUser)
	}
	target, err := st.UserByUsername(ctx, fs.Arg(0))
	if err != nil || target == nil {
		log.Fatalf("User %q not found", fs.Arg(0))
	}

	switch action {
	case "promote":
		err = st.PromoteToAdmin(ctx, actor.ID, target.ID)
	case "demote":
		err = st.DemoteToUser(ctx, actor.ID, target.ID)
	case "ban":
		err = st.BanUser(ctx, actor.ID, target.ID)
	case "unban":
		err = st.UnbanUser(ctx, actor.ID, target.ID)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", action, err)
	}
	fmt.Printf("%s: %s\n", action, target.Username)
}
