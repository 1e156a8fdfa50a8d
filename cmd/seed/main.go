package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/yatter-client/config"
	"github.com/oksasatya/yatter-client/internal/container"
	"github.com/oksasatya/yatter-client/internal/domain/entity"
	"github.com/oksasatya/yatter-client/pkg/helpers"
)

// Seeds a running API with demo accounts, statuses and follows, going through
// the same use cases as the client. The session is kept in memory so the
// user's own login is left alone.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	cfg.SessionBackend = "memory"
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer func() { _ = c.Close() }()

	password := entity.NewPassword("Password1%")
	users := []struct {
		name  string
		posts []string
	}{
		{"demoUser", []string{"hello yatter", "second post"}},
		{"alice", []string{"alice was here"}},
		{"bob", nil},
	}

	for _, u := range users {
		username := entity.NewUsername(u.name)
		if res := c.RegisterAccount.Execute(ctx, username, password); !res.Succeeded() {
			// Servers that reject an existing name still accept a login.
			logger.WithField("username", u.name).WithField("result", res.String()).Info("register skipped")
			if res := c.Login.Execute(ctx, username, password); !res.Succeeded() {
				log.Fatalf("login %s: %s", u.name, res)
			}
		}
		for _, text := range u.posts {
			if res := c.PostStatus.Execute(ctx, text, nil); !res.Succeeded() {
				log.Fatalf("post as %s: %s", u.name, res)
			}
		}
		fmt.Printf("seeded user: username=%s password=%s posts=%d\n", u.name, password.Value(), len(u.posts))
	}

	// bob follows everybody else
	me, err := c.GetMeService.Execute(ctx)
	if err != nil || me == nil {
		log.Fatalf("resolve bob: %v", err)
	}
	for _, u := range users[:2] {
		rel, err := c.RelationshipService.Follow(ctx, *me, entity.NewUsername(u.name))
		if err != nil {
			log.Fatalf("follow %s: %v", u.name, err)
		}
		fmt.Printf("bob follows %s (followed_by=%t)\n", rel.Target.Value(), rel.FollowedBy)
	}
}
