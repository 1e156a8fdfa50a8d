// Package container wires the client's components from a Config.
package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/yatter-client/config"
	"github.com/oksasatya/yatter-client/internal/application"
	"github.com/oksasatya/yatter-client/internal/auth"
	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
	domainsvc "github.com/oksasatya/yatter-client/internal/domain/service"
	"github.com/oksasatya/yatter-client/internal/infrastructure/remote"
	infrasvc "github.com/oksasatya/yatter-client/internal/infrastructure/service"
	"github.com/oksasatya/yatter-client/internal/infrastructure/session"
	"github.com/oksasatya/yatter-client/pkg/helpers"
)

// Container holds every client component, built once per process.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Redis  *redis.Client // nil unless SESSION_BACKEND=redis

	Session       repo.SessionStore
	API           *remote.Client
	Accounts      *remote.AccountRepository
	Statuses      *remote.StatusRepository
	Relationships *remote.RelationshipRepository
	Tokens        *auth.TokenProvider

	LoginService        domainsvc.LoginService
	GetMeService        domainsvc.GetMeService
	CheckLoginService   domainsvc.CheckLoginService
	LogoutService       domainsvc.LogoutService
	RelationshipService domainsvc.RelationshipService

	Login           *application.Login
	PostStatus      *application.PostStatus
	RegisterAccount *application.RegisterAccount
}

func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = helpers.Discard()
	}
	c := &Container{Config: cfg, Logger: logger}

	var err error
	c.Session, c.Redis, err = NewSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c.API = remote.NewClient(cfg.APIURL, cfg.HTTPTimeout, logger)

	// The token provider resolves the session through the account
	// repository, which in turn needs tokens for authenticated calls.
	c.Accounts = remote.NewAccountRepository(c.API, c.Session, nil)
	c.GetMeService = infrasvc.NewGetMeService(c.Accounts)
	c.Tokens = auth.NewTokenProvider(c.GetMeService)
	c.Accounts.Tokens = c.Tokens

	c.Statuses = remote.NewStatusRepository(c.API, c.Tokens, logger)
	c.Relationships = remote.NewRelationshipRepository(c.API, c.Tokens)

	c.LoginService = infrasvc.NewLoginService(c.Session, logger)
	c.CheckLoginService = infrasvc.NewCheckLoginService(c.Session)
	c.LogoutService = infrasvc.NewLogoutService(c.Session, logger)
	c.RelationshipService = infrasvc.NewRelationshipService(c.Relationships)

	c.Login = application.NewLogin(c.LoginService, logger)
	c.PostStatus = application.NewPostStatus(c.Statuses, logger)
	c.RegisterAccount = application.NewRegisterAccount(c.Accounts, c.Session, logger)

	logger.WithFields(logrus.Fields{
		"api_url": cfg.APIURL,
		"session": cfg.SessionBackend,
	}).Debug("container ready")
	return c, nil
}

// NewSessionStore opens the backend named by cfg.SessionBackend. The redis
// client is returned so the caller can close it.
func NewSessionStore(ctx context.Context, cfg *config.Config) (repo.SessionStore, *redis.Client, error) {
	switch cfg.SessionBackend {
	case "memory":
		return session.NewMemoryStore(), nil, nil
	case "file", "":
		path := cfg.SessionFile
		if path == "" {
			p, err := session.DefaultSessionPath()
			if err != nil {
				return nil, nil, fmt.Errorf("session file path: %w", err)
			}
			path = p
		}
		return session.NewFileStore(path), nil, nil
	case "redis":
		rdb, err := helpers.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, 3*time.Second)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(rdb, cfg.RedisSessionKey), rdb, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

func (c *Container) Close() error {
	var errs []error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
