package auth

import (
	"context"
	"fmt"

	"github.com/oksasatya/yatter-client/internal/domain"
	domainsvc "github.com/oksasatya/yatter-client/internal/domain/service"
)

const tokenScheme = "username "

// Provider yields the value of the Authentication header.
type Provider interface {
	Provide(ctx context.Context) (string, error)
}

var _ Provider = (*TokenProvider)(nil)

// TokenProvider derives the token from the current session on every call.
type TokenProvider struct {
	GetMe domainsvc.GetMeService
}

func NewTokenProvider(getMe domainsvc.GetMeService) *TokenProvider {
	return &TokenProvider{GetMe: getMe}
}

func (p *TokenProvider) Provide(ctx context.Context) (string, error) {
	me, err := p.GetMe.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve session: %w", err)
	}
	if me == nil {
		return "", domain.ErrAuthentication
	}
	return tokenScheme + me.Username.Value(), nil
}

// ParseToken extracts the username from a header produced by Provide.
func ParseToken(header string) (string, bool) {
	if len(header) <= len(tokenScheme) || header[:len(tokenScheme)] != tokenScheme {
		return "", false
	}
	return header[len(tokenScheme):], true
}
