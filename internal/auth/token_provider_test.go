package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/yatter-client/internal/domain"
	"github.com/oksasatya/yatter-client/internal/domain/entity"
	"github.com/oksasatya/yatter-client/internal/mocks"
)

func meNamed(name string) *entity.Me {
	me := entity.NewMe(entity.Account{ID: entity.NewAccountID("1"), Username: entity.NewUsername(name)})
	return &me
}

func TestProvide_ReturnsUsernameToken(t *testing.T) {
	getMe := new(mocks.GetMeService)
	getMe.On("Execute", mock.Anything).Return(meNamed("alice"), nil)

	token, err := NewTokenProvider(getMe).Provide(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "username alice", token)
	getMe.AssertExpectations(t)
}

func TestProvide_NoSessionIsAuthenticationError(t *testing.T) {
	getMe := new(mocks.GetMeService)
	getMe.On("Execute", mock.Anything).Return(nil, nil)

	_, err := NewTokenProvider(getMe).Provide(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestProvide_PropagatesLookupFailure(t *testing.T) {
	boom := errors.New("boom")
	getMe := new(mocks.GetMeService)
	getMe.On("Execute", mock.Anything).Return(nil, boom)

	_, err := NewTokenProvider(getMe).Provide(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrAuthentication)
}

func TestProvide_RederivesOnEveryCall(t *testing.T) {
	getMe := new(mocks.GetMeService)
	getMe.On("Execute", mock.Anything).Return(meNamed("alice"), nil).Once()
	getMe.On("Execute", mock.Anything).Return(meNamed("bob"), nil).Once()
	p := NewTokenProvider(getMe)

	first, err := p.Provide(context.Background())
	require.NoError(t, err)
	second, err := p.Provide(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "username alice", first)
	assert.Equal(t, "username bob", second)
	getMe.AssertNumberOfCalls(t, "Execute", 2)
}

func TestParseToken(t *testing.T) {
	name, ok := ParseToken("username alice")
	assert.True(t, ok)
	assert.Equal(t, "alice", name)

	_, ok = ParseToken("username ")
	assert.False(t, ok)
	_, ok = ParseToken("Bearer xyz")
	assert.False(t, ok)
}
