package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/yatter-client/internal/domain"
	"github.com/oksasatya/yatter-client/internal/domain/entity"
	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
	"github.com/oksasatya/yatter-client/internal/infrastructure/session"
	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
	"github.com/oksasatya/yatter-client/internal/router"
	"github.com/oksasatya/yatter-client/pkg/helpers"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

type staticToken struct {
	token string
	err   error
}

func (s staticToken) Provide(context.Context) (string, error) { return s.token, s.err }

type fixture struct {
	store    *sqlite.Store
	client   *Client
	session  *session.MemoryStore
	accounts *AccountRepository
	statuses *StatusRepository
	follows  *RelationshipRepository
}

func newFixture(t *testing.T, token string) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := newStore(t)
	srv := httptest.NewServer(router.New(store, router.Options{Logger: helpers.Discard()}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, 5*time.Second, helpers.Discard())
	sess := session.NewMemoryStore()
	tokens := staticToken{token: token}
	if token == "" {
		tokens.err = domain.ErrAuthentication
	}
	return &fixture{
		store:    store,
		client:   client,
		session:  sess,
		accounts: NewAccountRepository(client, sess, tokens),
		statuses: NewStatusRepository(client, tokens, helpers.Discard()),
		follows:  NewRelationshipRepository(client, tokens),
	}
}

func (f *fixture) account(t *testing.T, name string) {
	t.Helper()
	_, err := f.store.CreateAccount(context.Background(), name, "Password1%")
	require.NoError(t, err)
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()

	me, err := f.accounts.Create(ctx, entity.NewUsername("alice"), entity.NewPassword("Password1%"))
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username.Value())
	assert.Equal(t, f.client.BaseURL+"/v1/", me.Avatar.String())

	got, err := f.accounts.FindByUsername(ctx, entity.NewUsername("alice"))
	require.NoError(t, err)
	assert.True(t, got.Equal(me.Account))

	_, err = f.accounts.Create(ctx, entity.NewUsername("alice"), entity.NewPassword("Different1%"))
	var remoteErr *domain.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusConflict, remoteErr.StatusCode)
	assert.Equal(t, "account already exists", remoteErr.Message)
}

func TestAccountRepository_FindMissing(t *testing.T) {
	f := newFixture(t, "")
	_, err := f.accounts.FindByUsername(context.Background(), entity.NewUsername("ghost"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountRepository_FindMe(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	f.account(t, "alice")

	me, err := f.accounts.FindMe(ctx)
	require.NoError(t, err)
	assert.Nil(t, me, "no stored username")

	require.NoError(t, f.session.PutUsername(ctx, ""))
	me, err = f.accounts.FindMe(ctx)
	require.NoError(t, err)
	assert.Nil(t, me, "empty stored username")

	require.NoError(t, f.session.PutUsername(ctx, "alice"))
	me, err = f.accounts.FindMe(ctx)
	require.NoError(t, err)
	require.NotNil(t, me)
	assert.Equal(t, "alice", me.Username.Value())
}

func TestAccountRepository_Update(t *testing.T) {
	f := newFixture(t, "username alice")
	ctx := context.Background()
	f.account(t, "alice")
	alice, err := f.accounts.FindByUsername(ctx, entity.NewUsername("alice"))
	require.NoError(t, err)

	name := "Alice"
	me, err := f.accounts.Update(ctx, entity.NewMe(alice), repo.UpdateAccountInput{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice", me.DisplayNameOrEmpty())
}

func TestStatusRepository_Timelines(t *testing.T) {
	f := newFixture(t, "username alice")
	ctx := context.Background()
	f.account(t, "alice")
	f.account(t, "bob")
	f.account(t, "carol")
	require.NoError(t, f.store.Follow(context.Background(), "alice", "bob"))
	hello := "hello"
	_, _ = f.store.CreateStatus(context.Background(), "bob", &hello, nil)
	_, _ = f.store.CreateStatus(context.Background(), "carol", nil, nil)

	public, err := f.statuses.FindAllPublic(ctx, repo.TimelineQuery{})
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, "", public[0].Content, "null content defaults to empty")
	assert.Equal(t, "carol", public[0].Account.Username.Value())

	home, err := f.statuses.FindAllHome(ctx, repo.TimelineQuery{})
	require.NoError(t, err)
	require.Len(t, home, 1)
	assert.Equal(t, "hello", home[0].Content)

	limited, err := f.statuses.FindAllPublic(ctx, repo.TimelineQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	found, err := f.statuses.FindByID(ctx, home[0].ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Equal(home[0]))

	missing, err := f.statuses.FindByID(ctx, entity.NewStatusID("999"))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStatusRepository_HomeWithoutSession(t *testing.T) {
	f := newFixture(t, "")
	_, err := f.statuses.FindAllHome(context.Background(), repo.TimelineQuery{})
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestStatusRepository_UnknownAccountTokenIsAuthenticationError(t *testing.T) {
	f := newFixture(t, "username ghost")
	_, err := f.statuses.Create(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestStatusRepository_CreateWithAttachmentAndDelete(t *testing.T) {
	f := newFixture(t, "username alice")
	ctx := context.Background()
	f.account(t, "alice")

	img := filepath.Join(t.TempDir(), "dot.png")
	png := []byte("\x89PNG\r\n\x1a\n0000")
	require.NoError(t, os.WriteFile(img, png, 0o600))

	st, err := f.statuses.Create(ctx, "", []string{img})
	require.NoError(t, err)
	assert.Equal(t, "", st.Content)
	require.Len(t, st.Attachments, 1)
	assert.Equal(t, "image", st.Attachments[0].Type)

	resp, err := http.Get(st.Attachments[0].URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, f.statuses.Delete(ctx, st))
	err = f.statuses.Delete(ctx, st)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatusRepository_MissingAttachment(t *testing.T) {
	f := newFixture(t, "username alice")
	f.account(t, "alice")
	_, err := f.statuses.Create(context.Background(), "x", []string{filepath.Join(t.TempDir(), "nope.png")})
	var remoteErr *domain.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "upload media", remoteErr.Op)
}

func TestRelationshipRepository(t *testing.T) {
	f := newFixture(t, "username alice")
	ctx := context.Background()
	f.account(t, "alice")
	f.account(t, "bob")
	require.NoError(t, f.store.Follow(context.Background(), "bob", "alice"))

	rel, err := f.follows.Follow(ctx, entity.NewUsername("bob"))
	require.NoError(t, err)
	assert.Equal(t, entity.Relationship{Target: entity.NewUsername("bob"), Following: true, FollowedBy: true}, rel)

	followers, err := f.follows.Followers(ctx, entity.NewUsername("bob"))
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username.Value())

	followings, err := f.follows.Followings(ctx, entity.NewUsername("alice"))
	require.NoError(t, err)
	require.Len(t, followings, 1)
	assert.Equal(t, 1, followings[0].FollowerCount)

	rels, err := f.follows.Relationships(ctx, []entity.Username{entity.NewUsername("ghost"), entity.NewUsername("bob")})
	require.NoError(t, err)
	require.Len(t, rels, 2)
	assert.False(t, rels[0].Following)
	assert.True(t, rels[1].Following)

	rel, err = f.follows.Unfollow(ctx, entity.NewUsername("bob"))
	require.NoError(t, err)
	assert.False(t, rel.Following)
	assert.True(t, rel.FollowedBy)
}
