package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) *string { return &s }

func seeded(t *testing.T, names ...string) *Store {
	t.Helper()
	s, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	s.PasswordCost = 4
	for _, n := range names {
		_, err := s.CreateAccount(context.Background(), n, "Password1%")
		require.NoError(t, err)
	}
	return s
}

func ids(ss []Status) []int64 {
	out := []int64{}
	for _, st := range ss {
		out = append(out, st.ID)
	}
	return out
}

func TestRunMigrations_Idempotent(t *testing.T) {
	s := seeded(t)
	require.NoError(t, RunMigrations(s.DB))

	var n int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpen_FileKeepsData(t *testing.T) {
	ctx := context.Background()
	dsn := FileDSN(filepath.Join(t.TempDir(), "dev.db"))

	s, err := Open(dsn)
	require.NoError(t, err)
	s.PasswordCost = 4
	_, err = s.CreateAccount(ctx, "alice", "Password1%")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dsn)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	a, err := s.Account(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.Username)
}

func TestOpenMemory_Private(t *testing.T) {
	a := seeded(t, "alice")
	b := seeded(t)

	_, err := a.Account(context.Background(), "alice")
	require.NoError(t, err)
	_, err = b.Account(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	s := seeded(t)
	a, err := s.CreateAccount(ctx, "alice", "Password1%")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1%", a.PasswordHash)

	again, err := s.CreateAccount(ctx, "alice", "Password1%")
	require.NoError(t, err)
	assert.Equal(t, a.ID, again.ID)

	_, err = s.CreateAccount(ctx, "alice", "Other1%pass")
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	s := seeded(t, "alice")
	a, err := s.UpdateAccount(ctx, "alice", AccountUpdate{DisplayName: text("Alice"), Avatar: text("media/1.png")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", *a.DisplayName)
	assert.Equal(t, "media/1.png", a.Avatar)
	assert.Nil(t, a.Note)

	a, err = s.UpdateAccount(ctx, "alice", AccountUpdate{Note: text("hi")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", *a.DisplayName)
	assert.Equal(t, "hi", *a.Note)

	_, err = s.UpdateAccount(ctx, "nobody", AccountUpdate{})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestTimelines(t *testing.T) {
	ctx := context.Background()
	s := seeded(t, "alice", "bob", "carol")
	a1, err := s.CreateStatus(ctx, "alice", text("a1"), nil)
	require.NoError(t, err)
	b1, err := s.CreateStatus(ctx, "bob", text("b1"), nil)
	require.NoError(t, err)
	c1, err := s.CreateStatus(ctx, "carol", text("c1"), nil)
	require.NoError(t, err)
	m, err := s.AddMedia(ctx, "alice", Media{Type: "image", Filename: "x.png"})
	require.NoError(t, err)
	a2, err := s.CreateStatus(ctx, "alice", nil, []int64{m.ID})
	require.NoError(t, err)

	cases := []struct {
		name   string
		filter TimelineFilter
		want   []int64
	}{
		{"all newest first", TimelineFilter{}, []int64{a2.ID, c1.ID, b1.ID, a1.ID}},
		{"limit", TimelineFilter{Limit: 2}, []int64{a2.ID, c1.ID}},
		{"max_id exclusive", TimelineFilter{MaxID: c1.ID}, []int64{b1.ID, a1.ID}},
		{"since_id exclusive", TimelineFilter{SinceID: b1.ID}, []int64{a2.ID, c1.ID}},
		{"window", TimelineFilter{MaxID: a2.ID, SinceID: a1.ID}, []int64{c1.ID, b1.ID}},
		{"only media", TimelineFilter{OnlyMedia: true}, []int64{a2.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.PublicTimeline(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}

	got, err := s.PublicTimeline(ctx, TimelineFilter{OnlyMedia: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []int64{m.ID}, got[0].MediaIDs)
	assert.Nil(t, got[0].Content)
	assert.Equal(t, "alice", got[0].Author)

	require.NoError(t, s.Follow(ctx, "alice", "bob"))
	home, err := s.HomeTimeline(ctx, "alice", TimelineFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{a2.ID, b1.ID, a1.ID}, ids(home))

	_, err = s.HomeTimeline(ctx, "nobody", TimelineFilter{})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCreateStatus_MediaOwnership(t *testing.T) {
	ctx := context.Background()
	s := seeded(t, "alice", "bob")
	m, err := s.AddMedia(ctx, "bob", Media{Type: "image"})
	require.NoError(t, err)

	_, err = s.CreateStatus(ctx, "alice", text("x"), []int64{m.ID})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = s.CreateStatus(ctx, "alice", text("x"), []int64{999})
	assert.ErrorIs(t, err, ErrMediaNotFound)

	all, err := s.PublicTimeline(ctx, TimelineFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMedia(t *testing.T) {
	ctx := context.Background()
	s := seeded(t, "alice")
	m, err := s.AddMedia(ctx, "alice", Media{Type: "image", Filename: "a.png", ContentType: "image/png", Data: []byte{1, 2, 3}})
	require.NoError(t, err)

	got, err := s.Media(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Owner)
	assert.Equal(t, []byte{1, 2, 3}, got.Data)

	_, err = s.Media(ctx, m.ID+1)
	assert.ErrorIs(t, err, ErrMediaNotFound)
	_, err = s.AddMedia(ctx, "nobody", Media{})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestDeleteStatus(t *testing.T) {
	ctx := context.Background()
	s := seeded(t, "alice", "bob")
	st, err := s.CreateStatus(ctx, "alice", text("x"), nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteStatus(ctx, "bob", st.ID), ErrForbidden)
	require.NoError(t, s.DeleteStatus(ctx, "alice", st.ID))
	assert.ErrorIs(t, s.DeleteStatus(ctx, "alice", st.ID), ErrStatusNotFound)
	_, err = s.Status(ctx, st.ID)
	assert.ErrorIs(t, err, ErrStatusNotFound)
}

func TestFollowGraph(t *testing.T) {
	ctx := context.Background()
	s := seeded(t, "alice", "bob", "carol")
	require.NoError(t, s.Follow(ctx, "alice", "bob"))
	require.NoError(t, s.Follow(ctx, "alice", "bob"))
	require.NoError(t, s.Follow(ctx, "carol", "bob"))
	require.NoError(t, s.Follow(ctx, "bob", "alice"))
	assert.ErrorIs(t, s.Follow(ctx, "alice", "alice"), ErrSelfFollow)
	assert.ErrorIs(t, s.Follow(ctx, "alice", "zed"), ErrAccountNotFound)

	following, followedBy, err := s.Relationship(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, following)
	assert.True(t, followedBy)

	followers, err := s.Followers(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "alice", followers[0].Username)
	assert.Equal(t, "carol", followers[1].Username)

	fing, ffers, err := s.Counts(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, fing)
	assert.Equal(t, 2, ffers)

	require.NoError(t, s.Unfollow(ctx, "alice", "bob"))
	following, _, err = s.Relationship(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, following)

	_, _, err = s.Counts(ctx, "zed")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
