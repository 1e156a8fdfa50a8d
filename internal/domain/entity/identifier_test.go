package entity

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestIdentifierEquality(t *testing.T) {
	assert.True(t, NewIdentifier("a").Equal(NewIdentifier("a")))
	assert.False(t, NewIdentifier("a").Equal(NewIdentifier("b")))
	assert.Equal(t, NewUsername("alice"), NewUsername("alice"))
	assert.True(t, NewAccountID("1") == NewAccountID("1"))

	m := map[Username]int{NewUsername("alice"): 1}
	assert.Equal(t, 1, m[NewUsername("alice")])
}

func TestAccountEqualityIsByIdentity(t *testing.T) {
	a := Account{ID: NewAccountID("1"), Username: NewUsername("alice"), FollowerCount: 3}
	b := Account{ID: NewAccountID("1"), Username: NewUsername("alice"), DisplayName: ptr("Alice"), FollowerCount: 4}
	c := Account{ID: NewAccountID("2"), Username: NewUsername("alice")}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, SameIdentity[AccountID](a, b))
}

func TestNewMeCopiesAccount(t *testing.T) {
	avatar, _ := url.Parse("https://example.com/v1/a.png")
	a := Account{
		ID:             NewAccountID("1"),
		Username:       NewUsername("alice"),
		DisplayName:    ptr("Alice"),
		Avatar:         avatar,
		FollowingCount: 2,
		FollowerCount:  5,
	}
	me := NewMe(a)

	assert.Equal(t, a, me.Account)
	assert.True(t, me.Equal(NewMe(Account{ID: NewAccountID("1")})))
	assert.True(t, SameIdentity[AccountID](me, a))
}

func TestDisplayNameOrEmpty(t *testing.T) {
	assert.Equal(t, "", Account{}.DisplayNameOrEmpty())
	assert.Equal(t, "Bob", Account{DisplayName: ptr("Bob")}.DisplayNameOrEmpty())
}

func TestStatusAndMediaEquality(t *testing.T) {
	s1 := Status{ID: NewStatusID("10"), Content: "a"}
	s2 := Status{ID: NewStatusID("10"), Content: "b"}
	assert.True(t, s1.Equal(s2))

	m1 := Media{ID: NewMediaID("x"), URL: "u1"}
	m2 := Media{ID: NewMediaID("y"), URL: "u1"}
	assert.False(t, m1.Equal(m2))
}
