package entity

import "net/url"

// Account is a remote user profile. Its followings and followers are not
// embedded; they are fetched through repository.RelationshipRepository.
type Account struct {
	ID             AccountID
	Username       Username
	DisplayName    *string
	Note           *string
	Avatar         *url.URL
	Header         *url.URL
	FollowingCount int
	FollowerCount  int
}

func (a Account) Identity() AccountID { return a.ID }

func (a Account) Equal(other Account) bool { return a.ID == other.ID }

// DisplayNameOrEmpty returns the display name, or "" when the account has none.
func (a Account) DisplayNameOrEmpty() string {
	if a.DisplayName == nil {
		return ""
	}
	return *a.DisplayName
}

// Me is the account of the logged-in user.
type Me struct {
	Account
}

// NewMe copies a into a Me. There is no other way to obtain one.
func NewMe(a Account) Me { return Me{Account: a} }

func (m Me) Equal(other Me) bool { return m.ID == other.ID }
