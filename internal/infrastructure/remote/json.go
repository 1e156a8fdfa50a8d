package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexID accepts identifiers sent either as JSON strings or numbers.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) Int() (int, error) { return strconv.Atoi(string(id)) }

type AccountJSON struct {
	ID             FlexID  `json:"id" validate:"required"`
	Username       string  `json:"username" validate:"required"`
	DisplayName    *string `json:"display_name"`
	Note           *string `json:"note"`
	Avatar         string  `json:"avatar"`
	Header         string  `json:"header"`
	FollowingCount int     `json:"following_count" validate:"gte=0"`
	FollowersCount int     `json:"followers_count" validate:"gte=0"`
	CreateAt       string  `json:"create_at"`
}

type StatusJSON struct {
	ID               FlexID      `json:"id" validate:"required"`
	Account          AccountJSON `json:"account"`
	Content          *string     `json:"content"`
	CreateAt         string      `json:"create_at"`
	MediaAttachments []MediaJSON `json:"media_attachments" validate:"dive"`
}

type MediaJSON struct {
	ID          FlexID `json:"id" validate:"required"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type RelationshipJSON struct {
	ID         FlexID `json:"id"`
	Username   string `json:"username,omitempty"`
	Following  bool   `json:"following"`
	FollowedBy bool   `json:"followed_by"`
}

type CreateAccountJSON struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type PostStatusJSON struct {
	Status   string `json:"status"`
	MediaIDs []int  `json:"media_ids"`
}

type UpdateCredentialsJSON struct {
	DisplayName *string `json:"display_name,omitempty"`
	Note        *string `json:"note,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	Header      *string `json:"header,omitempty"`
}
