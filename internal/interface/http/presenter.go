package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/yatter-client/internal/infrastructure/sqlite"
	"github.com/oksasatya/yatter-client/pkg/response"
)

type accountJSON struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	DisplayName    *string `json:"display_name"`
	Note           *string `json:"note"`
	Avatar         string  `json:"avatar"`
	Header         string  `json:"header"`
	FollowingCount int     `json:"following_count"`
	FollowersCount int     `json:"followers_count"`
	CreateAt       string  `json:"create_at"`
}

type mediaJSON struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type statusJSON struct {
	ID               string      `json:"id"`
	Account          accountJSON `json:"account"`
	Content          *string     `json:"content"`
	CreateAt         string      `json:"create_at"`
	MediaAttachments []mediaJSON `json:"media_attachments"`
}

type relationshipJSON struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Following  bool   `json:"following"`
	FollowedBy bool   `json:"followed_by"`
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func presentAccount(ctx context.Context, store *sqlite.Store, a sqlite.Account) (accountJSON, error) {
	following, followers, err := store.Counts(ctx, a.Username)
	if err != nil {
		return accountJSON{}, err
	}
	return accountJSON{
		ID:             sqlite.FormatID(a.ID),
		Username:       a.Username,
		DisplayName:    a.DisplayName,
		Note:           a.Note,
		Avatar:         a.Avatar,
		Header:         a.Header,
		FollowingCount: following,
		FollowersCount: followers,
		CreateAt:       a.CreatedAt.UTC().Format(timeLayout),
	}, nil
}

func presentAccounts(ctx context.Context, store *sqlite.Store, as []sqlite.Account) ([]accountJSON, error) {
	out := make([]accountJSON, 0, len(as))
	for _, a := range as {
		j, err := presentAccount(ctx, store, a)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}

// mediaPath is relative to the /v1/ root, like avatar and header paths.
func mediaPath(id int64) string { return "media/files/" + sqlite.FormatID(id) }

func presentMedia(c *gin.Context, m sqlite.Media) mediaJSON {
	return mediaJSON{
		ID:          sqlite.FormatID(m.ID),
		Type:        m.Type,
		URL:         baseURL(c) + "/v1/" + mediaPath(m.ID),
		Description: m.Description,
	}
}

func presentStatus(c *gin.Context, store *sqlite.Store, st sqlite.Status) (statusJSON, error) {
	ctx := c.Request.Context()
	author, err := store.Account(ctx, st.Author)
	if err != nil {
		return statusJSON{}, err
	}
	account, err := presentAccount(ctx, store, author)
	if err != nil {
		return statusJSON{}, err
	}
	media := make([]mediaJSON, 0, len(st.MediaIDs))
	for _, id := range st.MediaIDs {
		m, err := store.Media(ctx, id)
		if err != nil {
			return statusJSON{}, err
		}
		media = append(media, presentMedia(c, m))
	}
	return statusJSON{
		ID:               sqlite.FormatID(st.ID),
		Account:          account,
		Content:          st.Content,
		CreateAt:         st.CreatedAt.UTC().Format(timeLayout),
		MediaAttachments: media,
	}, nil
}

func presentStatuses(c *gin.Context, store *sqlite.Store, ss []sqlite.Status) ([]statusJSON, error) {
	out := make([]statusJSON, 0, len(ss))
	for _, st := range ss {
		j, err := presentStatus(c, store, st)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

// storeError maps store errors onto HTTP statuses.
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sqlite.ErrAccountNotFound),
		errors.Is(err, sqlite.ErrStatusNotFound),
		errors.Is(err, sqlite.ErrMediaNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, sqlite.ErrAccountExists):
		response.Error(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, sqlite.ErrForbidden):
		response.Error(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, sqlite.ErrSelfFollow):
		response.Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}
