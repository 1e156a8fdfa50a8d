package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oksasatya/yatter-client/internal/domain"
	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
)

func timelineQuery(q repo.TimelineQuery) url.Values {
	v := url.Values{}
	v.Set("only_media", strconv.FormatBool(q.OnlyMedia))
	if q.MaxID != "" {
		v.Set("max_id", q.MaxID)
	}
	if q.SinceID != "" {
		v.Set("since_id", q.SinceID)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = repo.DefaultTimelineLimit
	}
	v.Set("limit", strconv.Itoa(limit))
	return v
}

func (c *Client) GetHomeTimeline(ctx context.Context, token string, q repo.TimelineQuery) ([]StatusJSON, error) {
	var out []StatusJSON
	err := c.do(ctx, call{op: "get home timeline", method: http.MethodGet, path: "timelines/home", query: timelineQuery(q), token: token}, &out)
	return out, err
}

func (c *Client) GetPublicTimeline(ctx context.Context, q repo.TimelineQuery) ([]StatusJSON, error) {
	var out []StatusJSON
	err := c.do(ctx, call{op: "get public timeline", method: http.MethodGet, path: "timelines/public", query: timelineQuery(q)}, &out)
	return out, err
}

func (c *Client) CreateAccount(ctx context.Context, in CreateAccountJSON) (AccountJSON, error) {
	var out AccountJSON
	cl, err := c.jsonCall("create account", http.MethodPost, "accounts", "", in)
	if err != nil {
		return out, err
	}
	err = c.do(ctx, cl, &out)
	return out, err
}

func (c *Client) GetAccount(ctx context.Context, username string) (AccountJSON, error) {
	var out AccountJSON
	err := c.do(ctx, call{op: "get account", method: http.MethodGet, path: "accounts/" + url.PathEscape(username)}, &out)
	return out, err
}

func (c *Client) UpdateCredentials(ctx context.Context, token string, in UpdateCredentialsJSON) (AccountJSON, error) {
	var out AccountJSON
	cl, err := c.jsonCall("update credentials", http.MethodPost, "accounts/update_credentials", token, in)
	if err != nil {
		return out, err
	}
	err = c.do(ctx, cl, &out)
	return out, err
}

func (c *Client) PostStatus(ctx context.Context, token string, in PostStatusJSON) (StatusJSON, error) {
	var out StatusJSON
	if in.MediaIDs == nil {
		in.MediaIDs = []int{}
	}
	cl, err := c.jsonCall("post status", http.MethodPost, "statuses", token, in)
	if err != nil {
		return out, err
	}
	err = c.do(ctx, cl, &out)
	return out, err
}

func (c *Client) DeleteStatus(ctx context.Context, token, id string) error {
	return c.do(ctx, call{op: "delete status", method: http.MethodDelete, path: "statuses/" + url.PathEscape(id), token: token}, nil)
}

// UploadMedia sends the file at path as multipart field "file".
func (c *Client) UploadMedia(ctx context.Context, token, path, description string) (MediaJSON, error) {
	const op = "upload media"
	var out MediaJSON

	f, err := os.Open(path)
	if err != nil {
		return out, &domain.RemoteError{Op: op, Err: err}
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return out, &domain.RemoteError{Op: op, Err: err}
	}
	if _, err := io.Copy(part, f); err != nil {
		return out, &domain.RemoteError{Op: op, Err: fmt.Errorf("read %s: %w", path, err)}
	}
	if description != "" {
		_ = mw.WriteField("description", description)
	}
	if err := mw.Close(); err != nil {
		return out, &domain.RemoteError{Op: op, Err: err}
	}

	err = c.do(ctx, call{op: op, method: http.MethodPost, path: "media", token: token, body: &buf, contentType: mw.FormDataContentType()}, &out)
	return out, err
}

func (c *Client) Follow(ctx context.Context, token, username string) (RelationshipJSON, error) {
	var out RelationshipJSON
	err := c.do(ctx, call{op: "follow", method: http.MethodPost, path: "accounts/" + url.PathEscape(username) + "/follow", token: token}, &out)
	return out, err
}

func (c *Client) Unfollow(ctx context.Context, token, username string) (RelationshipJSON, error) {
	var out RelationshipJSON
	err := c.do(ctx, call{op: "unfollow", method: http.MethodPost, path: "accounts/" + url.PathEscape(username) + "/unfollow", token: token}, &out)
	return out, err
}

func (c *Client) Following(ctx context.Context, username string) ([]AccountJSON, error) {
	var out []AccountJSON
	err := c.do(ctx, call{op: "get following", method: http.MethodGet, path: "accounts/" + url.PathEscape(username) + "/following"}, &out)
	return out, err
}

func (c *Client) Followers(ctx context.Context, username string) ([]AccountJSON, error) {
	var out []AccountJSON
	err := c.do(ctx, call{op: "get followers", method: http.MethodGet, path: "accounts/" + url.PathEscape(username) + "/followers"}, &out)
	return out, err
}

func (c *Client) Relationships(ctx context.Context, token string, usernames []string) ([]RelationshipJSON, error) {
	var out []RelationshipJSON
	q := url.Values{}
	q.Set("username", strings.Join(usernames, ","))
	err := c.do(ctx, call{op: "get relationships", method: http.MethodGet, path: "accounts/relationships", query: q, token: token}, &out)
	return out, err
}
