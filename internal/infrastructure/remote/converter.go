package remote

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oksasatya/yatter-client/internal/domain/entity"
)

// Converter maps wire records to domain entities. Asset paths are resolved
// against BaseURL + "/v1/".
type Converter struct {
	BaseURL string
}

func NewConverter(baseURL string) Converter {
	return Converter{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (c Converter) assetURL(path string) (*url.URL, error) {
	u, err := url.Parse(c.BaseURL + "/v1/" + path)
	if err != nil {
		return nil, fmt.Errorf("asset url %q: %w", path, err)
	}
	return u, nil
}

func (c Converter) Account(j AccountJSON) (entity.Account, error) {
	avatar, err := c.assetURL(j.Avatar)
	if err != nil {
		return entity.Account{}, err
	}
	header, err := c.assetURL(j.Header)
	if err != nil {
		return entity.Account{}, err
	}
	return entity.Account{
		ID:             entity.NewAccountID(string(j.ID)),
		Username:       entity.NewUsername(j.Username),
		DisplayName:    j.DisplayName,
		Note:           j.Note,
		Avatar:         avatar,
		Header:         header,
		FollowingCount: j.FollowingCount,
		FollowerCount:  j.FollowersCount,
	}, nil
}

func (c Converter) Accounts(js []AccountJSON) ([]entity.Account, error) {
	out := make([]entity.Account, 0, len(js))
	for _, j := range js {
		a, err := c.Account(j)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (c Converter) Me(j AccountJSON) (entity.Me, error) {
	a, err := c.Account(j)
	if err != nil {
		return entity.Me{}, err
	}
	return entity.NewMe(a), nil
}

// Status converts j; a missing content becomes "".
func (c Converter) Status(j StatusJSON) (entity.Status, error) {
	account, err := c.Account(j.Account)
	if err != nil {
		return entity.Status{}, err
	}
	content := ""
	if j.Content != nil {
		content = *j.Content
	}
	return entity.Status{
		ID:          entity.NewStatusID(string(j.ID)),
		Account:     account,
		Content:     content,
		Attachments: MediaList(j.MediaAttachments),
	}, nil
}

func (c Converter) Statuses(js []StatusJSON) ([]entity.Status, error) {
	out := make([]entity.Status, 0, len(js))
	for _, j := range js {
		s, err := c.Status(j)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func Media(j MediaJSON) entity.Media {
	return entity.Media{
		ID:          entity.NewMediaID(string(j.ID)),
		Type:        j.Type,
		URL:         j.URL,
		Description: j.Description,
	}
}

func MediaList(js []MediaJSON) []entity.Media {
	out := make([]entity.Media, 0, len(js))
	for _, j := range js {
		out = append(out, Media(j))
	}
	return out
}

func Relationship(target entity.Username, j RelationshipJSON) entity.Relationship {
	return entity.Relationship{Target: target, Following: j.Following, FollowedBy: j.FollowedBy}
}
