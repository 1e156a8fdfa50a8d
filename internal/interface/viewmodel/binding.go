package viewmodel

import "github.com/oksasatya/yatter-client/internal/domain/entity"

type StatusBindingModel struct {
	ID                  string
	DisplayName         string
	Username            string
	Avatar              string
	Content             string
	AttachmentMediaList []MediaBindingModel
}

type MediaBindingModel struct {
	ID          string
	Type        string
	URL         string
	Description string
}

func ConvertStatuses(statuses []entity.Status) []StatusBindingModel {
	out := make([]StatusBindingModel, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, ConvertStatus(s))
	}
	return out
}

func ConvertStatus(s entity.Status) StatusBindingModel {
	var avatar string
	if s.Account.Avatar != nil {
		avatar = s.Account.Avatar.String()
	}
	return StatusBindingModel{
		ID:                  s.ID.Value(),
		DisplayName:         s.Account.DisplayNameOrEmpty(),
		Username:            s.Account.Username.Value(),
		Avatar:              avatar,
		Content:             s.Content,
		AttachmentMediaList: ConvertMediaList(s.Attachments),
	}
}

func ConvertMediaList(media []entity.Media) []MediaBindingModel {
	out := make([]MediaBindingModel, 0, len(media))
	for _, m := range media {
		out = append(out, ConvertMedia(m))
	}
	return out
}

func ConvertMedia(m entity.Media) MediaBindingModel {
	return MediaBindingModel{ID: m.ID.Value(), Type: m.Type, URL: m.URL, Description: m.Description}
}
