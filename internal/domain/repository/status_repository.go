package repository

import (
	"context"

	"github.com/oksasatya/yatter-client/internal/domain/entity"
)

const DefaultTimelineLimit = 80

// TimelineQuery filters a timeline fetch. The zero value asks for the newest
// DefaultTimelineLimit statuses.
type TimelineQuery struct {
	OnlyMedia bool
	MaxID     string
	SinceID   string
	Limit     int
}

type StatusRepository interface {
	// FindByID returns nil without error when the status is not on the public timeline.
	FindByID(ctx context.Context, id entity.StatusID) (*entity.Status, error)
	FindAllPublic(ctx context.Context, q TimelineQuery) ([]entity.Status, error)
	FindAllHome(ctx context.Context, q TimelineQuery) ([]entity.Status, error)
	// Create posts content. attachments are local file paths uploaded before the status.
	Create(ctx context.Context, content string, attachments []string) (entity.Status, error)
	Delete(ctx context.Context, status entity.Status) error
}
