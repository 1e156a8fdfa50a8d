package service

import (
	"context"
	"errors"

	"github.com/oksasatya/yatter-client/internal/domain"
	"github.com/oksasatya/yatter-client/internal/domain/entity"
	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
	domainsvc "github.com/oksasatya/yatter-client/internal/domain/service"
)

var _ domainsvc.RelationshipService = (*RelationshipService)(nil)

var ErrSelfRelationship = errors.New("cannot follow or unfollow yourself")

// RelationshipService takes a Me so only the session owner can follow.
type RelationshipService struct {
	Relationships repo.RelationshipRepository
}

func NewRelationshipService(r repo.RelationshipRepository) *RelationshipService {
	return &RelationshipService{Relationships: r}
}

func (s *RelationshipService) Follow(ctx context.Context, me entity.Me, target entity.Username) (entity.Relationship, error) {
	if err := checkTarget(me, target); err != nil {
		return entity.Relationship{}, err
	}
	return s.Relationships.Follow(ctx, target)
}

func (s *RelationshipService) Unfollow(ctx context.Context, me entity.Me, target entity.Username) (entity.Relationship, error) {
	if err := checkTarget(me, target); err != nil {
		return entity.Relationship{}, err
	}
	return s.Relationships.Unfollow(ctx, target)
}

func (s *RelationshipService) Check(ctx context.Context, _ entity.Me, targets []entity.Username) ([]entity.Relationship, error) {
	if len(targets) == 0 {
		return []entity.Relationship{}, nil
	}
	return s.Relationships.Relationships(ctx, targets)
}

func checkTarget(me entity.Me, target entity.Username) error {
	if !target.Validate() {
		return domain.NewValidationError("username", "must not be blank")
	}
	if me.Username == target {
		return ErrSelfRelationship
	}
	return nil
}
