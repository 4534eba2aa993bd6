package services

import (
	"context"

	"churchhub/internal/adapters/persistence/repositories"
	"churchhub/internal/core/domain"
	"churchhub/internal/core/domain/church"
	"churchhub/internal/pkg/logger"
	"churchhub/internal/pkg/pagination"
)

// ChurchService runs the church lifecycle against storage
type ChurchService struct {
	churchRepo repositories.ChurchRepository
	log        *logger.Logger
}

// NewChurchService creates a new church service
func NewChurchService(churchRepo repositories.ChurchRepository, log *logger.Logger) *ChurchService {
	return &ChurchService{
		churchRepo: churchRepo,
		log:        log.With("service", "church"),
	}
}

// ProfileInput represents the editable contact fields of a church
type ProfileInput struct {
	Email      string `json:"email"`
	PostalCode string `json:"postalCode"`
}

// Create registers a draft church owned by the actor
func (s *ChurchService) Create(ctx context.Context, actor Actor, name string) (church.Draft, error) {
	draft, err := church.Create(name, actor.UserID)
	if err != nil {
		return church.Draft{}, err
	}
	if err := s.churchRepo.Save(ctx, draft); err != nil {
		return church.Draft{}, err
	}

	s.log.Info("church created", "churchId", draft.ID().String(), "adminUserId", actor.UserID)
	return draft, nil
}

// Get returns a church. Drafts are only visible to the people who manage them.
func (s *ChurchService) Get(ctx context.Context, actor Actor, rawID string) (church.Church, error) {
	c, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if !church.IsPublic(c) && !actor.canManage(c) {
		return nil, domain.NewNotFoundError("Church", rawID)
	}
	return c, nil
}

// GetBySlug returns a published or verified church by its slug
func (s *ChurchService) GetBySlug(ctx context.Context, slug string) (church.Church, error) {
	c, err := s.churchRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if c == nil || !church.IsPublic(c) {
		return nil, domain.NewNotFoundError("Church", slug)
	}
	return c, nil
}

// ListPublic lists published and verified churches
func (s *ChurchService) ListPublic(ctx context.Context, params *pagination.Params) ([]church.Church, int64, error) {
	return s.churchRepo.ListPublic(ctx, params.Offset, params.Limit)
}

// Publish moves a draft church to Published under a freshly generated slug
func (s *ChurchService) Publish(ctx context.Context, actor Actor, rawID string) (church.Published, error) {
	current, err := s.load(ctx, rawID)
	if err != nil {
		return church.Published{}, err
	}
	if !actor.canManage(current) {
		return church.Published{}, domain.NewAuthorizationError("Only the church administrator can publish this church", domain.RoleChurchAdmin)
	}
	if !church.IsDraft(current) {
		return church.Published{}, domain.NewValidationError("Only draft churches can be published")
	}

	// pre-check for a friendly error; the unique index settles races
	slug := church.GenerateSlug(current.Name().String())
	taken, err := s.churchRepo.SlugExists(ctx, slug)
	if err != nil {
		return church.Published{}, err
	}
	if taken {
		return church.Published{}, domain.NewConflictError("A church with slug "+slug+" already exists", "slug")
	}

	next, err := s.churchRepo.Update(ctx, current.ID(), func(c church.Church) (church.Church, error) {
		d, ok := church.AsDraft(c)
		if !ok {
			return nil, domain.NewValidationError("Only draft churches can be published")
		}
		return church.Publish(d)
	})
	if err != nil {
		return church.Published{}, err
	}

	published := next.(church.Published)
	s.log.Info("church published", "churchId", rawID, "slug", published.Slug().String())
	return published, nil
}

// Verify marks a published church as verified by a platform admin
func (s *ChurchService) Verify(ctx context.Context, actor Actor, rawID string) (church.Verified, error) {
	id, err := church.ParseID(rawID)
	if err != nil {
		return church.Verified{}, err
	}

	next, err := s.churchRepo.Update(ctx, id, func(c church.Church) (church.Church, error) {
		p, ok := church.AsPublished(c)
		if !ok {
			return nil, domain.NewValidationError("Only published churches can be verified")
		}
		return church.Verify(p, actor.UserID, actor.Role)
	})
	if err != nil {
		return church.Verified{}, err
	}

	s.log.Info("church verified", "churchId", rawID, "verifiedBy", actor.UserID)
	return next.(church.Verified), nil
}

// UpdateProfile replaces the contact profile of a church in any state
func (s *ChurchService) UpdateProfile(ctx context.Context, actor Actor, rawID string, input ProfileInput) (church.Church, error) {
	current, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if !actor.canManage(current) {
		return nil, domain.NewAuthorizationError("Only the church administrator can edit this church", domain.RoleChurchAdmin)
	}

	return s.churchRepo.Update(ctx, current.ID(), func(c church.Church) (church.Church, error) {
		return church.UpdateProfile(c, input.Email, input.PostalCode)
	})
}

// Delete removes a church. Platform admins only.
func (s *ChurchService) Delete(ctx context.Context, actor Actor, rawID string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.NewAuthorizationError("Only platform admins can delete churches", domain.RoleAdmin)
	}
	c, err := s.load(ctx, rawID)
	if err != nil {
		return err
	}
	if err := s.churchRepo.Delete(ctx, c.ID()); err != nil {
		return err
	}

	s.log.Info("church deleted", "churchId", rawID, "deletedBy", actor.UserID)
	return nil
}

func (s *ChurchService) load(ctx context.Context, rawID string) (church.Church, error) {
	id, err := church.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	c, err := s.churchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError("Church", rawID)
	}
	return c, nil
}
