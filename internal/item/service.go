package item

import (
	"context"
	"strings"
)

type AddRequest struct {
	OwnerID     string
	Name        string
	Description string
	IsAvailable bool
}

type UpdateRequest struct {
	Name        *string
	Description *string
	IsAvailable *bool
}

type Service interface {
	Add(ctx context.Context, req AddRequest) (*Item, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterID string) (*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Item, error)
	SearchAvailable(ctx context.Context, text string) ([]*Item, error)
	AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error)
	ListComments(ctx context.Context, itemID string) ([]*Comment, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, req AddRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	it := &Item{
		OwnerID:     req.OwnerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsAvailable: req.IsAvailable,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterID string) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if it.OwnerID != updaterID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.IsAvailable != nil {
		it.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*Item, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// SearchAvailable matches available items whose name or description contains
// the given text, case-insensitively. A blank query returns an empty list.
func (s *service) SearchAvailable(ctx context.Context, text string) ([]*Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*Item{}, nil
	}
	return s.repo.SearchAvailable(ctx, text)
}

func (s *service) AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	// Commented item must exist.
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	c := &Comment{
		ItemID:   itemID,
		AuthorID: authorID,
		Text:     strings.TrimSpace(text),
	}

	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListComments(ctx context.Context, itemID string) ([]*Comment, error) {
	return s.repo.ListComments(ctx, itemID)
}
