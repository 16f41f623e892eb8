package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shareloop/rental-backend/internal/item"
	"github.com/shareloop/rental-backend/internal/user"
)

// UserDirectory resolves the users referenced by booking requests.
// Satisfied by user.Service.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemCatalog resolves the items referenced by booking requests.
// Satisfied by item.Service.
type ItemCatalog interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type CreateRequest struct {
	RequesterID string
	ItemID      string
	Start       time.Time
	End         time.Time
}

type Service interface {
	// Create validates and persists a new booking in status WAITING.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	// SetApproval lets the item owner approve or reject a waiting booking.
	SetApproval(ctx context.Context, actorID, bookingID string, approve bool) (*Booking, error)

	// GetByID returns a booking to its booker or item owner.
	GetByID(ctx context.Context, requesterID, bookingID string) (*Booking, error)

	// ListByBooker returns the bookings requested by the given user,
	// narrowed by the state filter.
	ListByBooker(ctx context.Context, bookerID, stateFilter string) ([]*Booking, error)

	// ListByOwner returns the bookings on items owned by the given user,
	// narrowed by the state filter.
	ListByOwner(ctx context.Context, ownerID, stateFilter string) ([]*Booking, error)
}

type service struct {
	repo  Repository
	users UserDirectory
	items ItemCatalog
	clock clockwork.Clock
	log   *slog.Logger
}

// NewService creates the booking Service. The clock is injected so that
// temporal classification is testable with a fake time source.
func NewService(repo Repository, users UserDirectory, items ItemCatalog, clock clockwork.Clock, log *slog.Logger) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		clock: clock,
		log:   log,
	}
}

// Create runs the creation checks in a fixed order; the first failure wins.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, req.RequesterID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errUserNotFound(req.RequesterID)
		}
		return nil, err
	}

	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, errItemNotFound(req.ItemID)
		}
		return nil, err
	}

	// Self-booking is reported as not-found, not as a permission error.
	if it.OwnerID == req.RequesterID {
		return nil, errSelfBooking(req.ItemID)
	}

	if !it.IsAvailable {
		return nil, errItemUnavailable(req.ItemID)
	}

	now := s.clock.Now()
	if req.Start.Before(now) {
		return nil, ErrStartInPast
	}
	if req.End.Before(now) {
		return nil, ErrEndInPast
	}
	if req.Start.After(req.End) {
		return nil, ErrStartAfterEnd
	}

	b := &Booking{
		ItemID:   req.ItemID,
		ItemName: it.Name,
		OwnerID:  it.OwnerID,
		BookerID: req.RequesterID,
		Start:    req.Start,
		End:      req.End,
		Status:   StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		"booking_id", b.ID, "item_id", b.ItemID, "booker_id", b.BookerID)
	return b, nil
}

func (s *service) SetApproval(ctx context.Context, actorID, bookingID string, approve bool) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errUserNotFound(actorID)
		}
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.OwnerID != actorID {
		// The booker asking to decide their own request is reported as
		// not-found; an unrelated user as an invalid request.
		if b.BookerID == actorID {
			return nil, errBookerForbidden(actorID, bookingID)
		}
		return nil, errActorForbidden(actorID, bookingID)
	}

	target := StatusRejected
	if approve {
		target = StatusApproved
	}
	if b.Status == target {
		return nil, ErrRepeatedStatus
	}
	// APPROVED and REJECTED are terminal; only a WAITING booking can be decided.
	if b.Status != StatusWaiting {
		return nil, ErrStatusFinal
	}

	// Guarded write: the status column is only changed if it still holds the
	// value read above, so concurrent decisions cannot re-enter a terminal
	// state.
	updated, err := s.repo.UpdateStatus(ctx, b.ID, b.Status, target)
	if err != nil {
		return nil, err
	}

	s.log.Info("booking decided",
		"booking_id", b.ID, "item_id", b.ItemID, "status", string(target))
	return updated, nil
}

func (s *service) GetByID(ctx context.Context, requesterID, bookingID string) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errUserNotFound(requesterID)
		}
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != requesterID && b.OwnerID != requesterID {
		return nil, errNoRelation(requesterID, bookingID)
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID, stateFilter string) ([]*Booking, error) {
	filter, err := s.checkListRequest(ctx, bookerID, stateFilter)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByBooker(ctx, bookerID, filter, s.clock.Now())
}

func (s *service) ListByOwner(ctx context.Context, ownerID, stateFilter string) ([]*Booking, error) {
	filter, err := s.checkListRequest(ctx, ownerID, stateFilter)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ownerID, filter, s.clock.Now())
}

func (s *service) checkListRequest(ctx context.Context, userID, stateFilter string) (StateFilter, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", errUserNotFound(userID)
		}
		return "", err
	}
	return ParseStateFilter(stateFilter)
}
