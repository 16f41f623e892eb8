package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/shareloop/rental-backend/internal/pkg/apperror"
)

// Status is the lifecycle state of a booking. WAITING is the initial state;
// APPROVED and REJECTED are terminal and never re-entered.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// StateFilter selects which slice of a user's bookings a list call returns.
// CURRENT, PAST and FUTURE are computed against the clock at query time;
// WAITING and REJECTED match the stored status.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// Fine-grained reasons behind the booking engine's errors. Several of them
// surface as the same HTTP status on purpose (see apperror.Kind).
const (
	ReasonUserMissing     apperror.Reason = "user_missing"
	ReasonItemMissing     apperror.Reason = "item_missing"
	ReasonBookingMissing  apperror.Reason = "booking_missing"
	ReasonSelfBooking     apperror.Reason = "self_booking"
	ReasonBookerForbidden apperror.Reason = "booker_forbidden"
	ReasonActorForbidden  apperror.Reason = "actor_forbidden"
	ReasonNoRelation      apperror.Reason = "no_relation"
	ReasonItemUnavailable apperror.Reason = "item_unavailable"
	ReasonStartInPast     apperror.Reason = "start_in_past"
	ReasonEndInPast       apperror.Reason = "end_in_past"
	ReasonStartAfterEnd   apperror.Reason = "start_after_end"
	ReasonBadStateFilter  apperror.Reason = "bad_state_filter"
	ReasonRepeatedStatus  apperror.Reason = "repeated_status"
	ReasonStatusFinal     apperror.Reason = "status_final"
)

var (
	ErrStartInPast    = apperror.InvalidRequest(ReasonStartInPast, "booking start time must not be in the past")
	ErrEndInPast      = apperror.InvalidRequest(ReasonEndInPast, "booking end time must not be in the past")
	ErrStartAfterEnd  = apperror.InvalidRequest(ReasonStartAfterEnd, "booking start time must not be after end time")
	ErrRepeatedStatus = apperror.InvalidRequest(ReasonRepeatedStatus, "repeated identical status change not permitted")
	ErrStatusFinal    = apperror.InvalidRequest(ReasonStatusFinal, "booking status is already decided")
)

// Booking is a request by a booker to rent an item for a time window.
// ItemName and OwnerID are resolved from the item at read time.
type Booking struct {
	ID        string
	ItemID    string
	ItemName  string
	OwnerID   string
	BookerID  string
	Start     time.Time
	End       time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParseStateFilter parses a case-insensitive state filter value.
func ParseStateFilter(s string) (StateFilter, error) {
	switch f := StateFilter(strings.ToUpper(s)); f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, nil
	default:
		return "", apperror.InvalidRequest(ReasonBadStateFilter,
			fmt.Sprintf("state %q is not valid: must be one of ALL, CURRENT, PAST, FUTURE, WAITING, REJECTED", s))
	}
}

func errUserNotFound(id string) error {
	return apperror.NotFound(ReasonUserMissing, fmt.Sprintf("user %s not found", id))
}

func errItemNotFound(id string) error {
	return apperror.NotFound(ReasonItemMissing, fmt.Sprintf("item %s not found", id))
}

func errBookingNotFound(id string) error {
	return apperror.NotFound(ReasonBookingMissing, fmt.Sprintf("booking %s not found", id))
}

func errSelfBooking(itemID string) error {
	return apperror.NotFound(ReasonSelfBooking, fmt.Sprintf("owner cannot book their own item %s", itemID))
}

func errItemUnavailable(itemID string) error {
	return apperror.InvalidRequest(ReasonItemUnavailable, fmt.Sprintf("item %s is not available for booking", itemID))
}

func errBookerForbidden(userID, bookingID string) error {
	return apperror.NotFound(ReasonBookerForbidden,
		fmt.Sprintf("booker %s cannot change the status of booking %s", userID, bookingID))
}

func errActorForbidden(userID, bookingID string) error {
	return apperror.InvalidRequest(ReasonActorForbidden,
		fmt.Sprintf("user %s cannot change the status of booking %s", userID, bookingID))
}

func errNoRelation(userID, bookingID string) error {
	return apperror.NotFound(ReasonNoRelation,
		fmt.Sprintf("user %s is neither the booker nor the item owner of booking %s", userID, bookingID))
}
