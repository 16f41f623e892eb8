package booking

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareloop/rental-backend/internal/item"
	"github.com/shareloop/rental-backend/internal/pkg/apperror"
	"github.com/shareloop/rental-backend/internal/user"
)

// ==== Fakes ====

type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

type fakeItems struct {
	items map[string]*item.Item
}

func (f *fakeItems) GetByID(_ context.Context, id string) (*item.Item, error) {
	if it, ok := f.items[id]; ok {
		return it, nil
	}
	return nil, item.ErrNotFound
}

// fakeRepo mimics the store: it owns its records and hands out copies.
type fakeRepo struct {
	bookings map[string]*Booking
	seq      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*Booking)}
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	r.seq++
	b.ID = fmt.Sprintf("booking-%d", r.seq)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, errBookingNotFound(id)
	}
	dup := *b
	return &dup, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, from, to Status) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return nil, ErrRepeatedStatus
	}
	b.Status = to
	dup := *b
	return &dup, nil
}

func (r *fakeRepo) ListByBooker(_ context.Context, bookerID string, filter StateFilter, now time.Time) ([]*Booking, error) {
	return r.list(func(b *Booking) bool { return b.BookerID == bookerID }, filter, now), nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID string, filter StateFilter, now time.Time) ([]*Booking, error) {
	return r.list(func(b *Booking) bool { return b.OwnerID == ownerID }, filter, now), nil
}

func (r *fakeRepo) list(match func(*Booking) bool, filter StateFilter, now time.Time) []*Booking {
	var out []*Booking
	for _, b := range r.bookings {
		if !match(b) {
			continue
		}
		switch filter {
		case FilterCurrent:
			if b.Start.After(now) || b.End.Before(now) {
				continue
			}
		case FilterPast:
			if !b.End.Before(now) {
				continue
			}
		case FilterFuture:
			if !b.Start.After(now) {
				continue
			}
		case FilterWaiting:
			if b.Status != StatusWaiting {
				continue
			}
		case FilterRejected:
			if b.Status != StatusRejected {
				continue
			}
		}
		dup := *b
		out = append(out, &dup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return out
}

// ==== Helpers ====

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc   Service
	repo  *fakeRepo
	clock *clockwork.FakeClock
}

// newFixture wires the service with two users: "owner" holding the available
// item "itm" and the unavailable item "broken", plus the booker "booker" and
// the bystander "stranger".
func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := &fakeUsers{users: map[string]*user.User{
		"owner":    {ID: "owner", Email: "owner@example.com"},
		"booker":   {ID: "booker", Email: "booker@example.com"},
		"stranger": {ID: "stranger", Email: "stranger@example.com"},
	}}
	items := &fakeItems{items: map[string]*item.Item{
		"itm":    {ID: "itm", OwnerID: "owner", Name: "Cordless Drill", IsAvailable: true},
		"broken": {ID: "broken", OwnerID: "owner", Name: "Broken Tent", IsAvailable: false},
	}}

	repo := newFakeRepo()
	clock := clockwork.NewFakeClockAt(testNow)

	return &fixture{
		svc:   NewService(repo, users, items, clock, slog.New(slog.NewTextHandler(io.Discard, nil))),
		repo:  repo,
		clock: clock,
	}
}

func (f *fixture) create(t *testing.T, req CreateRequest) *Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	return b
}

func requireAppError(t *testing.T, err error, kind apperror.Kind, reason apperror.Reason) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind)
	assert.Equal(t, reason, appErr.Reason)
}

func futureWindow(startOffset, endOffset time.Duration) (time.Time, time.Time) {
	return testNow.Add(startOffset), testNow.Add(endOffset)
}

// ==== Create ====

func TestCreate_Success(t *testing.T) {
	f := newFixture(t)
	start, end := futureWindow(time.Hour, 2*time.Hour)

	b := f.create(t, CreateRequest{RequesterID: "booker", ItemID: "itm", Start: start, End: end})

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StatusWaiting, b.Status)
	assert.Equal(t, "itm", b.ItemID)
	assert.Equal(t, "owner", b.OwnerID)
	assert.Equal(t, "booker", b.BookerID)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, stored.Status)
}

func TestCreate_UnknownRequester(t *testing.T) {
	f := newFixture(t)
	start, end := futureWindow(time.Hour, 2*time.Hour)

	_, err := f.svc.Create(context.Background(), CreateRequest{RequesterID: "ghost", ItemID: "itm", Start: start, End: end})
	requireAppError(t, err, apperror.KindNotFound, ReasonUserMissing)
}

func TestCreate_UnknownItem(t *testing.T) {
	f := newFixture(t)
	start, end := futureWindow(time.Hour, 2*time.Hour)

	_, err := f.svc.Create(context.Background(), CreateRequest{RequesterID: "booker", ItemID: "nope", Start: start, End: end})
	requireAppError(t, err, apperror.KindNotFound, ReasonItemMissing)
}

func TestCreate_SelfBookingIsNotFound(t *testing.T) {
	f := newFixture(t)
	start, end := futureWindow(time.Hour, 2*time.Hour)

	_, err := f.svc.Create(context.Background(), CreateRequest{RequesterID: "owner", ItemID: "itm", Start: start, End: end})
	requireAppError(t, err, apperror.KindNotFound, ReasonSelfBooking)
}

func TestCreate_UnavailableItem(t *testing.T) {
	f := newFixture(t)
	start, end := futureWindow(time.Hour, 2*time.Hour)

	_, err := f.svc.Create(context.Background(), CreateRequest{RequesterID: "booker", ItemID: "broken", Start: start, End: end})
	requireAppError(t, err, apperror.KindInvalidRequest, ReasonItemUnavailable)
}

func TestCreate_TimeRangeRules(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name   string
		start  time.Time
		end    time.Time
		reason apperror.Reason
	}{
		{"start in past", testNow.Add(-time.Hour), testNow.Add(time.Hour), ReasonStartInPast},
		{"end in past", testNow.Add(time.Hour), testNow.Add(-time.Hour), ReasonEndInPast},
		{"start after end", testNow.Add(2 * time.Hour), testNow.Add(time.Hour), ReasonStartAfterEnd},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), CreateRequest{
				RequesterID: "booker", ItemID: "itm", Start: tc.start, End: tc.end,
			})
			requireAppError(t, err, apperror.KindInvalidRequest, tc.reason)
		})
	}
}

// The checks run in a fixed order; self-booking wins over availability and
// availability wins over time-range problems.
func TestCreate_FirstFailureWins(t *testing.T) {
	f := newFixture(t)
	pastStart, pastEnd := testNow.Add(-2*time.Hour), testNow.Add(-time.Hour)

	_, err := f.svc.Create(context.Background(), CreateRequest{RequesterID: "owner", ItemID: "broken", Start: pastStart, End: pastEnd})
	requireAppError(t, err, apperror.KindNotFound, ReasonSelfBooking)

	_, err = f.svc.Create(context.Background(), CreateRequest{RequesterID: "booker", ItemID: "broken", Start: pastStart, End: pastEnd})
	requireAppError(t, err, apperror.KindInvalidRequest, ReasonItemUnavailable)
}

// ==== SetApproval ====

func TestSetApproval_ApproveAndRepeat(t *testing.T) {
	f := newFixture(t)
	start, end := futureWindow(time.Hour, 2*time.Hour)
	b := f.create(t, CreateRequest{RequesterID: "booker", ItemID: "itm", Start: start, End: end})

	decided, err := f.svc.SetApproval(context.Background(), "owner", b.ID, true)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, decided.Status)

	// A second identical decision is refused.
	_, err = f.svc.SetApproval(context.Background(), "owner", b.ID, true)
	requireAppError(t, err, apperror.KindInvalidRequest, ReasonRepeatedStatus)
}

func TestSetApproval_Reject(t *testing.T) {
	f := newFixture(t)
	start, end := futureWindow(time.Hour, 2*time.Hour)
	b := f.create(t, CreateRequest{RequesterID: "booker", ItemID: "itm", Start: start, End: end})

	decided, err := f.svc.SetApproval(context.Background(), "owner", b.ID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, decided.Status)
}

func TestSetApproval_TerminalStatesAreFinal(t *testing.T) {
	f := newFixture(t)
	start, end := futureWindow(time.Hour, 2*time.Hour)
	b := f.create(t, CreateRequest{RequesterID: "booker", ItemID: "itm", Start: start, End: end})

	_, err := f.svc.SetApproval(context.Background(), "owner", b.ID, true)
	require.NoError(t, err)

	// Flipping an approved booking to rejected is refused too.
	_, err = f.svc.SetApproval(context.Background(), "owner", b.ID, false)
	requireAppError(t, err, apperror.KindInvalidRequest, ReasonStatusFinal)
}

func TestSetApproval_Authorization(t *testing.T) {
	f := newFixture(t)
	start, end := futureWindow(time.Hour, 2*time.Hour)
	b := f.create(t, CreateRequest{RequesterID: "booker", ItemID: "itm", Start: start, End: end})

	t.Run("unknown actor", func(t *testing.T) {
		_, err := f.svc.SetApproval(context.Background(), "ghost", b.ID, true)
		requireAppError(t, err, apperror.KindNotFound, ReasonUserMissing)
	})

	t.Run("booker cannot decide", func(t *testing.T) {
		_, err := f.svc.SetApproval(context.Background(), "booker", b.ID, true)
		requireAppError(t, err, apperror.KindNotFound, ReasonBookerForbidden)
	})

	t.Run("stranger cannot decide", func(t *testing.T) {
		_, err := f.svc.SetApproval(context.Background(), "stranger", b.ID, true)
		requireAppError(t, err, apperror.KindInvalidRequest, ReasonActorForbidden)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := f.svc.SetApproval(context.Background(), "owner", "missing", true)
		requireAppError(t, err, apperror.KindNotFound, ReasonBookingMissing)
	})

	// None of the failed attempts changed the status.
	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, stored.Status)
}

// ==== GetByID ====

func TestGetByID_Access(t *testing.T) {
	f := newFixture(t)
	start, end := futureWindow(time.Hour, 2*time.Hour)
	b := f.create(t, CreateRequest{RequesterID: "booker", ItemID: "itm", Start: start, End: end})

	for _, requester := range []string{"booker", "owner"} {
		got, err := f.svc.GetByID(context.Background(), requester, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	}

	_, err := f.svc.GetByID(context.Background(), "stranger", b.ID)
	requireAppError(t, err, apperror.KindNotFound, ReasonNoRelation)

	_, err = f.svc.GetByID(context.Background(), "ghost", b.ID)
	requireAppError(t, err, apperror.KindNotFound, ReasonUserMissing)

	_, err = f.svc.GetByID(context.Background(), "booker", "missing")
	requireAppError(t, err, apperror.KindNotFound, ReasonBookingMissing)
}

// ==== Lists ====

// seedBuckets creates one booking per temporal bucket for "booker" on the
// owner's item, relative to the fixed test clock:
// past (APPROVED), current (APPROVED), future (WAITING), futureRejected (REJECTED).
func seedBuckets(t *testing.T, f *fixture) map[string]*Booking {
	t.Helper()
	ctx := context.Background()

	past := f.create(t, CreateRequest{RequesterID: "booker", ItemID: "itm",
		Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour)})
	current := f.create(t, CreateRequest{RequesterID: "booker", ItemID: "itm",
		Start: testNow.Add(3 * time.Hour), End: testNow.Add(8 * time.Hour)})
	future := f.create(t, CreateRequest{RequesterID: "booker", ItemID: "itm",
		Start: testNow.Add(9 * time.Hour), End: testNow.Add(10 * time.Hour)})
	futureRejected := f.create(t, CreateRequest{RequesterID: "booker", ItemID: "itm",
		Start: testNow.Add(11 * time.Hour), End: testNow.Add(12 * time.Hour)})

	_, err := f.svc.SetApproval(ctx, "owner", past.ID, true)
	require.NoError(t, err)
	_, err = f.svc.SetApproval(ctx, "owner", current.ID, true)
	require.NoError(t, err)
	_, err = f.svc.SetApproval(ctx, "owner", futureRejected.ID, false)
	require.NoError(t, err)

	// Move the clock so the windows land in their buckets:
	// past [T+1h,T+2h] is over, current [T+3h,T+8h] is running,
	// future and futureRejected have not started.
	f.clock.Advance(4 * time.Hour)

	return map[string]*Booking{
		"past": past, "current": current, "future": future, "futureRejected": futureRejected,
	}
}

func ids(bookings []*Booking) []string {
	out := make([]string, len(bookings))
	for i, b := range bookings {
		out[i] = b.ID
	}
	return out
}

func TestListByBooker_Buckets(t *testing.T) {
	f := newFixture(t)
	seeded := seedBuckets(t, f)
	ctx := context.Background()

	cases := []struct {
		filter string
		want   []string
	}{
		// Ordered by start time descending.
		{"ALL", []string{seeded["futureRejected"].ID, seeded["future"].ID, seeded["current"].ID, seeded["past"].ID}},
		{"PAST", []string{seeded["past"].ID}},
		{"CURRENT", []string{seeded["current"].ID}},
		{"FUTURE", []string{seeded["futureRejected"].ID, seeded["future"].ID}},
		{"WAITING", []string{seeded["future"].ID}},
		{"REJECTED", []string{seeded["futureRejected"].ID}},
	}

	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			got, err := f.svc.ListByBooker(ctx, "booker", tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestListByOwner_Buckets(t *testing.T) {
	f := newFixture(t)
	seeded := seedBuckets(t, f)
	ctx := context.Background()

	got, err := f.svc.ListByOwner(ctx, "owner", "PAST")
	require.NoError(t, err)
	assert.Equal(t, []string{seeded["past"].ID}, ids(got))

	// The past booking never shows up as current or future.
	for _, filter := range []string{"CURRENT", "FUTURE"} {
		got, err := f.svc.ListByOwner(ctx, "owner", filter)
		require.NoError(t, err)
		assert.NotContains(t, ids(got), seeded["past"].ID)
	}

	// The booker owns no items, so the owner view is empty.
	got, err = f.svc.ListByOwner(ctx, "booker", "ALL")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestList_AllIsSupersetOfEveryFilter(t *testing.T) {
	f := newFixture(t)
	seedBuckets(t, f)
	ctx := context.Background()

	all, err := f.svc.ListByBooker(ctx, "booker", "ALL")
	require.NoError(t, err)
	allIDs := ids(all)

	for _, filter := range []string{"CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		got, err := f.svc.ListByBooker(ctx, "booker", filter)
		require.NoError(t, err)
		for _, id := range ids(got) {
			assert.Contains(t, allIDs, id, "filter %s returned a booking missing from ALL", filter)
		}
	}
}

func TestList_FilterIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	seeded := seedBuckets(t, f)
	ctx := context.Background()

	for _, filter := range []string{"past", "Past", "pAsT"} {
		got, err := f.svc.ListByBooker(ctx, "booker", filter)
		require.NoError(t, err)
		assert.Equal(t, []string{seeded["past"].ID}, ids(got))
	}
}

func TestList_BadFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListByBooker(ctx, "booker", "SOMEDAY")
	requireAppError(t, err, apperror.KindInvalidRequest, ReasonBadStateFilter)
	assert.Contains(t, err.Error(), "ALL, CURRENT, PAST, FUTURE, WAITING, REJECTED")

	_, err = f.svc.ListByOwner(ctx, "owner", "")
	requireAppError(t, err, apperror.KindInvalidRequest, ReasonBadStateFilter)
}

func TestList_UnknownUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListByBooker(ctx, "ghost", "ALL")
	requireAppError(t, err, apperror.KindNotFound, ReasonUserMissing)

	_, err = f.svc.ListByOwner(ctx, "ghost", "ALL")
	requireAppError(t, err, apperror.KindNotFound, ReasonUserMissing)
}
