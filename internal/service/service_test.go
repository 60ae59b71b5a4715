package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"
	"time"

	"testing"

	"saathi-service/api"
	"saathi-service/internal/models"
	"saathi-service/internal/payment"
	"saathi-service/pkg/response"
)

// noopDriver gives the fake store real *sql.Tx values whose Commit/Rollback
// do nothing; all state lives in the fake itself.
type noopDriver struct{}

func (noopDriver) Open(string) (driver.Conn, error) { return noopConn{}, nil }

type noopConn struct{}

func (noopConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (noopConn) Close() error                        { return nil }
func (noopConn) Begin() (driver.Tx, error)           { return noopTx{}, nil }

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

var testDB = func() *sql.DB {
	sql.Register("noop", noopDriver{})
	db, err := sql.Open("noop", "")
	if err != nil {
		panic(err)
	}
	return db
}()

type fakeStore struct {
	seq      int
	slots    []*models.AvailabilitySlot
	bookings []*models.Booking
	saathis  map[string]*models.SaathiDetails
}

func newFakeStore() *fakeStore {
	return &fakeStore{saathis: map[string]*models.SaathiDetails{}}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return testDB.BeginTx(ctx, nil)
}

func (f *fakeStore) CreateAvailabilitySlot(_ context.Context, _ *sql.Tx, slot *models.AvailabilitySlot) (string, error) {
	s := *slot
	s.ID = f.nextID("slot")
	s.CreatedAt = time.Now()
	f.slots = append(f.slots, &s)
	return s.ID, nil
}

func (f *fakeStore) ListAvailabilitySlots(_ context.Context, saathiID string) ([]*models.AvailabilitySlot, error) {
	var out []*models.AvailabilitySlot
	for _, s := range f.slots {
		if s.SaathiID == saathiID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (f *fakeStore) ListAvailabilitySlotsForUpdate(ctx context.Context, _ *sql.Tx, saathiID string, dayOfWeek int) ([]*models.AvailabilitySlot, error) {
	all, _ := f.ListAvailabilitySlots(ctx, saathiID)
	var out []*models.AvailabilitySlot
	for _, s := range all {
		if s.DayOfWeek == dayOfWeek {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteAvailabilitySlot(_ context.Context, slotID, saathiID string) error {
	for i, s := range f.slots {
		if s.ID == slotID && s.SaathiID == saathiID {
			f.slots = append(f.slots[:i], f.slots[i+1:]...)
			return nil
		}
	}
	return response.ErrNotFound
}

func (f *fakeStore) GetSaathiDetails(_ context.Context, id string) (*models.SaathiDetails, error) {
	if p, ok := f.saathis[id]; ok {
		return p, nil
	}
	return nil, response.ErrNotFound
}

func (f *fakeStore) GetSaathiDetailsByUser(_ context.Context, userID string) (*models.SaathiDetails, error) {
	for _, p := range f.saathis {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, response.ErrNotFound
}

func (f *fakeStore) UpdateSaathiSettings(_ context.Context, saathiID string, hourlyRate int, isAvailable bool) error {
	p, ok := f.saathis[saathiID]
	if !ok {
		return response.ErrNotFound
	}
	p.HourlyRate = hourlyRate
	p.IsAvailable = isAvailable
	return nil
}

func (f *fakeStore) CreateBooking(_ context.Context, _ *sql.Tx, booking *models.Booking) (string, error) {
	b := *booking
	b.ID = f.nextID("booking")
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.bookings = append(f.bookings, &b)
	return b.ID, nil
}

func (f *fakeStore) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, response.ErrNotFound
}

func (f *fakeStore) listBookings(match func(*models.Booking) bool) []*models.Booking {
	var out []*models.Booking
	for _, b := range f.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].BookingDate.After(out[j].BookingDate)
	})
	return out
}

func (f *fakeStore) ListBookingsBySeeker(_ context.Context, seekerID string) ([]*models.Booking, error) {
	return f.listBookings(func(b *models.Booking) bool { return b.SeekerID == seekerID }), nil
}

func (f *fakeStore) ListBookingsBySaathi(_ context.Context, saathiID string) ([]*models.Booking, error) {
	return f.listBookings(func(b *models.Booking) bool { return b.SaathiID == saathiID }), nil
}

func (f *fakeStore) ListAllBookings(_ context.Context) ([]*models.Booking, error) {
	return f.listBookings(func(*models.Booking) bool { return true }), nil
}

func (f *fakeStore) ListConfirmedBookingsForUpdate(_ context.Context, _ *sql.Tx, saathiID string, date time.Time) ([]*models.Booking, error) {
	return f.listBookings(func(b *models.Booking) bool {
		return b.SaathiID == saathiID &&
			b.Status == models.BookingConfirmed &&
			b.BookingDate.Format("2006-01-02") == date.Format("2006-01-02")
	}), nil
}

func (f *fakeStore) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	b, err := f.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) UpdateBookingPaymentStatus(ctx context.Context, bookingID string, status models.PaymentStatus) error {
	b, err := f.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	b.PaymentStatus = status
	b.UpdatedAt = time.Now()
	return nil
}

type fakeLocker struct{}

func (fakeLocker) Lock(context.Context, string, time.Duration) (bool, error) { return true, nil }
func (fakeLocker) Unlock(context.Context, string) error                      { return nil }

func newTestService(store *fakeStore, opts Options) *Service {
	return NewService(store, fakeLocker{}, &payment.Mock{}, opts)
}

func seedSaathi(store *fakeStore, id, userID string, rate int, available bool) {
	store.saathis[id] = &models.SaathiDetails{
		ID:          id,
		UserID:      userID,
		HourlyRate:  rate,
		IsAvailable: available,
	}
}

// monday is a fixed Monday used across booking tests.
const monday = "2025-01-06"

func TestAddAvailabilitySlot_InvalidRange(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})

	_, err := svc.AddAvailabilitySlot(context.Background(), &api.AvailabilitySlotRequest{
		SaathiID:  "s1",
		DayOfWeek: 1,
		StartTime: "10:00:00",
		EndTime:   "09:00:00",
	})
	if !errors.Is(err, response.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestAddAvailabilitySlot_Overlap(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})
	ctx := context.Background()

	add := func(start, end string) error {
		_, err := svc.AddAvailabilitySlot(ctx, &api.AvailabilitySlotRequest{
			SaathiID:  "s1",
			DayOfWeek: 1,
			StartTime: start,
			EndTime:   end,
		})
		return err
	}

	if err := add("09:00:00", "12:00:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := add("14:00:00", "17:00:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := add("11:00:00", "13:00:00"); !errors.Is(err, response.ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}

	// Touching boundaries are not overlapping.
	if err := add("12:00:00", "14:00:00"); err != nil {
		t.Fatalf("expected touching slot to be accepted, got %v", err)
	}

	// Same interval on another day is fine.
	_, err := svc.AddAvailabilitySlot(ctx, &api.AvailabilitySlotRequest{
		SaathiID:  "s1",
		DayOfWeek: 2,
		StartTime: "11:00:00",
		EndTime:   "13:00:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMaterializeSlots_Window(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})
	ctx := context.Background()

	for _, s := range []struct {
		day        int
		start, end string
	}{
		{1, "10:00:00", "12:00:00"},
		{1, "16:00:00", "19:00:00"},
		{3, "16:00:00", "19:00:00"},
	} {
		_, err := svc.AddAvailabilitySlot(ctx, &api.AvailabilitySlotRequest{
			SaathiID:  "s1",
			DayOfWeek: s.day,
			StartTime: s.start,
			EndTime:   s.end,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	windowStart, _ := time.Parse("2006-01-02", monday)
	days, err := svc.MaterializeSlots(ctx, "s1", windowStart, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	for i, day := range days {
		want := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		if day.Date != want {
			t.Fatalf("day %d: expected date %s, got %s", i, want, day.Date)
		}
	}

	// Monday has two slots, Wednesday one, the rest none.
	if len(days[0].Slots) != 2 {
		t.Fatalf("expected 2 slots on Monday, got %d", len(days[0].Slots))
	}
	if days[0].Slots[0].Label != "10:00 AM - 12:00 PM" {
		t.Fatalf("unexpected label %q", days[0].Slots[0].Label)
	}
	if days[0].Slots[1].Label != "4:00 PM - 7:00 PM" {
		t.Fatalf("unexpected label %q", days[0].Slots[1].Label)
	}
	if len(days[2].Slots) != 1 {
		t.Fatalf("expected 1 slot on Wednesday, got %d", len(days[2].Slots))
	}
	for _, i := range []int{1, 3, 4, 5, 6} {
		if len(days[i].Slots) != 0 {
			t.Fatalf("expected no slots on day %d, got %d", i, len(days[i].Slots))
		}
	}

	// Idempotent: a second call with no writes in between matches the first.
	again, err := svc.MaterializeSlots(ctx, "s1", windowStart, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range days {
		if len(again[i].Slots) != len(days[i].Slots) || again[i].Date != days[i].Date {
			t.Fatalf("materialization is not idempotent at day %d", i)
		}
	}
}

func TestMaterializeSlots_UnavailableSaathi(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, false)
	store.slots = append(store.slots, &models.AvailabilitySlot{
		ID: "slot-x", SaathiID: "s1", DayOfWeek: 1,
		StartTime: "10:00:00", EndTime: "12:00:00",
	})
	svc := newTestService(store, Options{})

	windowStart, _ := time.Parse("2006-01-02", monday)
	days, err := svc.MaterializeSlots(context.Background(), "s1", windowStart, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, day := range days {
		if len(day.Slots) != 0 {
			t.Fatalf("expected no slots for unavailable saathi on %s", day.Date)
		}
	}
}

func bookingRequest() *api.BookingRequest {
	return &api.BookingRequest{
		SaathiID:        "s1",
		SeekerID:        "seeker1",
		Date:            monday,
		Slot:            "10:00 AM - 12:00 PM",
		DurationHours:   1,
		MeetingLocation: "Cafe Coffee Day, Linking Road, Bandra",
	}
}

func seedMondaySlot(t *testing.T, svc *Service) {
	t.Helper()
	_, err := svc.AddAvailabilitySlot(context.Background(), &api.AvailabilitySlotRequest{
		SaathiID:  "s1",
		DayOfWeek: 1,
		StartTime: "10:00:00",
		EndTime:   "12:00:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateBooking_EndToEnd(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})
	seedMondaySlot(t, svc)

	booking, err := svc.CreateBooking(context.Background(), bookingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.StartTime != "10:00:00" {
		t.Fatalf("expected start 10:00:00, got %s", booking.StartTime)
	}
	if booking.EndTime != "11:00:00" {
		t.Fatalf("expected end 11:00:00, got %s", booking.EndTime)
	}
	// 299 * 1 + round(299 * 0.10) = 299 + 30 = 329
	if booking.TotalAmount != 329 {
		t.Fatalf("expected total 329, got %d", booking.TotalAmount)
	}
	if booking.Status != string(models.BookingConfirmed) {
		t.Fatalf("expected status confirmed, got %s", booking.Status)
	}
	if booking.PaymentStatus != string(models.PaymentPaid) {
		t.Fatalf("expected payment paid, got %s", booking.PaymentStatus)
	}
}

func TestCreateBooking_PlatformFee(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})
	seedMondaySlot(t, svc)

	req := bookingRequest()
	req.DurationHours = 2

	booking, err := svc.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// round(299 * 2 * 1.10) = 658
	if booking.TotalAmount != 658 {
		t.Fatalf("expected total 658, got %d", booking.TotalAmount)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})
	seedMondaySlot(t, svc)
	ctx := context.Background()

	req := bookingRequest()
	req.MeetingLocation = "   "
	if _, err := svc.CreateBooking(ctx, req); !errors.Is(err, response.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank location, got %v", err)
	}

	req = bookingRequest()
	req.DurationHours = 4
	if _, err := svc.CreateBooking(ctx, req); !errors.Is(err, response.ErrValidation) {
		t.Fatalf("expected ErrValidation for duration 4, got %v", err)
	}

	req = bookingRequest()
	req.Slot = "9:00 AM - 10:00 AM" // not a declared slot
	if _, err := svc.CreateBooking(ctx, req); !errors.Is(err, response.ErrValidation) {
		t.Fatalf("expected ErrValidation for undeclared slot, got %v", err)
	}

	req = bookingRequest()
	req.Date = "2025-01-07" // Tuesday: the Monday slot does not apply
	if _, err := svc.CreateBooking(ctx, req); !errors.Is(err, response.ErrValidation) {
		t.Fatalf("expected ErrValidation for wrong weekday, got %v", err)
	}
}

func TestCreateBooking_OverrunPolicy(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})
	seedMondaySlot(t, svc)
	ctx := context.Background()

	req := bookingRequest()
	req.DurationHours = 3 // 10:00 + 3h runs past the 12:00 slot end
	if _, err := svc.CreateBooking(ctx, req); !errors.Is(err, response.ErrValidation) {
		t.Fatalf("expected ErrValidation for overrun, got %v", err)
	}

	legacy := newTestService(store, Options{AllowOverrun: true})
	booking, err := legacy.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error with AllowOverrun: %v", err)
	}
	if booking.EndTime != "13:00:00" {
		t.Fatalf("expected end 13:00:00, got %s", booking.EndTime)
	}
}

func TestCreateBooking_SlotConflict(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})
	seedMondaySlot(t, svc)
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, bookingRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := bookingRequest()
	req.SeekerID = "seeker2"
	if _, err := svc.CreateBooking(ctx, req); !errors.Is(err, response.ErrSlotConflict) {
		t.Fatalf("expected ErrSlotConflict, got %v", err)
	}

	// A cancelled booking frees the window.
	first, _ := store.ListBookingsBySeeker(ctx, "seeker1")
	if _, err := svc.CancelBooking(ctx, first[0].ID, "seeker1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateBooking(ctx, req); err != nil {
		t.Fatalf("expected rebooking after cancel to succeed, got %v", err)
	}
}

func TestListBookings_RoundTrip(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})
	seedMondaySlot(t, svc)
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, bookingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seekerView, err := svc.ListBookings(ctx, "seeker1", models.RoleSeeker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seekerView) != 1 {
		t.Fatalf("expected 1 booking for seeker, got %d", len(seekerView))
	}
	got := seekerView[0]
	if got.ID != created.ID ||
		got.BookingDate != monday ||
		got.StartTime != created.StartTime ||
		got.EndTime != created.EndTime ||
		got.TotalAmount != created.TotalAmount ||
		got.MeetingLocation != created.MeetingLocation {
		t.Fatalf("round-tripped booking differs: %+v vs %+v", got, created)
	}

	// The saathi sees the same booking through profile ownership.
	saathiView, err := svc.ListBookings(ctx, "u1", models.RoleSaathi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saathiView) != 1 || saathiView[0].ID != created.ID {
		t.Fatalf("expected the booking in the saathi view")
	}

	otherView, err := svc.ListBookings(ctx, "someone-else", models.RoleSeeker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(otherView) != 0 {
		t.Fatalf("expected no bookings for an unrelated seeker, got %d", len(otherView))
	}
}

func TestCancelBooking_Transitions(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})
	seedMondaySlot(t, svc)
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, bookingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.CancelBooking(ctx, created.ID, "stranger"); !errors.Is(err, response.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}

	cancelled, err := svc.CancelBooking(ctx, created.ID, "seeker1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.Status != string(models.BookingCancelled) {
		t.Fatalf("expected status cancelled, got %s", cancelled.Status)
	}
	// Cancellation never touches payment status.
	if cancelled.PaymentStatus != string(models.PaymentPaid) {
		t.Fatalf("expected payment status unchanged, got %s", cancelled.PaymentStatus)
	}

	// cancelled is terminal.
	if _, err := svc.CancelBooking(ctx, created.ID, "seeker1"); !errors.Is(err, response.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := svc.CompleteBooking(ctx, created.ID, "u1"); !errors.Is(err, response.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCompleteAndRefund(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})
	seedMondaySlot(t, svc)
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, bookingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.CompleteBooking(ctx, created.ID, "seeker1"); !errors.Is(err, response.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for seeker completing, got %v", err)
	}

	completed, err := svc.CompleteBooking(ctx, created.ID, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completed.Status != string(models.BookingCompleted) {
		t.Fatalf("expected status completed, got %s", completed.Status)
	}

	// completed is terminal: no refund from here.
	if _, err := svc.RefundBooking(ctx, created.ID, "u1", models.RoleSaathi); !errors.Is(err, response.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// A fresh confirmed booking can be refunded by the saathi.
	req := bookingRequest()
	req.Date = "2025-01-13" // next Monday
	second, err := svc.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	refunded, err := svc.RefundBooking(ctx, second.ID, "u1", models.RoleSaathi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refunded.Status != string(models.BookingRefunded) {
		t.Fatalf("expected status refunded, got %s", refunded.Status)
	}
	if refunded.PaymentStatus != string(models.PaymentRefunded) {
		t.Fatalf("expected payment status refunded, got %s", refunded.PaymentStatus)
	}
}

func TestRemoveAvailabilitySlot(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})
	ctx := context.Background()

	slot, err := svc.AddAvailabilitySlot(ctx, &api.AvailabilitySlotRequest{
		SaathiID:  "s1",
		DayOfWeek: 1,
		StartTime: "10:00:00",
		EndTime:   "12:00:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.RemoveAvailabilitySlot(ctx, slot.ID, "other-saathi"); !errors.Is(err, response.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unowned slot, got %v", err)
	}

	if err := svc.RemoveAvailabilitySlot(ctx, slot.ID, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Deleting twice is a not-found.
	if err := svc.RemoveAvailabilitySlot(ctx, slot.ID, "s1"); !errors.Is(err, response.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The freed window can be declared again: delete + recreate is the edit model.
	if _, err := svc.AddAvailabilitySlot(ctx, &api.AvailabilitySlotRequest{
		SaathiID:  "s1",
		DayOfWeek: 1,
		StartTime: "10:00:00",
		EndTime:   "13:00:00",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateSaathiSettings(t *testing.T) {
	store := newFakeStore()
	seedSaathi(store, "s1", "u1", 299, true)
	svc := newTestService(store, Options{})
	ctx := context.Background()

	if _, err := svc.UpdateSaathiSettings(ctx, "s1", "u1", &api.SaathiSettingsRequest{
		HourlyRate: 50, IsAvailable: true,
	}); !errors.Is(err, response.ErrValidation) {
		t.Fatalf("expected ErrValidation for rate below minimum, got %v", err)
	}

	if _, err := svc.UpdateSaathiSettings(ctx, "s1", "intruder", &api.SaathiSettingsRequest{
		HourlyRate: 500, IsAvailable: true,
	}); !errors.Is(err, response.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}

	updated, err := svc.UpdateSaathiSettings(ctx, "s1", "u1", &api.SaathiSettingsRequest{
		HourlyRate: 500, IsAvailable: false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.HourlyRate != 500 || updated.IsAvailable {
		t.Fatalf("settings not applied: %+v", updated)
	}
}
