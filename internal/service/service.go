package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"saathi-service/api"
	"saathi-service/internal/lock"
	"saathi-service/internal/models"
	"saathi-service/internal/payment"
	"saathi-service/internal/schedule"
	"saathi-service/pkg/response"
)

const (
	// PlatformFeeRate is charged on top of rate * hours and rounded to the
	// nearest rupee.
	PlatformFeeRate = 0.10

	MinHourlyRate = 99
	MaxHourlyRate = 9999

	dateLayout = "2006-01-02"
)

type Options struct {
	// AllowOverrun permits a booking's duration to run past the declared end
	// of the chosen slot (legacy behavior).
	AllowOverrun bool
	// WindowDays is the default materialization window.
	WindowDays int
}

type Service struct {
	store    Store
	locker   lock.Locker
	payments payment.Processor
	opts     Options
}

func NewService(store Store, locker lock.Locker, payments payment.Processor, opts Options) *Service {
	if opts.WindowDays <= 0 {
		opts.WindowDays = 7
	}
	return &Service{store: store, locker: locker, payments: payments, opts: opts}
}

type Store interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)

	// Availability
	CreateAvailabilitySlot(ctx context.Context, tx *sql.Tx, slot *models.AvailabilitySlot) (string, error)
	ListAvailabilitySlots(ctx context.Context, saathiID string) ([]*models.AvailabilitySlot, error)
	ListAvailabilitySlotsForUpdate(ctx context.Context, tx *sql.Tx, saathiID string, dayOfWeek int) ([]*models.AvailabilitySlot, error)
	DeleteAvailabilitySlot(ctx context.Context, slotID, saathiID string) error

	// Saathi profiles
	GetSaathiDetails(ctx context.Context, id string) (*models.SaathiDetails, error)
	GetSaathiDetailsByUser(ctx context.Context, userID string) (*models.SaathiDetails, error)
	UpdateSaathiSettings(ctx context.Context, saathiID string, hourlyRate int, isAvailable bool) error

	// Bookings
	CreateBooking(ctx context.Context, tx *sql.Tx, booking *models.Booking) (string, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookingsBySeeker(ctx context.Context, seekerID string) ([]*models.Booking, error)
	ListBookingsBySaathi(ctx context.Context, saathiID string) ([]*models.Booking, error)
	ListAllBookings(ctx context.Context) ([]*models.Booking, error)
	ListConfirmedBookingsForUpdate(ctx context.Context, tx *sql.Tx, saathiID string, date time.Time) ([]*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error
	UpdateBookingPaymentStatus(ctx context.Context, bookingID string, status models.PaymentStatus) error
}

// Availability

func (s *Service) AddAvailabilitySlot(ctx context.Context, req *api.AvailabilitySlotRequest) (*api.AvailabilitySlotResponse, error) {
	const op = "service.AddAvailabilitySlot"

	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%s: day_of_week out of range: %w", op, response.ErrValidation)
	}

	start, err := schedule.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid start_time: %w", op, response.ErrValidation)
	}

	end, err := schedule.ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid end_time: %w", op, response.ErrValidation)
	}

	if start >= end {
		return nil, fmt.Errorf("%s: %w", op, response.ErrInvalidRange)
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: begin tx: %w", op, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	existing, err := s.store.ListAvailabilitySlotsForUpdate(ctx, tx, req.SaathiID, req.DayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, slot := range existing {
		if schedule.Overlaps(start, end, slot.StartTime, slot.EndTime) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrOverlap)
		}
	}

	slot := &models.AvailabilitySlot{
		SaathiID:  req.SaathiID,
		DayOfWeek: req.DayOfWeek,
		StartTime: start,
		EndTime:   end,
	}

	id, err := s.store.CreateAvailabilitySlot(ctx, tx, slot)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	return &api.AvailabilitySlotResponse{
		ID:        id,
		SaathiID:  slot.SaathiID,
		DayOfWeek: slot.DayOfWeek,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	}, nil
}

func (s *Service) RemoveAvailabilitySlot(ctx context.Context, slotID, saathiID string) error {
	const op = "service.RemoveAvailabilitySlot"

	err := s.store.DeleteAvailabilitySlot(ctx, slotID, saathiID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) ListAvailability(ctx context.Context, saathiID string) ([]*api.AvailabilitySlotResponse, error) {
	const op = "service.ListAvailability"

	slots, err := s.store.ListAvailabilitySlots(ctx, saathiID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.AvailabilitySlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, &api.AvailabilitySlotResponse{
			ID:        slot.ID,
			SaathiID:  slot.SaathiID,
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	return result, nil
}

// Slot materialization

// MaterializeSlots projects the saathi's recurring weekly slots onto the
// windowDays consecutive dates starting at windowStart. Every date in the
// window gets an entry; dates whose weekday has no slots map to an empty
// list, and an unavailable saathi yields all-empty days. Already-booked
// windows are not excluded here: double-booking is rejected at confirmation.
func (s *Service) MaterializeSlots(ctx context.Context, saathiID string, windowStart time.Time, windowDays int) ([]*api.DaySlots, error) {
	const op = "service.MaterializeSlots"

	if windowDays <= 0 {
		windowDays = s.opts.WindowDays
	}

	profile, err := s.store.GetSaathiDetails(ctx, saathiID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byDay := map[int][]*models.AvailabilitySlot{}
	if profile.IsAvailable {
		slots, err := s.store.ListAvailabilitySlots(ctx, saathiID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for _, slot := range slots {
			byDay[slot.DayOfWeek] = append(byDay[slot.DayOfWeek], slot)
		}
	}

	loc := windowStart.Location()
	start := schedule.TruncateToDate(windowStart, loc)

	result := make([]*api.DaySlots, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		date := start.AddDate(0, 0, i)
		weekday := int(date.Weekday())

		day := &api.DaySlots{
			Date:  date.Format(dateLayout),
			Slots: []api.MaterializedSlot{},
		}

		for _, slot := range byDay[weekday] {
			label, err := schedule.Label(slot.StartTime, slot.EndTime)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			day.Slots = append(day.Slots, api.MaterializedSlot{
				Date:      day.Date,
				DayOfWeek: weekday,
				Label:     label,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			})
		}

		result = append(result, day)
	}

	return result, nil
}

// Bookings

func (s *Service) CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
	const op = "service.CreateBooking"

	if strings.TrimSpace(req.MeetingLocation) == "" {
		return nil, fmt.Errorf("%s: empty meeting location: %w", op, response.ErrValidation)
	}

	if req.DurationHours < 1 || req.DurationHours > 3 {
		return nil, fmt.Errorf("%s: invalid duration: %w", op, response.ErrValidation)
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date: %w", op, response.ErrValidation)
	}

	profile, err := s.store.GetSaathiDetails(ctx, req.SaathiID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !profile.IsAvailable {
		return nil, fmt.Errorf("%s: saathi is not accepting bookings: %w", op, response.ErrValidation)
	}

	slotStart, slotEnd, err := schedule.ParseLabel(req.Slot)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid slot: %w", op, response.ErrValidation)
	}

	// The label must correspond to a slot the saathi declared for that weekday.
	slots, err := s.store.ListAvailabilitySlots(ctx, req.SaathiID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	weekday := int(date.Weekday())
	var declared *models.AvailabilitySlot
	for _, slot := range slots {
		if slot.DayOfWeek == weekday && slot.StartTime == slotStart && slot.EndTime == slotEnd {
			declared = slot
			break
		}
	}
	if declared == nil {
		return nil, fmt.Errorf("%s: slot not in availability: %w", op, response.ErrValidation)
	}

	endTime, err := schedule.AddHours(slotStart, req.DurationHours)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, response.ErrValidation)
	}

	if !s.opts.AllowOverrun && endTime > declared.EndTime {
		return nil, fmt.Errorf("%s: duration exceeds slot: %w", op, response.ErrValidation)
	}

	base := profile.HourlyRate * req.DurationHours
	fee := int(math.Round(float64(base) * PlatformFeeRate))
	total := base + fee

	lockKey := fmt.Sprintf("booking:%s:%s", req.SaathiID, req.Date)

	locked, err := s.locker.Lock(ctx, lockKey, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	receiptID, err := s.payments.ProcessPayment(ctx, total)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, response.ErrPayment, err)
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: begin tx: %w", op, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	// No two confirmed bookings for the same saathi may overlap on a date.
	existing, err := s.store.ListConfirmedBookingsForUpdate(ctx, tx, req.SaathiID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, b := range existing {
		if schedule.Overlaps(slotStart, endTime, b.StartTime, b.EndTime) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrSlotConflict)
		}
	}

	booking := &models.Booking{
		SaathiID:              req.SaathiID,
		SeekerID:              req.SeekerID,
		BookingDate:           date,
		StartTime:             slotStart,
		EndTime:               endTime,
		DurationHours:         req.DurationHours,
		TotalAmount:           total,
		MeetingLocation:       strings.TrimSpace(req.MeetingLocation),
		Notes:                 req.Notes,
		Status:                models.BookingConfirmed,
		PaymentStatus:         models.PaymentPaid,
		StripePaymentIntentID: &receiptID,
	}

	bookingID, err := s.store.CreateBooking(ctx, tx, booking)
	if err != nil {
		return nil, fmt.Errorf("%s: create booking: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	return s.GetBooking(ctx, bookingID)
}

func (s *Service) GetBooking(ctx context.Context, id string) (*api.BookingResponse, error) {
	const op = "service.GetBooking"

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookingResponse(booking), nil
}

func (s *Service) ListBookings(ctx context.Context, userID string, role models.Role) ([]*api.BookingResponse, error) {
	const op = "service.ListBookings"

	var bookings []*models.Booking
	var err error

	switch role {
	case models.RoleSeeker:
		bookings, err = s.store.ListBookingsBySeeker(ctx, userID)
	case models.RoleSaathi:
		var profile *models.SaathiDetails
		profile, err = s.store.GetSaathiDetailsByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, response.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		bookings, err = s.store.ListBookingsBySaathi(ctx, profile.ID)
	case models.RoleAdmin:
		bookings, err = s.store.ListAllBookings(ctx)
	default:
		return nil, fmt.Errorf("%s: unknown role %q: %w", op, role, response.ErrValidation)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, bookingResponse(booking))
	}

	return result, nil
}

func (s *Service) CancelBooking(ctx context.Context, bookingID, actorID string) (*api.BookingResponse, error) {
	const op = "service.CancelBooking"

	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authorized := booking.SeekerID == actorID
	if !authorized {
		authorized, err = s.ownsSaathi(ctx, booking.SaathiID, actorID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if !authorized {
		return nil, fmt.Errorf("%s: %w", op, response.ErrNotAuthorized)
	}

	if !models.CanTransition(booking.Status, models.BookingCancelled) {
		return nil, fmt.Errorf("%s: %s -> cancelled: %w", op, booking.Status, response.ErrInvalidTransition)
	}

	// Cancellation does not touch payment_status; refunds are a separate step.
	if err := s.store.UpdateBookingStatus(ctx, bookingID, models.BookingCancelled); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetBooking(ctx, bookingID)
}

func (s *Service) CompleteBooking(ctx context.Context, bookingID, actorID string) (*api.BookingResponse, error) {
	const op = "service.CompleteBooking"

	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	owns, err := s.ownsSaathi(ctx, booking.SaathiID, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !owns {
		return nil, fmt.Errorf("%s: %w", op, response.ErrNotAuthorized)
	}

	if !models.CanTransition(booking.Status, models.BookingCompleted) {
		return nil, fmt.Errorf("%s: %s -> completed: %w", op, booking.Status, response.ErrInvalidTransition)
	}

	if err := s.store.UpdateBookingStatus(ctx, bookingID, models.BookingCompleted); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetBooking(ctx, bookingID)
}

func (s *Service) RefundBooking(ctx context.Context, bookingID, actorID string, role models.Role) (*api.BookingResponse, error) {
	const op = "service.RefundBooking"

	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authorized := role == models.RoleAdmin
	if !authorized {
		authorized, err = s.ownsSaathi(ctx, booking.SaathiID, actorID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if !authorized {
		return nil, fmt.Errorf("%s: %w", op, response.ErrNotAuthorized)
	}

	if !models.CanTransition(booking.Status, models.BookingRefunded) {
		return nil, fmt.Errorf("%s: %s -> refunded: %w", op, booking.Status, response.ErrInvalidTransition)
	}

	if err := s.store.UpdateBookingStatus(ctx, bookingID, models.BookingRefunded); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.UpdateBookingPaymentStatus(ctx, bookingID, models.PaymentRefunded); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetBooking(ctx, bookingID)
}

// Saathi profiles

func (s *Service) GetSaathi(ctx context.Context, id string) (*api.SaathiResponse, error) {
	const op = "service.GetSaathi"

	profile, err := s.store.GetSaathiDetails(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return saathiResponse(profile), nil
}

func (s *Service) UpdateSaathiSettings(ctx context.Context, saathiID, actorID string, req *api.SaathiSettingsRequest) (*api.SaathiResponse, error) {
	const op = "service.UpdateSaathiSettings"

	if req.HourlyRate < MinHourlyRate || req.HourlyRate > MaxHourlyRate {
		return nil, fmt.Errorf("%s: hourly rate out of range: %w", op, response.ErrValidation)
	}

	profile, err := s.store.GetSaathiDetails(ctx, saathiID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if profile.UserID != actorID {
		return nil, fmt.Errorf("%s: %w", op, response.ErrNotAuthorized)
	}

	if err := s.store.UpdateSaathiSettings(ctx, saathiID, req.HourlyRate, req.IsAvailable); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetSaathi(ctx, saathiID)
}

func (s *Service) ownsSaathi(ctx context.Context, saathiID, userID string) (bool, error) {
	profile, err := s.store.GetSaathiDetails(ctx, saathiID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return profile.UserID == userID, nil
}

func bookingResponse(booking *models.Booking) *api.BookingResponse {
	return &api.BookingResponse{
		ID:              booking.ID,
		SaathiID:        booking.SaathiID,
		SeekerID:        booking.SeekerID,
		BookingDate:     booking.BookingDate.Format(dateLayout),
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
		DurationHours:   booking.DurationHours,
		TotalAmount:     booking.TotalAmount,
		MeetingLocation: booking.MeetingLocation,
		Notes:           booking.Notes,
		Status:          string(booking.Status),
		PaymentStatus:   string(booking.PaymentStatus),
		CreatedAt:       booking.CreatedAt,
	}
}

func saathiResponse(profile *models.SaathiDetails) *api.SaathiResponse {
	return &api.SaathiResponse{
		ID:          profile.ID,
		UserID:      profile.UserID,
		HourlyRate:  profile.HourlyRate,
		IsAvailable: profile.IsAvailable,
		IsVerified:  profile.IsVerified,
	}
}
