package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"saathi-service/internal/models"
	"saathi-service/pkg/response"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Storage) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// #### availability_slots ####

func (s *Storage) CreateAvailabilitySlot(ctx context.Context, tx *sql.Tx, slot *models.AvailabilitySlot) (string, error) {
	const op = "storage.postgres.CreateAvailabilitySlot"

	id := uuid.NewString()

	_, err := tx.ExecContext(ctx,
		`INSERT INTO availability_slots
		(id, saathi_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)`,
		id,
		slot.SaathiID,
		slot.DayOfWeek,
		slot.StartTime,
		slot.EndTime,
	)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23503" {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) ListAvailabilitySlots(ctx context.Context, saathiID string) ([]*models.AvailabilitySlot, error) {
	const op = "storage.postgres.ListAvailabilitySlots"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, saathi_id, day_of_week, start_time::text, end_time::text, created_at
		FROM availability_slots
		WHERE saathi_id=$1
		ORDER BY day_of_week, start_time`,
		saathiID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	return scanSlots(rows, op)
}

func (s *Storage) ListAvailabilitySlotsForUpdate(ctx context.Context, tx *sql.Tx, saathiID string, dayOfWeek int) ([]*models.AvailabilitySlot, error) {
	const op = "storage.postgres.ListAvailabilitySlotsForUpdate"

	rows, err := tx.QueryContext(ctx,
		`SELECT id, saathi_id, day_of_week, start_time::text, end_time::text, created_at
		FROM availability_slots
		WHERE saathi_id=$1 AND day_of_week=$2
		ORDER BY start_time
		FOR UPDATE`,
		saathiID,
		dayOfWeek,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	return scanSlots(rows, op)
}

func scanSlots(rows *sql.Rows, op string) ([]*models.AvailabilitySlot, error) {
	var slots []*models.AvailabilitySlot

	for rows.Next() {
		var slot models.AvailabilitySlot
		err := rows.Scan(
			&slot.ID,
			&slot.SaathiID,
			&slot.DayOfWeek,
			&slot.StartTime,
			&slot.EndTime,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return slots, nil
}

func (s *Storage) DeleteAvailabilitySlot(ctx context.Context, slotID, saathiID string) error {
	const op = "storage.postgres.DeleteAvailabilitySlot"

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM availability_slots WHERE id=$1 AND saathi_id=$2`,
		slotID,
		saathiID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

// #### saathi_details ####

func (s *Storage) GetSaathiDetails(ctx context.Context, id string) (*models.SaathiDetails, error) {
	const op = "storage.postgres.GetSaathiDetails"

	return s.getSaathi(ctx, op, `WHERE id=$1`, id)
}

func (s *Storage) GetSaathiDetailsByUser(ctx context.Context, userID string) (*models.SaathiDetails, error) {
	const op = "storage.postgres.GetSaathiDetailsByUser"

	return s.getSaathi(ctx, op, `WHERE user_id=$1`, userID)
}

func (s *Storage) getSaathi(ctx context.Context, op, where, arg string) (*models.SaathiDetails, error) {
	var profile models.SaathiDetails

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, hourly_rate, is_available, is_verified
		FROM saathi_details `+where,
		arg,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.HourlyRate,
		&profile.IsAvailable,
		&profile.IsVerified,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &profile, nil
}

func (s *Storage) UpdateSaathiSettings(ctx context.Context, saathiID string, hourlyRate int, isAvailable bool) error {
	const op = "storage.postgres.UpdateSaathiSettings"

	res, err := s.db.ExecContext(ctx,
		`UPDATE saathi_details SET hourly_rate=$1, is_available=$2 WHERE id=$3`,
		hourlyRate,
		isAvailable,
		saathiID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

// #### bookings ####

const bookingColumns = `id, saathi_id, seeker_id, booking_date,
	start_time::text, end_time::text, duration_hours, total_amount,
	meeting_location, notes, status, payment_status,
	stripe_payment_intent_id, created_at, updated_at`

func (s *Storage) CreateBooking(ctx context.Context, tx *sql.Tx, booking *models.Booking) (string, error) {
	const op = "storage.postgres.CreateBooking"

	id := uuid.NewString()

	_, err := tx.ExecContext(ctx,
		`INSERT INTO bookings
		(id, saathi_id, seeker_id, booking_date, start_time, end_time,
		duration_hours, total_amount, meeting_location, notes,
		status, payment_status, stripe_payment_intent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		id,
		booking.SaathiID,
		booking.SeekerID,
		booking.BookingDate,
		booking.StartTime,
		booking.EndTime,
		booking.DurationHours,
		booking.TotalAmount,
		booking.MeetingLocation,
		booking.Notes,
		string(booking.Status),
		string(booking.PaymentStatus),
		booking.StripePaymentIntentID,
	)
	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23505" {
			return "", fmt.Errorf("%s: %w", op, response.ErrConflict)
		}
		if ok && sqlErr.Code == "23503" {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	const op = "storage.postgres.GetBooking"

	var booking models.Booking

	err := s.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id=$1`,
		id,
	).Scan(bookingFields(&booking)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &booking, nil
}

func (s *Storage) ListBookingsBySeeker(ctx context.Context, seekerID string) ([]*models.Booking, error) {
	const op = "storage.postgres.ListBookingsBySeeker"

	return s.listBookings(ctx, op,
		`SELECT `+bookingColumns+` FROM bookings WHERE seeker_id=$1 ORDER BY booking_date DESC`,
		seekerID,
	)
}

func (s *Storage) ListBookingsBySaathi(ctx context.Context, saathiID string) ([]*models.Booking, error) {
	const op = "storage.postgres.ListBookingsBySaathi"

	return s.listBookings(ctx, op,
		`SELECT `+bookingColumns+` FROM bookings WHERE saathi_id=$1 ORDER BY booking_date DESC`,
		saathiID,
	)
}

func (s *Storage) ListAllBookings(ctx context.Context) ([]*models.Booking, error) {
	const op = "storage.postgres.ListAllBookings"

	return s.listBookings(ctx, op,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY booking_date DESC`,
	)
}

func (s *Storage) listBookings(ctx context.Context, op, query string, args ...any) ([]*models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var bookings []*models.Booking

	for rows.Next() {
		var booking models.Booking
		if err := rows.Scan(bookingFields(&booking)...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) ListConfirmedBookingsForUpdate(ctx context.Context, tx *sql.Tx, saathiID string, date time.Time) ([]*models.Booking, error) {
	const op = "storage.postgres.ListConfirmedBookingsForUpdate"

	rows, err := tx.QueryContext(ctx,
		`SELECT `+bookingColumns+`
		FROM bookings
		WHERE saathi_id=$1 AND booking_date=$2 AND status=$3
		FOR UPDATE`,
		saathiID,
		date,
		string(models.BookingConfirmed),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var bookings []*models.Booking

	for rows.Next() {
		var booking models.Booking
		if err := rows.Scan(bookingFields(&booking)...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	const op = "storage.postgres.UpdateBookingStatus"

	res, err := s.db.ExecContext(ctx,
		`UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2`,
		string(status),
		bookingID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func (s *Storage) UpdateBookingPaymentStatus(ctx context.Context, bookingID string, status models.PaymentStatus) error {
	const op = "storage.postgres.UpdateBookingPaymentStatus"

	res, err := s.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status=$1, updated_at=now() WHERE id=$2`,
		string(status),
		bookingID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func bookingFields(b *models.Booking) []any {
	return []any{
		&b.ID,
		&b.SaathiID,
		&b.SeekerID,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.DurationHours,
		&b.TotalAmount,
		&b.MeetingLocation,
		&b.Notes,
		&b.Status,
		&b.PaymentStatus,
		&b.StripePaymentIntentID,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}
