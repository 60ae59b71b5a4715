package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingRefunded  BookingStatus = "refunded"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type Role string

const (
	RoleSeeker Role = "seeker"
	RoleSaathi Role = "saathi"
	RoleAdmin  Role = "admin"
)

// CanTransition reports whether a booking status change is allowed.
// pending -> confirmed -> completed; confirmed -> cancelled | refunded.
// completed, cancelled and refunded are terminal.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case BookingPending:
		return to == BookingConfirmed
	case BookingConfirmed:
		return to == BookingCompleted || to == BookingCancelled || to == BookingRefunded
	default:
		return false
	}
}

// AvailabilitySlot is a recurring weekly interval declared by a saathi.
// Times are wall-clock "15:04:05" strings, DayOfWeek 0..6 with 0 = Sunday.
// Slots are never edited in place: edits are delete + recreate.
type AvailabilitySlot struct {
	ID        string    `db:"id"`
	SaathiID  string    `db:"saathi_id"`
	DayOfWeek int       `db:"day_of_week"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	CreatedAt time.Time `db:"created_at"`
}

type Booking struct {
	ID                    string        `db:"id"`
	SaathiID              string        `db:"saathi_id"`
	SeekerID              string        `db:"seeker_id"`
	BookingDate           time.Time     `db:"booking_date"`
	StartTime             string        `db:"start_time"`
	EndTime               string        `db:"end_time"`
	DurationHours         int           `db:"duration_hours"`
	TotalAmount           int           `db:"total_amount"`
	MeetingLocation       string        `db:"meeting_location"`
	Notes                 *string       `db:"notes"`
	Status                BookingStatus `db:"status"`
	PaymentStatus         PaymentStatus `db:"payment_status"`
	StripePaymentIntentID *string       `db:"stripe_payment_intent_id"`
	CreatedAt             time.Time     `db:"created_at"`
	UpdatedAt             time.Time     `db:"updated_at"`
}

// SaathiDetails is the profile data the booking core reads: the hourly rate
// feeding price derivation and the availability master switch.
type SaathiDetails struct {
	ID          string `db:"id"`
	UserID      string `db:"user_id"`
	HourlyRate  int    `db:"hourly_rate"`
	IsAvailable bool   `db:"is_available"`
	IsVerified  bool   `db:"is_verified"`
}
