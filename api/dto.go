package api

import "time"

type AvailabilitySlotRequest struct {
	SaathiID  string `json:"saathi_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilitySlotResponse struct {
	ID        string `json:"id"`
	SaathiID  string `json:"saathi_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// MaterializedSlot is a recurring slot projected onto a concrete date.
type MaterializedSlot struct {
	Date      string `json:"date"`
	DayOfWeek int    `json:"day_of_week"`
	Label     string `json:"label"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type DaySlots struct {
	Date  string             `json:"date"`
	Slots []MaterializedSlot `json:"slots"`
}

type BookingRequest struct {
	SaathiID        string  `json:"saathi_id"`
	SeekerID        string  `json:"seeker_id"`
	Date            string  `json:"date"`
	Slot            string  `json:"slot"`
	DurationHours   int     `json:"duration_hours"`
	MeetingLocation string  `json:"meeting_location"`
	Notes           *string `json:"notes,omitempty"`
}

type BookingResponse struct {
	ID              string    `json:"id"`
	SaathiID        string    `json:"saathi_id"`
	SeekerID        string    `json:"seeker_id"`
	BookingDate     string    `json:"booking_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	DurationHours   int       `json:"duration_hours"`
	TotalAmount     int       `json:"total_amount"`
	MeetingLocation string    `json:"meeting_location"`
	Notes           *string   `json:"notes,omitempty"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	CreatedAt       time.Time `json:"created_at"`
}

type SaathiResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	HourlyRate  int    `json:"hourly_rate"`
	IsAvailable bool   `json:"is_available"`
	IsVerified  bool   `json:"is_verified"`
}

type SaathiSettingsRequest struct {
	HourlyRate  int  `json:"hourly_rate"`
	IsAvailable bool `json:"is_available"`
}
