package model

import "time"

const (
	ReservationBooked    = "booked"
	ReservationPending   = "pending"
	ReservationCancelled = "cancelled"
)

// Reservation holds a court for a half-open UTC interval. Booked and
// pending reservations block availability; cancelled ones do not.
type Reservation struct {
	ID            string
	CourtID       string
	CustomerName  string
	CustomerEmail string
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	PriceCents    int
	CancelledAt   *time.Time
	CancelReason  string
	CreatedAt     time.Time
}

// SlotLock is a short-lived hold on a court interval, taken while a
// customer completes checkout. Unexpired locks block availability exactly
// like reservations.
type SlotLock struct {
	ID        string
	CourtID   string
	StartTime time.Time
	EndTime   time.Time
	ExpiresAt time.Time
	CreatedAt time.Time
}
