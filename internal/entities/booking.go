package entities

import "time"

// EntryTimeLayout is the timestamp format the backend uses for booking times.
const EntryTimeLayout = "2006-01-02 15:04:05"

// ActiveBooking is the user's open booking, if any. The backend signals
// "no active booking" with a 404, which the client maps to a sentinel error.
type ActiveBooking struct {
	BookingID int       `json:"booking_id"`
	SlotID    int       `json:"slot_id"`
	EntryTime time.Time `json:"-"`
	Deposit   float64   `json:"deposit"`
}

// DurationMins returns whole elapsed minutes since entry, floored.
func (b *ActiveBooking) DurationMins(now time.Time) int {
	mins := int(now.Sub(b.EntryTime) / time.Minute)
	if mins < 0 {
		return 0
	}
	return mins
}

// RunningCharge is the displayed estimate while parked, one rupee per minute.
func (b *ActiveBooking) RunningCharge(now time.Time) int {
	return b.DurationMins(now)
}

// BookingRecord is one row of the user's booking history. Open bookings
// have no exit time and no final duration.
type BookingRecord struct {
	BookingID    int        `json:"booking_id"`
	SlotID       int        `json:"slot_id"`
	EntryTime    time.Time  `json:"-"`
	ExitTime     *time.Time `json:"-"`
	DurationMins float64    `json:"duration_mins"`
	Amount       float64    `json:"amount"`
}

// Closed reports whether the booking has a recorded exit.
func (r *BookingRecord) Closed() bool {
	return r.ExitTime != nil
}

// AdminBooking is a booking row in the operator listing, joined with the
// owning user's name by the backend.
type AdminBooking struct {
	SlotID    int        `json:"slot_id"`
	UserName  string     `json:"user_name"`
	EntryTime time.Time  `json:"-"`
	ExitTime  *time.Time `json:"-"`
	Amount    float64    `json:"amount"`
}
