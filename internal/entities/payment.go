package entities

import "time"

const (
	PurposeBookingDeposit = "Booking Deposit"
	PurposeParkingFee     = "Parking Fee"

	// DepositAmount is the fixed upfront charge taken at booking time.
	DepositAmount = 100
)

// PendingPayment is the ephemeral amount/purpose pair shown in the payment
// modal. It exists only between a booking or exit-gate action and the
// verification of its payment.
type PendingPayment struct {
	Amount  float64
	Purpose string
}

// Receipt is synthesized client-side after a verified payment; the
// timestamp is the client's, not server-confirmed.
type Receipt struct {
	Number   string
	IssuedAt time.Time
	Purpose  string
	Amount   float64
	Status   string
}

// Title distinguishes booking receipts from plain payment receipts.
func (r *Receipt) Title() string {
	if r.Purpose == PurposeBookingDeposit {
		return "Booking Receipt"
	}
	return "Payment Receipt"
}
