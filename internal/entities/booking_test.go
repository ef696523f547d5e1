package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smartparking/internal/entities"
)

func TestDurationMins(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name  string
		entry time.Time
		want  int
	}{
		{
			name:  "95 minutes parked",
			entry: now.Add(-95 * time.Minute),
			want:  95,
		},
		{
			name:  "partial minute floors down",
			entry: now.Add(-95*time.Minute - 59*time.Second),
			want:  95,
		},
		{
			name:  "just entered",
			entry: now.Add(-30 * time.Second),
			want:  0,
		},
		{
			name:  "entry time in the future clamps to zero",
			entry: now.Add(2 * time.Minute),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &entities.ActiveBooking{EntryTime: tt.entry}
			assert.Equal(t, tt.want, b.DurationMins(now))
		})
	}
}

func TestRunningChargeIsOneRupeePerMinute(t *testing.T) {
	now := time.Now()
	b := &entities.ActiveBooking{EntryTime: now.Add(-95 * time.Minute)}
	assert.Equal(t, 95, b.RunningCharge(now))
}

func TestToggleAction(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{entities.SlotBlocked, "unblock"},
		{entities.SlotAvailable, "block"},
		{entities.SlotOccupied, "block"},
		{entities.SlotBooked, "block"},
		{"", "block"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, entities.ToggleAction(tt.status), "status %q", tt.status)
	}
}

func TestReceiptTitle(t *testing.T) {
	deposit := &entities.Receipt{Purpose: entities.PurposeBookingDeposit}
	assert.Equal(t, "Booking Receipt", deposit.Title())

	fee := &entities.Receipt{Purpose: entities.PurposeParkingFee}
	assert.Equal(t, "Payment Receipt", fee.Title())
}
