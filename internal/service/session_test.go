package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartparking/internal/entities"
)

func TestSessionManagerGetOrCreate(t *testing.T) {
	m := NewSessionManager()

	first, created := m.GetOrCreate("tok")
	assert.True(t, created)

	second, created := m.GetOrCreate("tok")
	assert.False(t, created)
	assert.Same(t, first, second)

	assert.Same(t, first, m.Get("tok"))
	assert.Nil(t, m.Get("other"))
}

func TestSessionManagerDeleteStopsSession(t *testing.T) {
	m := NewSessionManager()
	s, _ := m.GetOrCreate("tok")

	stopped := false
	s.replaceDurationTick(func() { stopped = true })

	m.Delete("tok")
	assert.Nil(t, m.Get("tok"))
	assert.True(t, stopped)
}

func TestSessionManagerSweep(t *testing.T) {
	m := NewSessionManager()
	m.GetOrCreate("fresh")
	stale, _ := m.GetOrCreate("stale")

	stopped := false
	stale.replaceDurationTick(func() { stopped = true })

	removed := m.Sweep(func(token string) bool { return token == "stale" })

	assert.Equal(t, 1, removed)
	assert.Nil(t, m.Get("stale"))
	assert.NotNil(t, m.Get("fresh"))
	assert.True(t, stopped)
}

func TestCloseModalsHidesEverything(t *testing.T) {
	s := newUserSession("tok")
	s.setPendingPayment(100, entities.PurposeBookingDeposit)
	s.setReceipt(&entities.Receipt{Status: "Paid"})

	s.CloseModals()

	assert.Nil(t, s.PendingPayment())
	assert.Nil(t, s.Receipt())
}

func TestSetReceiptClosesPaymentModal(t *testing.T) {
	s := newUserSession("tok")
	s.setPendingPayment(45, entities.PurposeParkingFee)

	s.setReceipt(&entities.Receipt{Status: "Paid"})

	assert.Nil(t, s.PendingPayment())
	require.NotNil(t, s.Receipt())
}

func TestFlashIsOneShot(t *testing.T) {
	s := newUserSession("tok")
	s.SetFlash("Slot booked successfully!")

	assert.Equal(t, "Slot booked successfully!", s.PopFlash())
	assert.Empty(t, s.PopFlash())
}

func TestReplaceDurationTickCancelsPrevious(t *testing.T) {
	s := newUserSession("tok")

	firstCancelled := false
	s.replaceDurationTick(func() { firstCancelled = true })
	assert.True(t, s.tickerRunning())

	s.replaceDurationTick(func() {})
	assert.True(t, firstCancelled)
	assert.True(t, s.tickerRunning())

	s.stopDurationTick()
	assert.False(t, s.tickerRunning())
}
