package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"smartparking/internal/backend"
	"smartparking/internal/entities"
	"smartparking/internal/logger"
)

var (
	// ErrPaymentNotStarted means the backend answered without an order id.
	ErrPaymentNotStarted = errors.New("payment initiation failed")
	// ErrPaymentNotVerified means the backend did not confirm the payment.
	ErrPaymentNotVerified = errors.New("payment verification failed")
	// ErrNoPendingPayment means a payment was completed with no modal open.
	ErrNoPendingPayment = errors.New("no payment in progress")
)

// DashboardService drives the booking lifecycle for one user:
// no booking -> booked (deposit due) -> parked -> exit fee due -> no booking.
// It owns the per-session refresh loops that in the original UI were
// browser intervals.
type DashboardService struct {
	client  *backend.Client
	gateway Gateway

	slotEvery    time.Duration
	bookingEvery time.Duration
}

func NewDashboardService(client *backend.Client, gateway Gateway, slotEvery, bookingEvery time.Duration) *DashboardService {
	return &DashboardService{
		client:       client,
		gateway:      gateway,
		slotEvery:    slotEvery,
		bookingEvery: bookingEvery,
	}
}

// LoadUser fetches the profile and remembers the display name.
func (d *DashboardService) LoadUser(s *UserSession) error {
	user, err := d.client.Me(s.Token)
	if err != nil {
		return err
	}
	s.setUserName(user.Name)
	return nil
}

// RefreshSlots pulls the aggregate counts and the per-slot list into the
// session snapshot.
func (d *DashboardService) RefreshSlots(s *UserSession) error {
	status, err := d.client.SlotStatus(s.Token)
	if err != nil {
		return err
	}
	slots, err := d.client.Slots(s.Token)
	if err != nil {
		return err
	}
	s.setSlotState(status, slots)
	return nil
}

// RefreshActiveBooking pulls the user's open booking. The backend's 404 is
// the "no active booking" outcome: it clears the snapshot and stops the
// duration ticker. Any real failure also stops the ticker so a dead booking
// never keeps counting.
func (d *DashboardService) RefreshActiveBooking(s *UserSession) error {
	booking, err := d.client.ActiveBooking(s.Token)
	if errors.Is(err, backend.ErrNoActiveBooking) {
		s.clearActiveBooking()
		s.stopDurationTick()
		return nil
	}
	if err != nil {
		s.stopDurationTick()
		return err
	}
	s.setActiveBooking(booking)
	d.startDurationTick(s, booking)
	return nil
}

// startDurationTick computes duration and running charge once immediately,
// then keeps recomputing on the booking interval until cancelled. The
// previous ticker is always cancelled first.
func (d *DashboardService) startDurationTick(s *UserSession, b *entities.ActiveBooking) {
	now := time.Now()
	s.setDuration(b.DurationMins(now), b.RunningCharge(now))

	ctx, cancel := context.WithCancel(context.Background())
	s.replaceDurationTick(cancel)
	go func() {
		ticker := time.NewTicker(d.bookingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := time.Now()
				s.setDuration(b.DurationMins(now), b.RunningCharge(now))
			}
		}
	}()
}

// EnsureStarted brings the session to a renderable dashboard: the profile
// name, an initial slot and booking snapshot, and the background pollers.
// Called on every dashboard load. The snapshot loads run once per session
// no matter which page created it, the profile is refetched until a name
// is cached, and StartPolling is idempotent.
func (d *DashboardService) EnsureStarted(s *UserSession) {
	if s.UserName() == "" {
		if err := d.LoadUser(s); err != nil {
			logger.Log.WithField("err", err).Warn("loading user profile")
		}
	}
	if s.beginStart() {
		if err := d.RefreshSlots(s); err != nil {
			logger.Log.WithField("err", err).Warn("initial slot refresh")
		}
		if err := d.RefreshActiveBooking(s); err != nil {
			logger.Log.WithField("err", err).Warn("initial active booking refresh")
		}
	}
	d.StartPolling(s)
}

// StartPolling launches the session's background refreshes: slots on the
// slot interval, active booking on the booking interval. Idempotent per
// session.
func (d *DashboardService) StartPolling(s *UserSession) {
	ctx, cancel := context.WithCancel(context.Background())
	if !s.beginPoll(cancel) {
		cancel()
		return
	}
	go func() {
		slots := time.NewTicker(d.slotEvery)
		bookings := time.NewTicker(d.bookingEvery)
		defer slots.Stop()
		defer bookings.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-slots.C:
				if err := d.RefreshSlots(s); err != nil {
					logger.Log.WithField("err", err).Warn("slot refresh failed")
				}
			case <-bookings.C:
				if err := d.RefreshActiveBooking(s); err != nil {
					logger.Log.WithField("err", err).Warn("active booking refresh failed")
				}
			}
		}
	}()
}

// History fetches the user's booking history, open bookings included.
func (d *DashboardService) History(s *UserSession) ([]entities.BookingRecord, error) {
	return d.client.BookingHistory(s.Token)
}

// BookSlot requests a booking. Success opens the payment modal with the
// fixed deposit; either way the slot snapshot is refreshed afterward.
func (d *DashboardService) BookSlot(s *UserSession) error {
	_, err := d.client.BookSlot(s.Token)
	if err == nil {
		s.setPendingPayment(entities.DepositAmount, entities.PurposeBookingDeposit)
	}
	if rerr := d.RefreshSlots(s); rerr != nil {
		logger.Log.WithField("err", rerr).Warn("slot refresh after booking failed")
	}
	return err
}

// EntryGate opens the entry barrier and returns the server's message.
// Slots and the active booking refresh whether or not the gate opened.
func (d *DashboardService) EntryGate(s *UserSession) (string, error) {
	msg, err := d.client.EntryGate(s.Token)
	d.refreshAfterGate(s)
	return msg, err
}

// ExitGate opens the exit barrier. Success carries the server-computed fee
// into the payment modal.
func (d *DashboardService) ExitGate(s *UserSession) error {
	res, err := d.client.ExitGate(s.Token)
	if err == nil {
		s.setPendingPayment(res.Fee, entities.PurposeParkingFee)
	}
	d.refreshAfterGate(s)
	return err
}

func (d *DashboardService) refreshAfterGate(s *UserSession) {
	if err := d.RefreshSlots(s); err != nil {
		logger.Log.WithField("err", err).Warn("slot refresh after gate failed")
	}
	if err := d.RefreshActiveBooking(s); err != nil {
		logger.Log.WithField("err", err).Warn("active booking refresh after gate failed")
	}
}

// CompletePayment runs the pending payment through start, checkout, and
// verification. On success the modal closes, a receipt is synthesized with
// a client-side timestamp, and the slot and booking snapshots refresh.
// On failure the modal stays open.
func (d *DashboardService) CompletePayment(s *UserSession) (*entities.Receipt, error) {
	pending := s.PendingPayment()
	if pending == nil {
		return nil, ErrNoPendingPayment
	}

	orderID, err := d.client.StartPayment(s.Token, pending.Amount, pending.Purpose)
	if err != nil {
		return nil, err
	}
	if orderID == "" {
		return nil, ErrPaymentNotStarted
	}

	if err := d.gateway.Checkout(orderID, pending.Amount, pending.Purpose); err != nil {
		return nil, err
	}

	verified, err := d.client.VerifyPayment(s.Token, pending.Amount, pending.Purpose)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, ErrPaymentNotVerified
	}

	receipt := &entities.Receipt{
		Number:   uuid.NewString(),
		IssuedAt: time.Now(),
		Purpose:  pending.Purpose,
		Amount:   pending.Amount,
		Status:   "Paid",
	}
	s.setReceipt(receipt)

	if err := d.RefreshSlots(s); err != nil {
		logger.Log.WithField("err", err).Warn("slot refresh after payment failed")
	}
	if err := d.RefreshActiveBooking(s); err != nil {
		logger.Log.WithField("err", err).Warn("active booking refresh after payment failed")
	}
	return receipt, nil
}
