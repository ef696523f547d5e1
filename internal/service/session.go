package service

import (
	"sync"

	"smartparking/internal/entities"
)

// UserSession mirrors one browser session: the bearer token plus the UI
// state that in the original client lived in page-level closures. All
// fields are guarded by mu; pollers and handlers touch them concurrently.
type UserSession struct {
	Token string

	mu            sync.Mutex
	userName      string
	slots         []entities.Slot
	slotStatus    *entities.SlotStatus
	active        *entities.ActiveBooking
	durationMins  int
	runningCharge int
	pending       *entities.PendingPayment
	receipt       *entities.Receipt
	flash         string

	// cancelTick stops the duration ticker. Invariant: at most one ticker
	// alive per session; replaced via cancel-then-start, never stacked.
	cancelTick func()
	cancelPoll func()
	started    bool
}

func newUserSession(token string) *UserSession {
	return &UserSession{Token: token}
}

func (s *UserSession) UserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userName
}

func (s *UserSession) setUserName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userName = name
}

// SlotState returns the latest slot snapshot.
func (s *UserSession) SlotState() (*entities.SlotStatus, []entities.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slotStatus, s.slots
}

func (s *UserSession) setSlotState(status *entities.SlotStatus, slots []entities.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slotStatus = status
	s.slots = slots
}

// ActiveBooking returns the open booking snapshot with its last computed
// duration and running charge, nil when there is none.
func (s *UserSession) ActiveBooking() (*entities.ActiveBooking, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.durationMins, s.runningCharge
}

func (s *UserSession) setActiveBooking(b *entities.ActiveBooking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = b
}

func (s *UserSession) setDuration(mins, charge int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.durationMins = mins
	s.runningCharge = charge
}

func (s *UserSession) clearActiveBooking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
	s.durationMins = 0
	s.runningCharge = 0
}

// PendingPayment returns the payment the modal is showing, nil when no
// modal is open.
func (s *UserSession) PendingPayment() *entities.PendingPayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *UserSession) setPendingPayment(amount float64, purpose string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &entities.PendingPayment{Amount: amount, Purpose: purpose}
}

func (s *UserSession) Receipt() *entities.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.receipt
}

func (s *UserSession) setReceipt(r *entities.Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.receipt = r
}

// CloseModals hides every modal unconditionally, matching the shared close
// control of the original UI.
func (s *UserSession) CloseModals() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.receipt = nil
}

// SetFlash stores a one-shot message for the next page render.
func (s *UserSession) SetFlash(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = msg
}

// PopFlash returns and clears the pending message.
func (s *UserSession) PopFlash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flash
	s.flash = ""
	return msg
}

// replaceDurationTick cancels the previous duration ticker, if any, before
// installing the new cancel func.
func (s *UserSession) replaceDurationTick(cancel func()) {
	s.mu.Lock()
	prev := s.cancelTick
	s.cancelTick = cancel
	s.mu.Unlock()
	if prev != nil {
		prev()
	}
}

// stopDurationTick cancels the duration ticker and leaves none running.
func (s *UserSession) stopDurationTick() {
	s.replaceDurationTick(nil)
}

// tickerRunning reports whether a duration ticker is currently alive.
func (s *UserSession) tickerRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelTick != nil
}

// beginStart reports whether this is the session's first dashboard load.
// The initial state loads run exactly once per session.
func (s *UserSession) beginStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return false
	}
	s.started = true
	return true
}

// beginPoll installs the poller cancel func. Returns false when a poller is
// already running so callers never start a second one.
func (s *UserSession) beginPoll(cancel func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelPoll != nil {
		return false
	}
	s.cancelPoll = cancel
	return true
}

// Stop halts the session's pollers and duration ticker.
func (s *UserSession) Stop() {
	s.mu.Lock()
	poll := s.cancelPoll
	tick := s.cancelTick
	s.cancelPoll = nil
	s.cancelTick = nil
	s.mu.Unlock()
	if poll != nil {
		poll()
	}
	if tick != nil {
		tick()
	}
}

// SessionManager holds the live sessions keyed by token. A valid cookie
// with no entry here (after a restart) gets a fresh session lazily.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*UserSession
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*UserSession)}
}

func (m *SessionManager) Get(token string) *UserSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[token]
}

func (m *SessionManager) GetOrCreate(token string) (*UserSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		return s, false
	}
	s := newUserSession(token)
	m.sessions[token] = s
	return s, true
}

// Delete removes a session and stops its timers.
func (m *SessionManager) Delete(token string) {
	m.mu.Lock()
	s := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()
	if s != nil {
		s.Stop()
	}
}

// Sweep drops every session whose token the predicate rejects and returns
// how many were removed.
func (m *SessionManager) Sweep(expired func(token string) bool) int {
	m.mu.Lock()
	var stale []*UserSession
	for token, s := range m.sessions {
		if expired(token) {
			stale = append(stale, s)
			delete(m.sessions, token)
		}
	}
	m.mu.Unlock()
	for _, s := range stale {
		s.Stop()
	}
	return len(stale)
}
