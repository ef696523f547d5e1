package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"smartparking/internal/auth"
	"smartparking/internal/entities"
	httperrors "smartparking/internal/errors"
	"smartparking/internal/logger"
	"smartparking/internal/service"
	"smartparking/internal/view"
)

type DashboardHandler struct {
	Service  *service.DashboardService
	Sessions *service.SessionManager
}

func NewDashboardHandler(svc *service.DashboardService, sessions *service.SessionManager) *DashboardHandler {
	return &DashboardHandler{Service: svc, Sessions: sessions}
}

// session resolves the request's UserSession and makes sure its dashboard
// state is live. Initialization is lazy so it runs on the first dashboard
// load even when another page created the session entry.
func (h *DashboardHandler) session(r *http.Request) *service.UserSession {
	s, _ := h.Sessions.GetOrCreate(auth.SessionToken(r))
	h.Service.EnsureStarted(s)
	return s
}

func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)

	status, slots := s.SlotState()
	active, mins, charge := s.ActiveBooking()

	history, err := h.Service.History(s)
	if err != nil {
		logger.Log.WithField("err", err).Warn("fetching booking history")
	}

	data := view.DashboardData{
		UserName:  s.UserName(),
		Flash:     s.PopFlash(),
		ActiveTab: r.URL.Query().Get("tab"),
		Status:    status,
		Slots:     slots,
		Active:    view.NewActiveBookingView(active, mins, charge),
		History:   view.HistoryRows(history),
		Payment:   view.NewPaymentView(s.PendingPayment()),
		Receipt:   view.NewReceiptView(s.Receipt()),
	}
	if err := view.RenderDashboardPage(w, data); err != nil {
		logger.Log.WithField("err", err).Error("rendering dashboard page")
	}
}

// Book requests a slot. Success opens the payment modal on the next render;
// failure surfaces the server's message.
func (h *DashboardHandler) Book(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	if err := h.Service.BookSlot(s); err != nil {
		s.SetFlash(httperrors.UserMessage(err, "Failed to book slot"))
	}
	h.redirect(w, r, "slots")
}

func (h *DashboardHandler) EntryGate(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	msg, err := h.Service.EntryGate(s)
	if err != nil {
		s.SetFlash(httperrors.UserMessage(err, "Failed to trigger entry gate"))
	} else if msg != "" {
		s.SetFlash(msg)
	} else {
		s.SetFlash("Entry gate triggered")
	}
	h.redirect(w, r, "booking")
}

func (h *DashboardHandler) ExitGate(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	if err := h.Service.ExitGate(s); err != nil {
		s.SetFlash(httperrors.UserMessage(err, "Failed to trigger exit gate"))
	}
	h.redirect(w, r, "booking")
}

// CompletePayment runs the pending payment to verification. Failures leave
// the modal open with a message; success swaps it for the receipt modal.
func (h *DashboardHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	_, err := h.Service.CompletePayment(s)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrPaymentNotStarted):
		s.SetFlash("Payment initiation failed. Please try again.")
	case errors.Is(err, service.ErrPaymentNotVerified):
		s.SetFlash("Payment verification failed. Please try again.")
	case errors.Is(err, service.ErrNoPendingPayment):
		s.SetFlash("No payment in progress.")
	default:
		s.SetFlash(httperrors.UserMessage(err, "Error processing payment. Please try again."))
	}
	h.redirect(w, r, "slots")
}

// CloseModals dismisses every modal, matching the shared close control.
func (h *DashboardHandler) CloseModals(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	s.CloseModals()
	h.redirect(w, r, r.URL.Query().Get("tab"))
}

// ShowReceipt renders the history tab with a receipt modal built from one
// booking's own data.
func (h *DashboardHandler) ShowReceipt(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}

	history, err := h.Service.History(s)
	if err != nil {
		s.SetFlash(httperrors.UserMessage(err, "Could not load receipt"))
		h.redirect(w, r, "history")
		return
	}

	var record *entities.BookingRecord
	for i := range history {
		if history[i].BookingID == id {
			record = &history[i]
			break
		}
	}
	if record == nil {
		s.SetFlash("Receipt not found")
		h.redirect(w, r, "history")
		return
	}

	receipt := receiptForRecord(record)
	status, slots := s.SlotState()
	active, mins, charge := s.ActiveBooking()
	data := view.DashboardData{
		UserName:  s.UserName(),
		ActiveTab: "history",
		Status:    status,
		Slots:     slots,
		Active:    view.NewActiveBookingView(active, mins, charge),
		History:   view.HistoryRows(history),
		Receipt:   view.NewReceiptView(receipt),
	}
	if err := view.RenderDashboardPage(w, data); err != nil {
		logger.Log.WithField("err", err).Error("rendering receipt")
	}
}

// receiptForRecord synthesizes a receipt from a history row: the deposit
// for a booking still open, the final parking fee once closed.
func receiptForRecord(r *entities.BookingRecord) *entities.Receipt {
	purpose := entities.PurposeBookingDeposit
	issued := r.EntryTime
	if r.Closed() {
		purpose = entities.PurposeParkingFee
		issued = *r.ExitTime
	}
	return &entities.Receipt{
		IssuedAt: issued,
		Purpose:  purpose,
		Amount:   r.Amount,
		Status:   "Paid",
	}
}

func (h *DashboardHandler) redirect(w http.ResponseWriter, r *http.Request, tab string) {
	target := "/dashboard"
	if tab != "" {
		target += "?tab=" + tab
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
