package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"smartparking/internal/auth"
	httperrors "smartparking/internal/errors"
	"smartparking/internal/logger"
	"smartparking/internal/service"
	"smartparking/internal/view"
)

type AdminHandler struct {
	Service  *service.AdminService
	Sessions *service.SessionManager
}

func NewAdminHandler(svc *service.AdminService, sessions *service.SessionManager) *AdminHandler {
	return &AdminHandler{Service: svc, Sessions: sessions}
}

func (h *AdminHandler) Show(w http.ResponseWriter, r *http.Request) {
	token := auth.SessionToken(r)
	s, _ := h.Sessions.GetOrCreate(token)

	slots, err := h.Service.ListSlots(token)
	if err != nil {
		logger.Log.WithField("err", err).Warn("fetching admin slots")
	}
	users, err := h.Service.ListUsers(token)
	if err != nil {
		logger.Log.WithField("err", err).Warn("fetching admin users")
	}
	bookings, err := h.Service.ListBookings(token)
	if err != nil {
		logger.Log.WithField("err", err).Warn("fetching admin bookings")
	}

	data := view.AdminData{
		Flash:     s.PopFlash(),
		ActiveTab: r.URL.Query().Get("tab"),
		Slots:     slots,
		Users:     users,
		Bookings:  view.AdminBookingRows(bookings),
	}
	if err := view.RenderAdminPage(w, data); err != nil {
		logger.Log.WithField("err", err).Error("rendering admin page")
	}
}

// ToggleSlot inverts one slot's block state and surfaces the server's
// message.
func (h *AdminHandler) ToggleSlot(w http.ResponseWriter, r *http.Request) {
	token := auth.SessionToken(r)
	s, _ := h.Sessions.GetOrCreate(token)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid slot id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	currentStatus := r.PostFormValue("status")

	msg, err := h.Service.ToggleSlot(token, id, currentStatus)
	if err != nil {
		s.SetFlash(httperrors.UserMessage(err, "Could not update slot"))
	} else if msg != "" {
		s.SetFlash(msg)
	} else {
		s.SetFlash("Slot status updated")
	}
	http.Redirect(w, r, "/admin?tab=slots", http.StatusSeeOther)
}
