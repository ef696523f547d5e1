package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"smartparking/internal/auth"
)

// NewRouter wires the three page controllers: auth, dashboard, admin.
// Dashboard and admin routes sit behind the session middleware.
func NewRouter(authHandler *AuthHandler, dashboardHandler *DashboardHandler, adminHandler *AdminHandler, cookies auth.Cookies) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/", http.RedirectHandler("/dashboard", http.StatusFound))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.Handle("", auth.RedirectIfAuthenticated(cookies)(http.HandlerFunc(authHandler.ShowAuthPage))).Methods("GET")
	authRouter.HandleFunc("/login", authHandler.Login).Methods("POST")
	authRouter.HandleFunc("/register", authHandler.Register).Methods("POST")
	authRouter.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	dashboard := r.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(auth.RequireSession(cookies))
	dashboard.HandleFunc("", dashboardHandler.Show).Methods("GET")
	dashboard.HandleFunc("/book", dashboardHandler.Book).Methods("POST")
	dashboard.HandleFunc("/entry-gate", dashboardHandler.EntryGate).Methods("POST")
	dashboard.HandleFunc("/exit-gate", dashboardHandler.ExitGate).Methods("POST")
	dashboard.HandleFunc("/payment/complete", dashboardHandler.CompletePayment).Methods("POST")
	dashboard.HandleFunc("/modals/close", dashboardHandler.CloseModals).Methods("POST")
	dashboard.HandleFunc("/receipt/{id}", dashboardHandler.ShowReceipt).Methods("GET")

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.RequireSession(cookies))
	admin.HandleFunc("", adminHandler.Show).Methods("GET")
	admin.HandleFunc("/slots/{id}/toggle", adminHandler.ToggleSlot).Methods("POST")

	return r
}
