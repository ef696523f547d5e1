package api

import (
	"net/http"

	"smartparking/internal/auth"
	"smartparking/internal/backend"
	"smartparking/internal/entities"
	httperrors "smartparking/internal/errors"
	"smartparking/internal/logger"
	"smartparking/internal/service"
	"smartparking/internal/view"
)

type AuthHandler struct {
	Client   *backend.Client
	Sessions *service.SessionManager
	Cookies  auth.Cookies
}

func NewAuthHandler(client *backend.Client, sessions *service.SessionManager, cookies auth.Cookies) *AuthHandler {
	return &AuthHandler{Client: client, Sessions: sessions, Cookies: cookies}
}

func (h *AuthHandler) ShowAuthPage(w http.ResponseWriter, r *http.Request) {
	h.renderAuth(w, view.AuthData{})
}

// Login exchanges the form credentials for a token. Failure of any kind
// keeps the user on the auth page with a message; only success navigates.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	token, err := h.Client.Login(email, password)
	if err != nil {
		logger.Log.WithField("err", err).Info("login failed")
		msg := "Login failed. Please check your network connection and try again."
		if _, ok := err.(*httperrors.HTTPError); ok {
			msg = "Login failed: " + httperrors.UserMessage(err, "Invalid credentials")
		}
		h.renderAuth(w, view.AuthData{Flash: msg})
		return
	}

	h.Cookies.Set(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Register creates a user. Success re-renders the auth page with a cleared
// registration form and focus on the login email field.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	req := entities.RegistrationRequest{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Mobile:   r.PostFormValue("mobile"),
		Vehicle:  r.PostFormValue("vehicle"),
		Password: r.PostFormValue("password"),
	}

	if _, err := h.Client.Register(req); err != nil {
		logger.Log.WithField("err", err).Info("registration failed")
		msg := "Registration failed. Please check your network connection and try again."
		if _, ok := err.(*httperrors.HTTPError); ok {
			msg = "Registration failed: " + httperrors.UserMessage(err, "Please try again.")
		}
		h.renderAuth(w, view.AuthData{Flash: msg})
		return
	}

	h.renderAuth(w, view.AuthData{
		Flash:      "Registration successful! Please login with your credentials.",
		FocusLogin: true,
	})
}

// Logout drops the session and its timers and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, err := h.Cookies.Token(r); err == nil {
		h.Sessions.Delete(token)
	}
	h.Cookies.Clear(w)
	http.Redirect(w, r, "/auth", http.StatusFound)
}

func (h *AuthHandler) renderAuth(w http.ResponseWriter, data view.AuthData) {
	if err := view.RenderAuthPage(w, data); err != nil {
		logger.Log.WithField("err", err).Error("rendering auth page")
	}
}
