package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"smartparking/internal/entities"
	httperrors "smartparking/internal/errors"
)

// ErrNoActiveBooking is the defined outcome of the active-booking endpoint
// answering 404. It is normal control flow, not a failure.
var ErrNoActiveBooking = errors.New("no active booking")

// Client is the authenticated REST client for the parking backend. Every
// page controller goes through it: it attaches the bearer token, decodes
// JSON, and maps non-success responses to *httperrors.HTTPError carrying
// the server's message body.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(email, password string) (string, error) {
	req := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(http.MethodPost, "/api/login", "", req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", httperrors.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	return resp.Token, nil
}

// Register creates a new user and returns the server's message.
func (c *Client) Register(req entities.RegistrationRequest) (string, error) {
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.do(http.MethodPost, "/api/register", "", req, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", httperrors.NewHTTPError(http.StatusBadRequest, resp.Message)
	}
	return resp.Message, nil
}

func (c *Client) Me(token string) (*entities.User, error) {
	var user entities.User
	if err := c.do(http.MethodGet, "/api/user/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) SlotStatus(token string) (*entities.SlotStatus, error) {
	var status entities.SlotStatus
	if err := c.do(http.MethodGet, "/api/slots/status", token, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) Slots(token string) ([]entities.Slot, error) {
	var resp struct {
		Slots []entities.Slot `json:"slots"`
	}
	if err := c.do(http.MethodGet, "/api/slots", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Slots, nil
}

// BookSlot asks the backend to allocate a slot for the user and returns the
// server's confirmation message.
func (c *Client) BookSlot(token string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(http.MethodPost, "/api/book", token, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) EntryGate(token string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(http.MethodPost, "/api/entry-gate", token, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ExitGateResult carries the parking fee computed server-side when the exit
// gate opens.
type ExitGateResult struct {
	Message string  `json:"message"`
	Fee     float64 `json:"fee"`
}

func (c *Client) ExitGate(token string) (*ExitGateResult, error) {
	var resp ExitGateResult
	if err := c.do(http.MethodPost, "/api/exit-gate", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartPayment begins a payment and returns the gateway order id, empty when
// initiation failed.
func (c *Client) StartPayment(token string, amount float64, purpose string) (string, error) {
	req := map[string]interface{}{"amount": amount, "purpose": purpose}
	var resp struct {
		OrderID    string `json:"orderId"`
		OrderIDAlt string `json:"order_id"`
	}
	if err := c.do(http.MethodPost, "/api/payment/start", token, req, &resp); err != nil {
		return "", err
	}
	if resp.OrderID != "" {
		return resp.OrderID, nil
	}
	return resp.OrderIDAlt, nil
}

// VerifyPayment confirms a payment with the backend.
func (c *Client) VerifyPayment(token string, amount float64, purpose string) (bool, error) {
	req := map[string]interface{}{"amount": amount, "purpose": purpose}
	var resp struct {
		Verified bool   `json:"verified"`
		Message  string `json:"message"`
	}
	if err := c.do(http.MethodPost, "/api/payment/verify", token, req, &resp); err != nil {
		return false, err
	}
	return resp.Verified, nil
}

// ActiveBooking fetches the user's open booking. A 404 response maps to
// ErrNoActiveBooking.
func (c *Client) ActiveBooking(token string) (*entities.ActiveBooking, error) {
	var resp struct {
		BookingID int     `json:"booking_id"`
		SlotID    int     `json:"slot_id"`
		EntryTime string  `json:"entry_time"`
		Deposit   float64 `json:"deposit"`
	}
	err := c.do(http.MethodGet, "/api/bookings/active", token, nil, &resp)
	if err != nil {
		var he *httperrors.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusNotFound {
			return nil, ErrNoActiveBooking
		}
		return nil, err
	}
	entry, err := time.ParseInLocation(entities.EntryTimeLayout, resp.EntryTime, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing entry_time %q: %w", resp.EntryTime, err)
	}
	return &entities.ActiveBooking{
		BookingID: resp.BookingID,
		SlotID:    resp.SlotID,
		EntryTime: entry,
		Deposit:   resp.Deposit,
	}, nil
}

type bookingRecordWire struct {
	BookingID    int     `json:"booking_id"`
	SlotID       int     `json:"slot_id"`
	EntryTime    string  `json:"entry_time"`
	ExitTime     string  `json:"exit_time"`
	DurationMins float64 `json:"duration_mins"`
	Amount       float64 `json:"amount"`
}

// BookingHistory fetches the user's closed and open bookings, newest first.
func (c *Client) BookingHistory(token string) ([]entities.BookingRecord, error) {
	var resp struct {
		Bookings []bookingRecordWire `json:"bookings"`
	}
	if err := c.do(http.MethodGet, "/api/bookings/history", token, nil, &resp); err != nil {
		return nil, err
	}
	records := make([]entities.BookingRecord, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		entry, err := time.ParseInLocation(entities.EntryTimeLayout, b.EntryTime, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing entry_time %q: %w", b.EntryTime, err)
		}
		rec := entities.BookingRecord{
			BookingID:    b.BookingID,
			SlotID:       b.SlotID,
			EntryTime:    entry,
			DurationMins: b.DurationMins,
			Amount:       b.Amount,
		}
		if b.ExitTime != "" {
			exit, err := time.ParseInLocation(entities.EntryTimeLayout, b.ExitTime, time.Local)
			if err != nil {
				return nil, fmt.Errorf("parsing exit_time %q: %w", b.ExitTime, err)
			}
			rec.ExitTime = &exit
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) AdminSlots(token string) ([]entities.Slot, error) {
	var resp struct {
		Slots []entities.Slot `json:"slots"`
	}
	if err := c.do(http.MethodGet, "/api/admin/slots", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Slots, nil
}

// AdminToggleSlot issues the given block/unblock action for one slot and
// returns the server's message.
func (c *Client) AdminToggleSlot(token string, slotID int, action string) (string, error) {
	req := map[string]string{"action": action}
	var resp struct {
		Message string `json:"message"`
	}
	path := fmt.Sprintf("/api/admin/slots/%d", slotID)
	if err := c.do(http.MethodPut, path, token, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) AdminUsers(token string) ([]entities.User, error) {
	var resp struct {
		Users []entities.User `json:"users"`
	}
	if err := c.do(http.MethodGet, "/api/admin/users", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

type adminBookingWire struct {
	SlotID    int     `json:"slot_id"`
	UserName  string  `json:"user_name"`
	EntryTime string  `json:"entry_time"`
	ExitTime  string  `json:"exit_time"`
	Amount    float64 `json:"amount"`
}

func (c *Client) AdminBookings(token string) ([]entities.AdminBooking, error) {
	var resp struct {
		Bookings []adminBookingWire `json:"bookings"`
	}
	if err := c.do(http.MethodGet, "/api/admin/bookings", token, nil, &resp); err != nil {
		return nil, err
	}
	bookings := make([]entities.AdminBooking, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		entry, err := time.ParseInLocation(entities.EntryTimeLayout, b.EntryTime, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing entry_time %q: %w", b.EntryTime, err)
		}
		booking := entities.AdminBooking{
			SlotID:    b.SlotID,
			UserName:  b.UserName,
			EntryTime: entry,
			Amount:    b.Amount,
		}
		if b.ExitTime != "" {
			exit, err := time.ParseInLocation(entities.EntryTimeLayout, b.ExitTime, time.Local)
			if err != nil {
				return nil, fmt.Errorf("parsing exit_time %q: %w", b.ExitTime, err)
			}
			booking.ExitTime = &exit
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// do performs one backend request. Non-2xx responses become *HTTPError with
// whatever message body the server sent; transport errors are wrapped.
func (c *Client) do(method, path, token string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var body struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		return httperrors.NewHTTPError(resp.StatusCode, body.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
