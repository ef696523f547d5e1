package backend_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartparking/internal/backend"
	"smartparking/internal/entities"
	httperrors "smartparking/internal/errors"
)

const testToken = "test-token"

func newClient(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL, 5*time.Second)
}

func TestBearerHeaderOnAuthenticatedCalls(t *testing.T) {
	var gotAuth string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"total": 10, "available": 4, "occupied": 6})
	})

	status, err := client.SlotStatus(testToken)
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+testToken, gotAuth)
	assert.Equal(t, &entities.SlotStatus{Total: 10, Available: 4, Occupied: 6}, status)
}

func TestLogin(t *testing.T) {
	t.Run("success returns token", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/login", r.URL.Path)
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "a@b.c", req["email"])
			json.NewEncoder(w).Encode(map[string]string{"token": "jwt-token"})
		})

		token, err := client.Login("a@b.c", "secret")
		require.NoError(t, err)
		assert.Equal(t, "jwt-token", token)
	})

	t.Run("invalid credentials surface the server message", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
		})

		_, err := client.Login("a@b.c", "wrong")
		require.Error(t, err)
		he, ok := err.(*httperrors.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "Invalid credentials", he.Message)
	})

	t.Run("ok response without a token is a failure", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		})

		_, err := client.Login("a@b.c", "secret")
		require.Error(t, err)
	})
}

func TestActiveBooking(t *testing.T) {
	t.Run("404 maps to ErrNoActiveBooking", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{"active_booking": nil})
		})

		_, err := client.ActiveBooking(testToken)
		assert.ErrorIs(t, err, backend.ErrNoActiveBooking)
	})

	t.Run("success parses the entry time", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"booking_id": 7,
				"slot_id":    3,
				"entry_time": "2026-03-14 10:25:00",
				"deposit":    100.0,
			})
		})

		booking, err := client.ActiveBooking(testToken)
		require.NoError(t, err)
		assert.Equal(t, 7, booking.BookingID)
		assert.Equal(t, 3, booking.SlotID)
		assert.Equal(t, 100.0, booking.Deposit)
		want := time.Date(2026, 3, 14, 10, 25, 0, 0, time.Local)
		assert.True(t, booking.EntryTime.Equal(want))
	})
}

func TestBookSlotErrorMessage(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "No available slots."})
	})

	_, err := client.BookSlot(testToken)
	require.Error(t, err)
	assert.Equal(t, "No available slots.", httperrors.UserMessage(err, "fallback"))
}

func TestExitGateReturnsFee(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(map[string]interface{}{"message": "Exit gate opened!", "fee": 45.0})
	})

	res, err := client.ExitGate(testToken)
	require.NoError(t, err)
	assert.Equal(t, 45.0, res.Fee)
	assert.Equal(t, "Exit gate opened!", res.Message)
}

func TestStartPaymentAcceptsBothOrderIDKeys(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
		want string
	}{
		{"camelCase key", map[string]string{"orderId": "ord-1"}, "ord-1"},
		{"snake_case key", map[string]string{"order_id": "ord-2"}, "ord-2"},
		{"missing id", map[string]string{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.body)
			})
			orderID, err := client.StartPayment(testToken, 100, entities.PurposeBookingDeposit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, orderID)
		})
	}
}

func TestBookingHistoryOpenAndClosed(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"bookings": []map[string]interface{}{
				{"booking_id": 2, "slot_id": 5, "entry_time": "2026-03-14 10:00:00", "amount": 100.0},
				{"booking_id": 1, "slot_id": 4, "entry_time": "2026-03-13 09:00:00", "exit_time": "2026-03-13 10:30:00", "duration_mins": 90.0, "amount": 180.0},
			},
		})
	})

	records, err := client.BookingHistory(testToken)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.False(t, records[0].Closed())
	assert.Nil(t, records[0].ExitTime)

	assert.True(t, records[1].Closed())
	assert.Equal(t, 90.0, records[1].DurationMins)
	assert.Equal(t, 180.0, records[1].Amount)
}

func TestAdminToggleSlotSendsAction(t *testing.T) {
	var gotPath, gotAction string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPut, r.Method)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotAction = req["action"]
		json.NewEncoder(w).Encode(map[string]string{"message": "Slot status updated"})
	})

	msg, err := client.AdminToggleSlot(testToken, 12, "unblock")
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/slots/12", gotPath)
	assert.Equal(t, "unblock", gotAction)
	assert.Equal(t, "Slot status updated", msg)
}

func TestTransportErrorIsNotHTTPError(t *testing.T) {
	client := backend.NewClient("http://127.0.0.1:1", 500*time.Millisecond)

	_, err := client.Slots(testToken)
	require.Error(t, err)
	_, ok := err.(*httperrors.HTTPError)
	assert.False(t, ok)
	assert.Equal(t, "generic", httperrors.UserMessage(err, "generic"))
}
