package service

import (
	"smartparking/internal/backend"
	"smartparking/internal/entities"
)

// AdminService backs the operator panel: slot block management and the
// read-only user and booking listings.
type AdminService struct {
	client *backend.Client
}

func NewAdminService(client *backend.Client) *AdminService {
	return &AdminService{client: client}
}

func (a *AdminService) ListSlots(token string) ([]entities.Slot, error) {
	return a.client.AdminSlots(token)
}

// ToggleSlot inverts a slot's block state: a blocked slot gets "unblock",
// anything else gets "block". Returns the server's message.
func (a *AdminService) ToggleSlot(token string, slotID int, currentStatus string) (string, error) {
	return a.client.AdminToggleSlot(token, slotID, entities.ToggleAction(currentStatus))
}

func (a *AdminService) ListUsers(token string) ([]entities.User, error) {
	return a.client.AdminUsers(token)
}

func (a *AdminService) ListBookings(token string) ([]entities.AdminBooking, error) {
	return a.client.AdminBookings(token)
}
