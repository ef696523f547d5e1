package entities

// Slot statuses as reported by the backend.
const (
	SlotAvailable = "available"
	SlotOccupied  = "occupied"
	SlotBooked    = "booked"
	SlotBlocked   = "blocked"
)

type Slot struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

// SlotStatus is the aggregate availability summary shown above the grid.
type SlotStatus struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

// ToggleAction returns the admin action that inverts the given slot status:
// "unblock" for a blocked slot, "block" for anything else.
func ToggleAction(status string) string {
	if status == SlotBlocked {
		return "unblock"
	}
	return "block"
}
