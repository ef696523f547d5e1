package view

import (
	"bytes"
	"html/template"
	"io"
	"strconv"
	"strings"

	"smartparking/internal/entities"
)

var templates = template.Must(template.New("parking").Funcs(template.FuncMap{
	"capitalize":  capitalize,
	"upper":       strings.ToUpper,
	"toggleLabel": toggleLabel,
}).Parse(componentTemplates + pageTemplates))

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func toggleLabel(status string) string {
	if status == entities.SlotBlocked {
		return "Unblock"
	}
	return "Block"
}

// Rupees formats an amount the way the UI displays money: "₹100", "₹45".
func Rupees(amount float64) string {
	return "₹" + strconv.FormatFloat(amount, 'f', -1, 64)
}

func render(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// SlotGrid renders one card per slot, labeled with its id and status.
func SlotGrid(slots []entities.Slot) (template.HTML, error) {
	return render("slotGrid", slots)
}

// AdminSlotGrid renders the operator's grid with a block/unblock action
// per slot.
func AdminSlotGrid(slots []entities.Slot) (template.HTML, error) {
	return render("adminSlotGrid", slots)
}

func StatusSummary(status *entities.SlotStatus) (template.HTML, error) {
	return render("statusSummary", status)
}

// Tab is one tab button paired with a content panel by a shared id.
type Tab struct {
	ID    string
	Label string
}

type tabView struct {
	Tab
	Active bool
}

// ResolveTab returns the requested tab id when it names one of tabs, the
// first tab otherwise. Guarantees exactly one active tab.
func ResolveTab(tabs []Tab, requested string) string {
	for _, t := range tabs {
		if t.ID == requested {
			return requested
		}
	}
	return tabs[0].ID
}

// TabBar renders the tab buttons with exactly one carrying the active
// marker.
func TabBar(tabs []Tab, active string) (template.HTML, error) {
	active = ResolveTab(tabs, active)
	views := make([]tabView, 0, len(tabs))
	for _, t := range tabs {
		views = append(views, tabView{Tab: t, Active: t.ID == active})
	}
	return render("tabBar", views)
}

// ActiveBookingView is the rendered state of the open-booking panel.
type ActiveBookingView struct {
	SlotID    int
	EntryTime string
	Deposit   string
	Duration  string
	Charge    string
}

// NewActiveBookingView formats an active booking snapshot for display.
func NewActiveBookingView(b *entities.ActiveBooking, durationMins, charge int) *ActiveBookingView {
	if b == nil {
		return nil
	}
	return &ActiveBookingView{
		SlotID:    b.SlotID,
		EntryTime: b.EntryTime.Format(entities.EntryTimeLayout),
		Deposit:   Rupees(b.Deposit),
		Duration:  strconv.Itoa(durationMins) + " mins",
		Charge:    Rupees(float64(charge)),
	}
}

// ActiveBookingPanel renders either the booking details or the empty state.
func ActiveBookingPanel(b *ActiveBookingView) (template.HTML, error) {
	return render("activeBookingPanel", b)
}

// HistoryRow is one rendered booking-history line.
type HistoryRow struct {
	BookingID int
	Date      string
	SlotID    int
	Duration  string
	Amount    string
}

// HistoryRows formats booking records: open bookings show "In progress"
// instead of a duration.
func HistoryRows(records []entities.BookingRecord) []HistoryRow {
	rows := make([]HistoryRow, 0, len(records))
	for _, r := range records {
		duration := "In progress"
		if r.Closed() {
			duration = strconv.FormatFloat(r.DurationMins, 'f', -1, 64) + " mins"
		}
		rows = append(rows, HistoryRow{
			BookingID: r.BookingID,
			Date:      r.EntryTime.Format("02/01/2006 15:04:05"),
			SlotID:    r.SlotID,
			Duration:  duration,
			Amount:    Rupees(r.Amount),
		})
	}
	return rows
}

func HistoryTable(rows []HistoryRow) (template.HTML, error) {
	return render("historyTable", rows)
}

func UsersTable(users []entities.User) (template.HTML, error) {
	return render("usersTable", users)
}

// AdminBookingRow is one line of the operator's booking table.
type AdminBookingRow struct {
	SlotID    int
	UserName  string
	EntryTime string
	ExitTime  string
	Amount    string
}

// AdminBookingRows formats the operator listing; open bookings show
// "In Progress" in the exit column.
func AdminBookingRows(bookings []entities.AdminBooking) []AdminBookingRow {
	rows := make([]AdminBookingRow, 0, len(bookings))
	for _, b := range bookings {
		exit := "In Progress"
		if b.ExitTime != nil {
			exit = b.ExitTime.Format("02/01/2006 15:04:05")
		}
		rows = append(rows, AdminBookingRow{
			SlotID:    b.SlotID,
			UserName:  b.UserName,
			EntryTime: b.EntryTime.Format("02/01/2006 15:04:05"),
			ExitTime:  exit,
			Amount:    Rupees(b.Amount),
		})
	}
	return rows
}

func BookingsTable(rows []AdminBookingRow) (template.HTML, error) {
	return render("bookingsTable", rows)
}

// PaymentView is the payment modal's rendered state, nil when closed.
type PaymentView struct {
	Amount  string
	Purpose string
}

func NewPaymentView(p *entities.PendingPayment) *PaymentView {
	if p == nil {
		return nil
	}
	return &PaymentView{Amount: Rupees(p.Amount), Purpose: p.Purpose}
}

func PaymentModal(p *PaymentView) (template.HTML, error) {
	return render("paymentModal", p)
}

// ReceiptView is the receipt modal's rendered state, nil when closed.
type ReceiptView struct {
	Title   string
	Number  string
	Date    string
	Time    string
	Purpose string
	Amount  string
	Status  string
}

func NewReceiptView(r *entities.Receipt) *ReceiptView {
	if r == nil {
		return nil
	}
	return &ReceiptView{
		Title:   r.Title(),
		Number:  r.Number,
		Date:    r.IssuedAt.Format("02/01/2006"),
		Time:    r.IssuedAt.Format("15:04:05"),
		Purpose: r.Purpose,
		Amount:  Rupees(r.Amount),
		Status:  r.Status,
	}
}

func ReceiptModal(r *ReceiptView) (template.HTML, error) {
	return render("receiptModal", r)
}

// AuthData is the auth page's state: a flash message and whether the login
// email field should take focus after a successful registration.
type AuthData struct {
	Flash      string
	FocusLogin bool
}

func RenderAuthPage(w io.Writer, data AuthData) error {
	return templates.ExecuteTemplate(w, "authPage", data)
}

// DashboardTabs are the dashboard's tab/panel pairs.
var DashboardTabs = []Tab{
	{ID: "slots", Label: "Parking Slots"},
	{ID: "booking", Label: "My Booking"},
	{ID: "history", Label: "History"},
}

// DashboardData is everything the dashboard page shows.
type DashboardData struct {
	UserName  string
	Flash     string
	ActiveTab string
	Tabs      template.HTML
	Status    *entities.SlotStatus
	Slots     []entities.Slot
	Active    *ActiveBookingView
	History   []HistoryRow
	Payment   *PaymentView
	Receipt   *ReceiptView
}

func RenderDashboardPage(w io.Writer, data DashboardData) error {
	data.ActiveTab = ResolveTab(DashboardTabs, data.ActiveTab)
	tabs, err := TabBar(DashboardTabs, data.ActiveTab)
	if err != nil {
		return err
	}
	data.Tabs = tabs
	return templates.ExecuteTemplate(w, "dashboardPage", data)
}

// AdminTabs are the admin panel's tab/panel pairs.
var AdminTabs = []Tab{
	{ID: "slots", Label: "Slots"},
	{ID: "users", Label: "Users"},
	{ID: "bookings", Label: "Bookings"},
}

// AdminData is everything the admin page shows.
type AdminData struct {
	Flash     string
	ActiveTab string
	Tabs      template.HTML
	Slots     []entities.Slot
	Users     []entities.User
	Bookings  []AdminBookingRow
}

func RenderAdminPage(w io.Writer, data AdminData) error {
	data.ActiveTab = ResolveTab(AdminTabs, data.ActiveTab)
	tabs, err := TabBar(AdminTabs, data.ActiveTab)
	if err != nil {
		return err
	}
	data.Tabs = tabs
	return templates.ExecuteTemplate(w, "adminPage", data)
}
