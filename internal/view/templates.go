package view

// Component and page templates. Everything user- or server-supplied goes
// through html/template's contextual escaping; nothing is concatenated into
// markup by hand.

const componentTemplates = `
{{define "statusSummary"}}<div class="status-summary">
  <div class="status-box"><span class="label">Total</span><span class="value">{{.Total}}</span></div>
  <div class="status-box"><span class="label">Available</span><span class="value">{{.Available}}</span></div>
  <div class="status-box"><span class="label">Occupied</span><span class="value">{{.Occupied}}</span></div>
</div>{{end}}

{{define "slotGrid"}}<div class="slots-grid">
{{range .}}  <div class="slot-card {{.Status}}"><p>Slot {{.ID}}</p><p class="status">{{capitalize .Status}}</p></div>
{{end}}</div>{{end}}

{{define "adminSlotGrid"}}<div class="slots-grid" id="adminSlotsGrid">
{{range .}}  <div class="slot-card {{.Status}}">
    <p>Slot {{.ID}}</p>
    <p class="status">{{upper .Status}}</p>
    <form method="post" action="/admin/slots/{{.ID}}/toggle">
      <input type="hidden" name="status" value="{{.Status}}">
      <button type="submit" class="action-btn">{{toggleLabel .Status}}</button>
    </form>
  </div>
{{end}}</div>{{end}}

{{define "tabBar"}}<div class="tabs">
{{range .}}  <a class="tab-btn{{if .Active}} active{{end}}" href="?tab={{.ID}}">{{.Label}}</a>
{{end}}</div>{{end}}

{{define "activeBookingPanel"}}{{if .}}<div id="activeBookingDetails" class="booking-details">
  <p>Slot: <span id="activeSlotId">{{.SlotID}}</span></p>
  <p>Entry time: <span id="activeEntryTime">{{.EntryTime}}</span></p>
  <p>Deposit: <span id="activeDeposit">{{.Deposit}}</span></p>
  <p>Duration: <span id="activeDuration">{{.Duration}}</span></p>
  <p>Current charge: <span id="activeCharge">{{.Charge}}</span></p>
</div>{{else}}<div id="noActiveBooking" class="empty-state"><p>No active booking.</p></div>{{end}}{{end}}

{{define "historyTable"}}<table id="historyTable">
  <thead><tr><th>Date</th><th>Slot</th><th>Duration</th><th>Amount</th><th></th></tr></thead>
  <tbody>
{{range .}}    <tr>
      <td>{{.Date}}</td>
      <td>Slot {{.SlotID}}</td>
      <td>{{.Duration}}</td>
      <td>{{.Amount}}</td>
      <td><a class="view-receipt" href="/dashboard/receipt/{{.BookingID}}">Receipt</a></td>
    </tr>
{{end}}  </tbody>
</table>{{end}}

{{define "usersTable"}}<table id="usersTable">
  <thead><tr><th>Name</th><th>Email</th><th>Mobile</th><th>Vehicle</th></tr></thead>
  <tbody>
{{range .}}    <tr><td>{{.Name}}</td><td>{{.Email}}</td><td>{{.Mobile}}</td><td>{{.Vehicle}}</td></tr>
{{end}}  </tbody>
</table>{{end}}

{{define "bookingsTable"}}<table id="bookingsTable">
  <thead><tr><th>Slot</th><th>User</th><th>Entry</th><th>Exit</th><th>Amount</th></tr></thead>
  <tbody>
{{range .}}    <tr>
      <td>Slot {{.SlotID}}</td>
      <td>{{.UserName}}</td>
      <td>{{.EntryTime}}</td>
      <td>{{.ExitTime}}</td>
      <td>{{.Amount}}</td>
    </tr>
{{end}}  </tbody>
</table>{{end}}

{{define "paymentModal"}}{{if .}}<div id="paymentModal" class="modal">
  <div class="modal-content">
    <form method="post" action="/dashboard/modals/close"><button type="submit" class="close-btn">&times;</button></form>
    <h3>Complete Payment</h3>
    <p>Amount: <span id="paymentAmount">{{.Amount}}</span></p>
    <p>Purpose: <span id="paymentPurpose">{{.Purpose}}</span></p>
    <form method="post" action="/dashboard/payment/complete">
      <button type="submit" id="completePaymentBtn">Pay Now</button>
    </form>
  </div>
</div>{{end}}{{end}}

{{define "receiptModal"}}{{if .}}<div id="receiptModal" class="modal">
  <div class="modal-content" id="receiptContent">
    <form method="post" action="/dashboard/modals/close"><button type="submit" class="close-btn">&times;</button></form>
    <h3 id="receiptType">{{.Title}}</h3>
    <div class="receipt-details">
      {{if .Number}}<div class="detail-row"><span>Receipt No:</span><span>{{.Number}}</span></div>
      {{end}}<div class="detail-row"><span>Date:</span><span>{{.Date}}</span></div>
      <div class="detail-row"><span>Time:</span><span>{{.Time}}</span></div>
      <div class="detail-row"><span>Purpose:</span><span>{{.Purpose}}</span></div>
      <div class="detail-row"><span>Amount:</span><span>{{.Amount}}</span></div>
      <div class="detail-row"><span>Status:</span><span>{{.Status}}</span></div>
    </div>
    <form method="post" action="/dashboard/modals/close"><button type="submit" id="closeReceiptBtn">Close</button></form>
  </div>
</div>{{end}}{{end}}
`

const pageTemplates = `
{{define "authPage"}}<!DOCTYPE html>
<html>
<head><title>Smart Parking - Login</title><link rel="stylesheet" href="/static/style.css"></head>
<body>
<div class="auth-container">
  <h1>Smart Parking</h1>
  {{if .Flash}}<div class="alert">{{.Flash}}</div>{{end}}
  <form id="loginForm" method="post" action="/auth/login">
    <h2>Login</h2>
    <input type="email" name="email" placeholder="Email" required{{if .FocusLogin}} autofocus{{end}}>
    <input type="password" name="password" placeholder="Password" required>
    <button type="submit">Login</button>
  </form>
  <form id="registerForm" method="post" action="/auth/register">
    <h2>Register</h2>
    <input type="text" name="name" placeholder="Name" required>
    <input type="email" name="email" placeholder="Email" required>
    <input type="tel" name="mobile" placeholder="Mobile" required>
    <input type="text" name="vehicle" placeholder="Vehicle number" required>
    <input type="password" name="password" placeholder="Password" required>
    <button type="submit">Register</button>
  </form>
</div>
</body>
</html>{{end}}

{{define "dashboardPage"}}<!DOCTYPE html>
<html>
<head><title>Smart Parking - Dashboard</title><link rel="stylesheet" href="/static/style.css"></head>
<body>
<header>
  <h1>Smart Parking</h1>
  <div class="user-info">
    <span id="userName">{{.UserName}}</span>
    <a id="logoutBtn" href="/auth/logout">Logout</a>
  </div>
</header>
{{if .Flash}}<div class="alert">{{.Flash}}</div>{{end}}
{{.Tabs}}
<main>
  <div id="slots" class="tab-content{{if eq .ActiveTab "slots"}} active{{end}}">
    {{if .Status}}{{template "statusSummary" .Status}}{{end}}
    {{template "slotGrid" .Slots}}
    <form method="post" action="/dashboard/book"><button type="submit" id="bookSlotBtn">Book a Slot</button></form>
  </div>
  <div id="booking" class="tab-content{{if eq .ActiveTab "booking"}} active{{end}}">
    {{template "activeBookingPanel" .Active}}
    <div class="gate-controls">
      <form method="post" action="/dashboard/entry-gate"><button type="submit" id="entryGateBtn">Open Entry Gate</button></form>
      <form method="post" action="/dashboard/exit-gate"><button type="submit" id="exitGateBtn">Open Exit Gate</button></form>
    </div>
  </div>
  <div id="history" class="tab-content{{if eq .ActiveTab "history"}} active{{end}}">
    {{template "historyTable" .History}}
  </div>
</main>
{{template "paymentModal" .Payment}}
{{template "receiptModal" .Receipt}}
</body>
</html>{{end}}

{{define "adminPage"}}<!DOCTYPE html>
<html>
<head><title>Smart Parking - Admin</title><link rel="stylesheet" href="/static/style.css"></head>
<body>
<header>
  <h1>Admin Panel</h1>
  <a id="adminLogoutBtn" href="/auth/logout">Logout</a>
</header>
{{if .Flash}}<div class="alert">{{.Flash}}</div>{{end}}
{{.Tabs}}
<main>
  <div id="slots" class="tab-content{{if eq .ActiveTab "slots"}} active{{end}}">
    {{template "adminSlotGrid" .Slots}}
  </div>
  <div id="users" class="tab-content{{if eq .ActiveTab "users"}} active{{end}}">
    {{template "usersTable" .Users}}
  </div>
  <div id="bookings" class="tab-content{{if eq .ActiveTab "bookings"}} active{{end}}">
    {{template "bookingsTable" .Bookings}}
  </div>
</main>
</body>
</html>{{end}}
`
