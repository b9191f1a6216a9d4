package models

// Notification is a push payload for a single device.
type Notification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// Screens the mobile app routes to when a notification is opened.
const (
	ScreenAdminBookingList = "AdminBookingList"
	ScreenBookingList      = "BookingList"
)
