package models

// Booking statuses written by the mobile clients.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// BookingsCollection holds one document per booking.
const BookingsCollection = "bookings"

// Booking is the typed view of a bookings/{id} document.
type Booking struct {
	ID        string `json:"id"`
	OwnerID   string `json:"ownerId"`   // hotel admin
	UserID    string `json:"userId"`    // customer
	HotelName string `json:"hotelName"`
	Status    string `json:"status"`
}

// DecodeBooking reads the booking fields the triggers depend on.
func DecodeBooking(s *Snapshot) Booking {
	if s == nil {
		return Booking{}
	}
	return Booking{
		ID:        s.ID,
		OwnerID:   s.StringField("ownerId"),
		UserID:    s.StringField("userId"),
		HotelName: s.StringField("hotelName"),
		Status:    s.StringField("status"),
	}
}
