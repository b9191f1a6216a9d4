package triggers

import (
	"context"
	"fmt"

	"hoteltriggers/database/repository"
	"hoteltriggers/models"
	"hoteltriggers/services/notification"

	"go.uber.org/zap"
)

// NewBookingNotification is sent to the hotel admin when a booking is created.
func NewBookingNotification(bookingID, hotelName string) models.Notification {
	return models.Notification{
		Title: "Booking Mới!",
		Body:  fmt.Sprintf("Bạn có một đặt phòng mới tại %s.", hotelName),
		Data: map[string]string{
			"bookingId": bookingID,
			"screen":    models.ScreenAdminBookingList,
		},
	}
}

// BookingCreatedHandler notifies the owning hotel admin of a new booking.
type BookingCreatedHandler struct {
	Users  repository.UserRepository
	Sender notification.PushSender
	Logger *zap.Logger
}

func (h *BookingCreatedHandler) Handle(ctx context.Context, evt models.ChangeEvent) error {
	bookingID := evt.Param("bookingId")
	booking := models.DecodeBooking(evt.After)
	log := h.Logger.With(zap.String("bookingId", bookingID))

	return notifyUser(ctx, h.Users, h.Sender, log, booking.OwnerID,
		NewBookingNotification(bookingID, booking.HotelName))
}
