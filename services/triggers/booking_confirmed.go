package triggers

import (
	"context"
	"fmt"

	"hoteltriggers/database/repository"
	"hoteltriggers/models"
	"hoteltriggers/services/notification"

	"go.uber.org/zap"
)

// BookingConfirmedNotification is sent to the customer once the admin confirms.
func BookingConfirmedNotification(bookingID, hotelName string) models.Notification {
	return models.Notification{
		Title: "Đặt phòng được xác nhận!",
		Body:  fmt.Sprintf("Đặt phòng của bạn tại %s đã được xác nhận.", hotelName),
		Data: map[string]string{
			"bookingId": bookingID,
			"screen":    models.ScreenBookingList,
		},
	}
}

// IsConfirmation reports whether a booking update is the pending -> confirmed transition.
func IsConfirmation(before, after models.Booking) bool {
	return before.Status == models.BookingStatusPending && after.Status == models.BookingStatusConfirmed
}

// BookingConfirmedHandler notifies the customer when their booking is confirmed.
type BookingConfirmedHandler struct {
	Users  repository.UserRepository
	Sender notification.PushSender
	Logger *zap.Logger
}

func (h *BookingConfirmedHandler) Handle(ctx context.Context, evt models.ChangeEvent) error {
	before := models.DecodeBooking(evt.Before)
	after := models.DecodeBooking(evt.After)
	if !IsConfirmation(before, after) {
		return nil
	}

	bookingID := evt.Param("bookingId")
	log := h.Logger.With(zap.String("bookingId", bookingID))

	return notifyUser(ctx, h.Users, h.Sender, log, after.UserID,
		BookingConfirmedNotification(bookingID, after.HotelName))
}
