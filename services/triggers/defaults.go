package triggers

import (
	"hoteltriggers/database/repository"
	"hoteltriggers/models"
	"hoteltriggers/services/notification"

	"go.uber.org/zap"
)

// Trigger names, also used as ledger keys.
const (
	NotifyBookingCreated   = "notifyBookingCreated"
	NotifyBookingConfirmed = "notifyBookingConfirmed"
	RecomputeHotelMinPrice = "recomputeHotelMinPrice"
)

// Deps are the collaborators shared by the default triggers.
type Deps struct {
	Repos  repository.Repositories
	Sender notification.PushSender
	Logger *zap.Logger
}

// RegisterDefaults binds the booking notifications and the hotel min price aggregate.
func RegisterDefaults(reg *Registry, deps Deps) error {
	if err := reg.Register(NotifyBookingCreated, "bookings/{bookingId}",
		[]models.ChangeKind{models.ChangeCreate},
		&BookingCreatedHandler{Users: deps.Repos.Users, Sender: deps.Sender, Logger: deps.Logger.Named(NotifyBookingCreated)},
	); err != nil {
		return err
	}
	if err := reg.Register(NotifyBookingConfirmed, "bookings/{bookingId}",
		[]models.ChangeKind{models.ChangeUpdate},
		&BookingConfirmedHandler{Users: deps.Repos.Users, Sender: deps.Sender, Logger: deps.Logger.Named(NotifyBookingConfirmed)},
	); err != nil {
		return err
	}
	return reg.Register(RecomputeHotelMinPrice, "hotels/{hotelId}/rooms/{roomId}",
		[]models.ChangeKind{models.ChangeCreate, models.ChangeUpdate, models.ChangeDelete},
		&MinPriceHandler{Hotels: deps.Repos.Hotels, Logger: deps.Logger.Named(RecomputeHotelMinPrice)},
	)
}
