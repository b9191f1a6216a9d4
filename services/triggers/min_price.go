package triggers

import (
	"context"

	"hoteltriggers/database/repository"
	"hoteltriggers/models"

	"go.uber.org/zap"
)

// MinPriceHandler keeps hotels/{hotelId}.minPrice equal to the lowest valid
// room price. It re-reads every room instead of patching from the event.
// Two concurrent runs for one hotel may race; the last write wins.
type MinPriceHandler struct {
	Hotels repository.HotelRepository
	Logger *zap.Logger
}

func (h *MinPriceHandler) Handle(ctx context.Context, evt models.ChangeEvent) error {
	hotelID := evt.Param("hotelId")
	log := h.Logger.With(zap.String("hotelId", hotelID))

	hotel, err := h.Hotels.GetByID(ctx, hotelID)
	if err != nil {
		return err
	}
	if hotel == nil {
		log.Info("hotel not found, skipping min price update")
		return nil
	}

	rooms, err := h.Hotels.ListRooms(ctx, hotelID)
	if err != nil {
		return err
	}

	newMin := models.MinValidPrice(rooms)
	if hotel.MinPrice.Valid && hotel.MinPrice.Value == newMin {
		log.Debug("min price unchanged", zap.Float64("minPrice", newMin))
		return nil
	}

	if err := h.Hotels.SetMinPrice(ctx, hotelID, newMin); err != nil {
		return err
	}
	log.Info("min price updated", zap.Float64("minPrice", newMin), zap.Int("rooms", len(rooms)))
	return nil
}
