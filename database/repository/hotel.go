package repository

import (
	"context"
	"fmt"

	"hoteltriggers/database"
	"hoteltriggers/models"
)

// HotelRepository defines access to hotels and their rooms.
type HotelRepository interface {
	// GetByID returns the hotel, or nil when no such document exists.
	GetByID(ctx context.Context, id string) (*models.Hotel, error)
	// ListRooms reads the full current room set of a hotel.
	ListRooms(ctx context.Context, hotelID string) ([]models.Room, error)
	// SetMinPrice writes only the minPrice field of an existing hotel.
	SetMinPrice(ctx context.Context, hotelID string, price float64) error
}

// StoreHotelRepo implements HotelRepository over a DocumentStore.
type StoreHotelRepo struct {
	store database.DocumentStore
}

func NewStoreHotelRepo(store database.DocumentStore) *StoreHotelRepo {
	return &StoreHotelRepo{store: store}
}

func (r *StoreHotelRepo) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	snap, err := r.store.Get(ctx, models.HotelsCollection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotel with id %s: %w", id, err)
	}
	if !snap.Exists {
		return nil, nil
	}
	h := models.DecodeHotel(snap)
	return &h, nil
}

func (r *StoreHotelRepo) ListRooms(ctx context.Context, hotelID string) ([]models.Room, error) {
	snaps, err := r.store.List(ctx, models.RoomsPath(hotelID))
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms of hotel %s: %w", hotelID, err)
	}
	rooms := make([]models.Room, 0, len(snaps))
	for _, s := range snaps {
		rooms = append(rooms, models.DecodeRoom(s))
	}
	return rooms, nil
}

func (r *StoreHotelRepo) SetMinPrice(ctx context.Context, hotelID string, price float64) error {
	if err := r.store.Update(ctx, models.HotelsCollection, hotelID, map[string]any{models.MinPriceField: price}); err != nil {
		return fmt.Errorf("failed to set min price of hotel %s: %w", hotelID, err)
	}
	return nil
}
