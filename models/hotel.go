package models

const (
	HotelsCollection = "hotels"
	RoomsCollection  = "rooms"

	// MinPriceField is derived from the rooms and written only by the min price trigger.
	MinPriceField = "minPrice"
)

// Hotel is the typed view of a hotels/{id} document.
type Hotel struct {
	ID       string
	MinPrice OptionalFloat
}

// Room is the typed view of a hotels/{hotelId}/rooms/{id} document.
type Room struct {
	ID            string
	PricePerNight OptionalFloat
}

// RoomsPath returns the rooms collection path of a hotel.
func RoomsPath(hotelID string) string {
	return HotelsCollection + "/" + hotelID + "/" + RoomsCollection
}

func DecodeHotel(s *Snapshot) Hotel {
	if s == nil {
		return Hotel{}
	}
	return Hotel{ID: s.ID, MinPrice: DecodeNumber(s.Field(MinPriceField))}
}

func DecodeRoom(s *Snapshot) Room {
	if s == nil {
		return Room{}
	}
	return Room{ID: s.ID, PricePerNight: DecodeNumber(s.Field("pricePerNight"))}
}

// MinValidPrice returns the lowest valid room price, or 0 when no room has one.
func MinValidPrice(rooms []Room) float64 {
	var lowest float64
	found := false
	for _, r := range rooms {
		if !IsValidPrice(r.PricePerNight) {
			continue
		}
		if !found || r.PricePerNight.Value < lowest {
			lowest = r.PricePerNight.Value
			found = true
		}
	}
	return lowest
}
