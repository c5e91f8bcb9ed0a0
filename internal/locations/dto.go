package locations

import "github.com/google/uuid"

// DistrictView is the district shape returned to clients.
type DistrictView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CityView is the city shape returned to clients.
type CityView struct {
	ID         uuid.UUID `json:"id"`
	DistrictID uuid.UUID `json:"district_id"`
	Name       string    `json:"name"`
}
