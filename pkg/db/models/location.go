package models

import "github.com/google/uuid"

// District is the top level of the two-level administrative hierarchy.
type District struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"column:name;not null;uniqueIndex"`
}

func (District) TableName() string {
	return "districts"
}

// City belongs to exactly one district.
type City struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DistrictID uuid.UUID `gorm:"column:district_id;type:uuid;not null;index"`
	Name       string    `gorm:"column:name;not null"`
}

func (City) TableName() string {
	return "cities"
}
