package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Operator is a Kitto Drop reseller account.
type Operator struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FullName         string         `gorm:"column:full_name;not null"`
	MobileNumber     string         `gorm:"column:mobile_number;not null;uniqueIndex"`
	WhatsappNumber   *string        `gorm:"column:whatsapp_number"`
	ShopName         string         `gorm:"column:shop_name;not null"`
	City             string         `gorm:"column:city;not null"`
	SellingPlatforms pq.StringArray `gorm:"column:selling_platforms;type:text[];default:ARRAY[]::text[]"`
	PasswordHash     string         `gorm:"column:password_hash;not null" json:"-"`
	IsAdmin          bool           `gorm:"column:is_admin;not null;default:false"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Operator) TableName() string {
	return "operators"
}
