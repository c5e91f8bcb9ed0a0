package operators

import (
	"time"

	"github.com/google/uuid"

	"github.com/kittohq/kitto-backend/pkg/db/models"
)

// RegisterRequest contains the payload required for onboarding an operator.
type RegisterRequest struct {
	FullName         string   `json:"full_name" validate:"required"`
	MobileNumber     string   `json:"mobile_number" validate:"required"`
	WhatsappNumber   *string  `json:"whatsapp_number,omitempty"`
	ShopName         string   `json:"shop_name" validate:"required"`
	City             string   `json:"city" validate:"required"`
	SellingPlatforms []string `json:"selling_platforms" validate:"required,min=1"`
	Password         string   `json:"password" validate:"required,min=6"`
}

// LoginRequest is the credential payload for operator and admin login.
type LoginRequest struct {
	MobileNumber string `json:"mobile_number" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// OperatorView is the operator shape returned to clients.
type OperatorView struct {
	ID               uuid.UUID `json:"id"`
	FullName         string    `json:"full_name"`
	MobileNumber     string    `json:"mobile_number"`
	WhatsappNumber   *string   `json:"whatsapp_number,omitempty"`
	ShopName         string    `json:"shop_name"`
	City             string    `json:"city"`
	SellingPlatforms []string  `json:"selling_platforms"`
	IsAdmin          bool      `json:"is_admin"`
	CreatedAt        time.Time `json:"created_at"`
}

// AuthResponse carries the access token plus the authenticated operator.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	Operator    OperatorView `json:"operator"`
}

// UpdateProfileRequest carries partial profile updates; nil fields are untouched.
type UpdateProfileRequest struct {
	FullName         *string  `json:"full_name,omitempty"`
	WhatsappNumber   *string  `json:"whatsapp_number,omitempty"`
	ShopName         *string  `json:"shop_name,omitempty"`
	City             *string  `json:"city,omitempty"`
	SellingPlatforms []string `json:"selling_platforms,omitempty"`
}

// OperatorList wraps paginated admin listings plus the next cursor.
type OperatorList struct {
	Operators  []OperatorView `json:"operators"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// FromModel converts the persistence row into the client view.
func FromModel(operator *models.Operator) OperatorView {
	return OperatorView{
		ID:               operator.ID,
		FullName:         operator.FullName,
		MobileNumber:     operator.MobileNumber,
		WhatsappNumber:   operator.WhatsappNumber,
		ShopName:         operator.ShopName,
		City:             operator.City,
		SellingPlatforms: operator.SellingPlatforms,
		IsAdmin:          operator.IsAdmin,
		CreatedAt:        operator.CreatedAt,
	}
}
