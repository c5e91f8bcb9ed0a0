package enums

import "fmt"

// OrderSource identifies the selling platform a customer order came from.
type OrderSource string

const (
	OrderSourceFacebook  OrderSource = "facebook"
	OrderSourceInstagram OrderSource = "instagram"
	OrderSourceWhatsApp  OrderSource = "whatsapp"
	OrderSourceTikTok    OrderSource = "tiktok"
	OrderSourceDaraz     OrderSource = "daraz"
	OrderSourceOther     OrderSource = "other"
)

var validOrderSources = []OrderSource{
	OrderSourceFacebook,
	OrderSourceInstagram,
	OrderSourceWhatsApp,
	OrderSourceTikTok,
	OrderSourceDaraz,
	OrderSourceOther,
}

func (s OrderSource) String() string {
	return string(s)
}

func (s OrderSource) IsValid() bool {
	for _, candidate := range validOrderSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderSource converts raw input into an OrderSource.
func ParseOrderSource(value string) (OrderSource, error) {
	for _, candidate := range validOrderSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order source %q", value)
}
