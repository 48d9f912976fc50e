package models

const DefaultPerKg = 0.5

type ShippingZone struct {
	Zone  string  `json:"zone" gorm:"primaryKey"`
	Base  float64 `json:"base" gorm:"not null" validate:"gte=0"`
	PerKg float64 `json:"per_kg" gorm:"column:per_kg;not null" validate:"gte=0"`
}
