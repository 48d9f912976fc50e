package models

type PromotionType string

const (
	PromotionPercentage PromotionType = "PERCENTAGE"
	PromotionFixed      PromotionType = "FIXED"
)

// Promotion keeps Value as text; it is only parsed when the promotion is applied.
type Promotion struct {
	Code   string        `json:"code" gorm:"primaryKey"`
	Type   PromotionType `json:"type" gorm:"not null"`
	Value  string        `json:"value" gorm:"not null"`
	Active bool          `json:"active" gorm:"not null"`
}
