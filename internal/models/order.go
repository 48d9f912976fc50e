package models

const DefaultOrderTime = "12:00"

// Order is one order line. Position records load order and is the primary key
// so the sequence survives a round trip through the database.
type Order struct {
	Position   int     `json:"position" gorm:"primaryKey;autoIncrement:false"`
	ID         string  `json:"id" gorm:"index;not null"`
	CustomerID string  `json:"customer_id" gorm:"index;not null"`
	ProductID  string  `json:"product_id"`
	Qty        int     `json:"qty" gorm:"not null" validate:"gt=0"`
	UnitPrice  float64 `json:"unit_price" gorm:"not null" validate:"gte=0"`
	Date       string  `json:"date"`
	PromoCode  string  `json:"promo_code"`
	Time       string  `json:"time"`
}
