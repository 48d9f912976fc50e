package models

type CustomerLevel string

const (
	LevelBasic   CustomerLevel = "BASIC"
	LevelPremium CustomerLevel = "PREMIUM"
)

const (
	UnknownCustomerName = "Unknown"
	DefaultShippingZone = "ZONE1"
	DefaultCurrency     = "EUR"
)

type Customer struct {
	ID           string        `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name" gorm:"not null"`
	Level        CustomerLevel `json:"level"`
	ShippingZone string        `json:"shipping_zone"`
	Currency     string        `json:"currency"`
}

// UnknownCustomer is the record used for orders whose customer is not in the table.
func UnknownCustomer(id string) Customer {
	return Customer{
		ID:           id,
		Name:         UnknownCustomerName,
		Level:        LevelBasic,
		ShippingZone: DefaultShippingZone,
		Currency:     DefaultCurrency,
	}
}
