package models

const DefaultProductWeight = 1.0

type Product struct {
	ID       string  `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"not null"`
	Category string  `json:"category"`
	Price    float64 `json:"price" gorm:"not null" validate:"gte=0"`
	Weight   float64 `json:"weight" validate:"gt=0"`
	Taxable  bool    `json:"taxable" gorm:"not null"`
}
