package models

import (
	"github.com/samber/mo"
)

// Dataset holds the five reference tables for one report run.
type Dataset struct {
	Customers     map[string]Customer
	Products      map[string]Product
	ShippingZones map[string]ShippingZone
	Promotions    map[string]Promotion
	Orders        []Order
}

func NewDataset() *Dataset {
	return &Dataset{
		Customers:     make(map[string]Customer),
		Products:      make(map[string]Product),
		ShippingZones: make(map[string]ShippingZone),
		Promotions:    make(map[string]Promotion),
	}
}

// CustomerOrUnknown never fails; missing customers resolve to UnknownCustomer.
func (d *Dataset) CustomerOrUnknown(id string) Customer {
	if c, ok := d.Customers[id]; ok {
		return c
	}
	return UnknownCustomer(id)
}

func (d *Dataset) Product(id string) mo.Option[Product] {
	if p, ok := d.Products[id]; ok {
		return mo.Some(p)
	}
	return mo.None[Product]()
}

// Promotion resolves a promo code. Blank and unknown codes are both None.
func (d *Dataset) Promotion(code string) mo.Option[Promotion] {
	if code == "" {
		return mo.None[Promotion]()
	}
	if p, ok := d.Promotions[code]; ok {
		return mo.Some(p)
	}
	return mo.None[Promotion]()
}

// ZoneOrDefault returns the zone, or fallback relabelled with the requested code.
func (d *Dataset) ZoneOrDefault(code string, fallback ShippingZone) ShippingZone {
	if z, ok := d.ShippingZones[code]; ok {
		return z
	}
	fallback.Zone = code
	return fallback
}
