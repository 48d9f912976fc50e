package pricing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"order_report/internal/models"
)

var (
	// ErrInvalidOrderTime is returned when an order's time field has no parseable hour.
	ErrInvalidOrderTime = errors.New("pricing: invalid order time")
	// ErrInvalidPromotionValue is returned when an applied promotion's value is not numeric.
	ErrInvalidPromotionValue = errors.New("pricing: invalid promotion value")
)

const (
	volumeTier1 = 50.0
	volumeTier2 = 100.0
	volumeTier3 = 500.0
	volumeTier4 = 1000.0

	loyaltyTier1    = 100.0
	loyaltyTier2    = 500.0
	loyaltyCap1     = 50.0
	loyaltyCap2     = 100.0
	loyaltyRate1    = 0.1
	loyaltyRate2    = 0.15
	midWeightLimit  = 5.0
	highWeightLimit = 10.0
)

// Engine evaluates the pricing rules. All methods are pure.
type Engine struct {
	rules Rules
}

func NewEngine(rules Rules) Engine {
	return Engine{rules: rules}
}

func (e Engine) Rules() Rules {
	return e.rules
}

// LineTotal is the priced value of one order line after promotion and
// time-of-day adjustment.
type LineTotal struct {
	Total        float64
	MorningBonus float64
}

// Discounts is the result of capping the volume and loyalty discounts.
type Discounts struct {
	Volume  float64
	Loyalty float64
	Total   float64
}

// TaxLine is the tax-relevant view of one order line.
type TaxLine struct {
	Qty     int
	Known   bool // product exists in the catalog
	Price   float64
	Taxable bool
}

// LoyaltyPoints accumulates qty × unit price × ratio per customer. Catalog
// prices and promotions are ignored.
func (e Engine) LoyaltyPoints(orders []models.Order) map[string]float64 {
	points := make(map[string]float64)
	for _, o := range orders {
		// explicit conversion rounds the product before it is accumulated
		points[o.CustomerID] += float64(float64(o.Qty) * o.UnitPrice * e.rules.LoyaltyRatio)
	}
	return points
}

// PriceLine applies the promotion and the morning bonus to one order line.
func (e Engine) PriceLine(order models.Order, product mo.Option[models.Product], promo mo.Option[models.Promotion]) (LineTotal, error) {
	basePrice := order.UnitPrice
	if p, ok := product.Get(); ok {
		basePrice = p.Price
	}

	var discountRate, fixedDiscount float64
	if p, ok := promo.Get(); ok && p.Active {
		switch p.Type {
		case models.PromotionPercentage:
			v, err := parsePromotionValue(p)
			if err != nil {
				return LineTotal{}, err
			}
			discountRate = v / 100
		case models.PromotionFixed:
			v, err := parsePromotionValue(p)
			if err != nil {
				return LineTotal{}, err
			}
			fixedDiscount = v
		}
	}

	qty := float64(order.Qty)
	// explicit conversions keep each product rounded before the subtraction
	total := float64(qty*basePrice*(1-discountRate)) - float64(fixedDiscount*qty)

	hour, err := orderHour(order)
	if err != nil {
		return LineTotal{}, err
	}

	var bonus float64
	if hour < e.rules.MorningCutoffHour {
		bonus = float64(total * e.rules.MorningBonusRate)
	}
	return LineTotal{Total: total - bonus, MorningBonus: bonus}, nil
}

func parsePromotionValue(p models.Promotion) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: promotion %s value %q", ErrInvalidPromotionValue, p.Code, p.Value)
	}
	return v, nil
}

// orderHour reads the integer before the first colon of the order time.
func orderHour(order models.Order) (int, error) {
	head, _, _ := strings.Cut(order.Time, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, fmt.Errorf("%w: order %s time %q", ErrInvalidOrderTime, order.ID, order.Time)
	}
	return hour, nil
}

// VolumeDiscount applies the subtotal ladder. Each tier replaces the previous one.
func (e Engine) VolumeDiscount(subtotal float64, level models.CustomerLevel) float64 {
	disc := 0.0
	if subtotal > volumeTier1 {
		disc = subtotal * 0.05
	}
	if subtotal > volumeTier2 {
		disc = subtotal * 0.10
	}
	if subtotal > volumeTier3 {
		disc = subtotal * 0.15
	}
	if subtotal > volumeTier4 && level == models.LevelPremium {
		disc = subtotal * 0.20
	}
	return disc
}

// WeekendBonus raises the discount when the first order was placed on a
// Saturday or Sunday. Empty or unparseable dates leave it unchanged.
func (e Engine) WeekendBonus(discount float64, firstOrderDate string) float64 {
	if firstOrderDate == "" {
		return discount
	}
	dt, err := time.Parse("2006-1-2", firstOrderDate)
	if err != nil {
		return discount
	}
	if wd := dt.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return discount * e.rules.WeekendMultiplier
	}
	return discount
}

func (e Engine) LoyaltyDiscount(points float64) float64 {
	disc := 0.0
	if points > loyaltyTier1 {
		disc = math.Min(points*loyaltyRate1, loyaltyCap1)
	}
	if points > loyaltyTier2 {
		disc = math.Min(points*loyaltyRate2, loyaltyCap2)
	}
	return disc
}

// CapDiscounts scales both discounts down proportionally so their sum does not
// exceed MaxDiscount.
func (e Engine) CapDiscounts(volume, loyalty float64) Discounts {
	total := volume + loyalty
	if total > e.rules.MaxDiscount {
		ratio := 1.0
		if total > 0 {
			ratio = e.rules.MaxDiscount / total
		}
		volume *= ratio
		loyalty *= ratio
		total = e.rules.MaxDiscount
	}
	return Discounts{Volume: volume, Loyalty: loyalty, Total: total}
}

// Tax taxes the net taxable amount when every line is taxable. Otherwise only
// the gross catalog value of known taxable lines is taxed, ignoring discounts.
func (e Engine) Tax(taxable float64, lines []TaxLine) float64 {
	allTaxable := lo.EveryBy(lines, func(l TaxLine) bool {
		return !l.Known || l.Taxable
	})
	if allTaxable {
		return Round2(taxable * e.rules.TaxRate)
	}

	tax := 0.0
	for _, l := range lines {
		if l.Known && l.Taxable {
			lineTotal := float64(float64(l.Qty) * l.Price)
			tax += float64(lineTotal * e.rules.TaxRate)
		}
	}
	return Round2(tax)
}

// Shipping prices delivery for a customer's basket. zone must already be
// resolved; zoneCode drives the remote-zone surcharge.
func (e Engine) Shipping(subtotal, weight float64, zoneCode string, zone models.ShippingZone) float64 {
	if subtotal >= e.rules.ShippingLimit {
		if weight > e.rules.HeavyWeightLimit {
			return (weight - e.rules.HeavyWeightLimit) * e.rules.HeavyWeightPerKg
		}
		return 0
	}

	var ship float64
	switch {
	case weight > highWeightLimit:
		ship = zone.Base + float64((weight-highWeightLimit)*zone.PerKg)
	case weight > midWeightLimit:
		ship = zone.Base + float64((weight-midWeightLimit)*e.rules.MidWeightPerKg)
	default:
		ship = zone.Base
	}

	if lo.Contains(e.rules.SurchargeZones, zoneCode) {
		ship *= e.rules.ZoneSurcharge
	}
	return ship
}

// Handling charges a flat fee above the item threshold and doubles it above
// twice the threshold.
func (e Engine) Handling(itemCount int) float64 {
	fee := 0.0
	if itemCount > e.rules.HandlingThreshold {
		fee = e.rules.HandlingFee
	}
	if itemCount > 2*e.rules.HandlingThreshold {
		fee = e.rules.HandlingFee * 2
	}
	return fee
}

func (e Engine) CurrencyRate(code string) float64 {
	return e.rules.CurrencyRate(code)
}
