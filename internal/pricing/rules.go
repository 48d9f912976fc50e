package pricing

import "order_report/internal/models"

// Rules holds every tunable parameter of the pricing chain. A Rules value is
// copied into the Engine and never mutated afterwards.
type Rules struct {
	TaxRate       float64
	ShippingLimit float64
	HandlingFee   float64
	MaxDiscount   float64
	LoyaltyRatio  float64

	MorningCutoffHour int
	MorningBonusRate  float64
	WeekendMultiplier float64

	DefaultZone       models.ShippingZone
	SurchargeZones    []string
	ZoneSurcharge     float64
	MidWeightPerKg    float64
	HeavyWeightPerKg  float64
	HeavyWeightLimit  float64
	HandlingThreshold int

	currencyRates map[string]float64
}

func DefaultRules() Rules {
	return Rules{
		TaxRate:       0.2,
		ShippingLimit: 50,
		HandlingFee:   2.5,
		MaxDiscount:   200,
		LoyaltyRatio:  0.01,

		MorningCutoffHour: 10,
		MorningBonusRate:  0.03,
		WeekendMultiplier: 1.05,

		DefaultZone:       models.ShippingZone{Base: 5.0, PerKg: models.DefaultPerKg},
		SurchargeZones:    []string{"ZONE3", "ZONE4"},
		ZoneSurcharge:     1.2,
		MidWeightPerKg:    0.3,
		HeavyWeightPerKg:  0.25,
		HeavyWeightLimit:  20,
		HandlingThreshold: 10,

		currencyRates: map[string]float64{
			"USD": 1.1,
			"GBP": 0.85,
		},
	}
}

// CurrencyRate returns the static conversion multiplier; unlisted codes (EUR
// included) convert at 1.0.
func (r Rules) CurrencyRate(code string) float64 {
	if rate, ok := r.currencyRates[code]; ok {
		return rate
	}
	return 1.0
}
