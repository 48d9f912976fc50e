package report

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"order_report/internal/models"
	"order_report/internal/pricing"
)

// CustomerReport is the fully priced invoice block of one customer. Tax is
// already converted to the customer's currency.
type CustomerReport struct {
	CustomerID      string               `json:"customer_id"`
	Name            string               `json:"name"`
	Level           models.CustomerLevel `json:"level"`
	Zone            string               `json:"zone"`
	Currency        string               `json:"currency"`
	Subtotal        float64              `json:"subtotal"`
	VolumeDiscount  float64              `json:"volume_discount"`
	LoyaltyDiscount float64              `json:"loyalty_discount"`
	TotalDiscount   float64              `json:"total_discount"`
	MorningBonus    float64              `json:"morning_bonus"`
	Tax             float64              `json:"tax"`
	Shipping        float64              `json:"shipping"`
	Weight          float64              `json:"weight"`
	ItemCount       int                  `json:"item_count"`
	Handling        float64              `json:"handling"`
	Total           float64              `json:"total"`
	LoyaltyPoints   float64              `json:"loyalty_points"`
}

// Report is the result of one run. Customers are sorted by id.
// GrandTotal and TotalTaxCollected sum converted amounts across currencies.
type Report struct {
	Customers         []CustomerReport `json:"customers"`
	GrandTotal        float64          `json:"grand_total"`
	TotalTaxCollected float64          `json:"total_tax_collected"`
}

type customerAggregate struct {
	subtotal     float64
	weight       float64
	morningBonus float64
	items        []models.Order
}

func (a *customerAggregate) firstOrderDate() string {
	if len(a.items) == 0 {
		return ""
	}
	return a.items[0].Date
}

// Build prices every customer of the dataset. The first pricing error aborts
// the run and no report is returned.
func Build(ds *models.Dataset, engine pricing.Engine) (*Report, error) {
	points := engine.LoyaltyPoints(ds.Orders)

	aggregates, err := group(ds, engine)
	if err != nil {
		return nil, err
	}

	ids := lo.Keys(aggregates)
	sort.Strings(ids)

	rep := &Report{Customers: make([]CustomerReport, 0, len(ids))}
	for _, id := range ids {
		cr := priceCustomer(ds, engine, id, aggregates[id], points[id])
		rep.GrandTotal += cr.Total
		rep.TotalTaxCollected += cr.Tax
		rep.Customers = append(rep.Customers, cr)
	}
	return rep, nil
}

func group(ds *models.Dataset, engine pricing.Engine) (map[string]*customerAggregate, error) {
	aggregates := make(map[string]*customerAggregate)
	for _, o := range ds.Orders {
		product := ds.Product(o.ProductID)
		line, err := engine.PriceLine(o, product, ds.Promotion(o.PromoCode))
		if err != nil {
			return nil, fmt.Errorf("report: price customer %s: %w", o.CustomerID, err)
		}

		agg, ok := aggregates[o.CustomerID]
		if !ok {
			agg = &customerAggregate{}
			aggregates[o.CustomerID] = agg
		}

		weight := models.DefaultProductWeight
		if p, ok := product.Get(); ok {
			weight = p.Weight
		}
		agg.subtotal += line.Total
		// explicit conversion rounds the product before it is accumulated
		agg.weight += float64(weight * float64(o.Qty))
		agg.items = append(agg.items, o)
		agg.morningBonus += line.MorningBonus
	}
	return aggregates, nil
}

// priceCustomer runs the rule chain in its fixed order: capping reads both
// discounts and tax reads the capped total.
func priceCustomer(ds *models.Dataset, engine pricing.Engine, id string, agg *customerAggregate, points float64) CustomerReport {
	cust := ds.CustomerOrUnknown(id)
	sub := agg.subtotal

	volume := engine.VolumeDiscount(sub, cust.Level)
	volume = engine.WeekendBonus(volume, agg.firstOrderDate())
	loyalty := engine.LoyaltyDiscount(points)
	discounts := engine.CapDiscounts(volume, loyalty)

	taxable := sub - discounts.Total
	tax := engine.Tax(taxable, taxLines(ds, agg.items))

	zone := ds.ZoneOrDefault(cust.ShippingZone, engine.Rules().DefaultZone)
	shipping := engine.Shipping(sub, agg.weight, cust.ShippingZone, zone)

	itemCount := len(agg.items)
	handling := engine.Handling(itemCount)

	rate := engine.CurrencyRate(cust.Currency)
	total := pricing.Round2((taxable + tax + shipping + handling) * rate)

	return CustomerReport{
		CustomerID:      id,
		Name:            cust.Name,
		Level:           cust.Level,
		Zone:            cust.ShippingZone,
		Currency:        cust.Currency,
		Subtotal:        sub,
		VolumeDiscount:  discounts.Volume,
		LoyaltyDiscount: discounts.Loyalty,
		TotalDiscount:   discounts.Total,
		MorningBonus:    agg.morningBonus,
		Tax:             tax * rate,
		Shipping:        shipping,
		Weight:          agg.weight,
		ItemCount:       itemCount,
		Handling:        handling,
		Total:           total,
		LoyaltyPoints:   points,
	}
}

func taxLines(ds *models.Dataset, items []models.Order) []pricing.TaxLine {
	return lo.Map(items, func(o models.Order, _ int) pricing.TaxLine {
		p, ok := ds.Product(o.ProductID).Get()
		return pricing.TaxLine{Qty: o.Qty, Known: ok, Price: p.Price, Taxable: p.Taxable}
	})
}

// Find returns the block of one customer.
func (r *Report) Find(customerID string) (CustomerReport, bool) {
	return lo.Find(r.Customers, func(c CustomerReport) bool {
		return c.CustomerID == customerID
	})
}
