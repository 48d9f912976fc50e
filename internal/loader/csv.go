package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"order_report/internal/models"
)

// ErrMissingFile is returned when a required input table does not exist.
var ErrMissingFile = errors.New("loader: required file missing")

const (
	CustomersFile     = "customers.csv"
	ProductsFile      = "products.csv"
	ShippingZonesFile = "shipping_zones.csv"
	PromotionsFile    = "promotions.csv"
	OrdersFile        = "orders.csv"
)

// CSVSource reads the five reference tables from a directory.
type CSVSource struct {
	Dir string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

func (s *CSVSource) Load(ctx context.Context) (*models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ds := models.NewDataset()
	var err error

	if ds.Customers, err = loadFile(s.path(CustomersFile), LoadCustomers); err != nil {
		return nil, err
	}
	if ds.Products, err = loadFile(s.path(ProductsFile), LoadProducts); err != nil {
		return nil, err
	}
	if ds.ShippingZones, err = loadFile(s.path(ShippingZonesFile), LoadShippingZones); err != nil {
		return nil, err
	}
	// promotions are optional
	ds.Promotions, err = loadFile(s.path(PromotionsFile), LoadPromotions)
	if errors.Is(err, ErrMissingFile) {
		ds.Promotions, err = map[string]models.Promotion{}, nil
	}
	if err != nil {
		return nil, err
	}
	if ds.Orders, err = loadFile(s.path(OrdersFile), LoadOrders); err != nil {
		return nil, err
	}
	return ds, nil
}

func (s *CSVSource) path(name string) string {
	return filepath.Join(s.Dir, name)
}

func loadFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return zero, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return zero, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	v, err := parse(f)
	if err != nil {
		return zero, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return v, nil
}

// LoadCustomers reads positional columns id,name[,level[,shipping_zone[,currency]]].
// Absent trailing columns take their defaults; rows without a name are skipped.
func LoadCustomers(r io.Reader) (map[string]models.Customer, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	customers := make(map[string]models.Customer)
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		c := models.Customer{
			ID:           row[0],
			Name:         row[1],
			Level:        models.LevelBasic,
			ShippingZone: models.DefaultShippingZone,
			Currency:     models.DefaultCurrency,
		}
		if len(row) > 2 {
			c.Level = models.CustomerLevel(row[2])
		}
		if len(row) > 3 {
			c.ShippingZone = row[3]
		}
		if len(row) > 4 {
			c.Currency = row[4]
		}
		customers[c.ID] = c
	}
	return customers, nil
}

// LoadProducts splits each line on commas without quote handling. A line whose
// price or weight does not parse is skipped.
func LoadProducts(r io.Reader) (map[string]models.Product, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	products := make(map[string]models.Product)
	for i, line := range lines {
		if i == 0 {
			continue
		}
		parts := strings.Split(strings.TrimSpace(line), ",")
		if len(parts) < 4 {
			continue
		}
		price, err := parseFloat(parts[3])
		if err != nil {
			continue
		}
		p := models.Product{
			ID:       parts[0],
			Name:     parts[1],
			Category: parts[2],
			Price:    price,
			Weight:   models.DefaultProductWeight,
			Taxable:  true,
		}
		if len(parts) > 4 {
			if p.Weight, err = parseFloat(parts[4]); err != nil {
				continue
			}
		}
		if len(parts) > 5 {
			p.Taxable = strings.ToLower(parts[5]) == "true"
		}
		if !models.Valid(p) {
			continue
		}
		products[p.ID] = p
	}
	return products, nil
}

// LoadShippingZones reads header-keyed rows zone,base[,per_kg].
func LoadShippingZones(r io.Reader) (map[string]models.ShippingZone, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	zones := make(map[string]models.ShippingZone)
	for _, rec := range records {
		code, ok := rec.get("zone")
		if !ok {
			continue
		}
		base, err := parseFloat(rec.value("base"))
		if err != nil {
			continue
		}
		z := models.ShippingZone{Zone: code, Base: base, PerKg: models.DefaultPerKg}
		if rec.hasColumn("per_kg") {
			if z.PerKg, err = parseFloat(rec.value("per_kg")); err != nil {
				continue
			}
		}
		if !models.Valid(z) {
			continue
		}
		zones[code] = z
	}
	return zones, nil
}

// LoadPromotions reads code,type,value[,active]. Any active value other than
// "false" counts as active.
func LoadPromotions(r io.Reader) (map[string]models.Promotion, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	promotions := make(map[string]models.Promotion)
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		p := strings.Split(line, ",")
		if len(p) < 3 {
			continue
		}
		promo := models.Promotion{
			Code:   p[0],
			Type:   models.PromotionType(p[1]),
			Value:  p[2],
			Active: true,
		}
		if len(p) > 3 {
			promo.Active = p[3] != "false"
		}
		promotions[promo.Code] = promo
	}
	return promotions, nil
}

// LoadOrders reads header-keyed order rows, skipping rows whose quantity or
// unit price is unparseable, non-positive or negative. Missing optional
// columns take their defaults.
func LoadOrders(r io.Reader) ([]models.Order, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	for _, rec := range records {
		id, okID := rec.get("id")
		customerID, okCustomer := rec.get("customer_id")
		productID, okProduct := rec.get("product_id")
		if !okID || !okCustomer || !okProduct {
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(rec.value("qty")))
		if err != nil {
			continue
		}
		price, err := parseFloat(rec.value("unit_price"))
		if err != nil {
			continue
		}

		o := models.Order{
			Position:   len(orders),
			ID:         id,
			CustomerID: customerID,
			ProductID:  productID,
			Qty:        qty,
			UnitPrice:  price,
			Date:       rec.value("date"),
			PromoCode:  rec.value("promo_code"),
			Time:       models.DefaultOrderTime,
		}
		// a short row with a time column yields "", which pricing rejects
		if rec.hasColumn("time") {
			o.Time = rec.value("time")
		}
		if !models.Valid(o) {
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func readRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// record is one header-keyed csv row.
type record struct {
	header map[string]int
	cells  []string
}

func (r record) hasColumn(key string) bool {
	_, ok := r.header[key]
	return ok
}

// get reports false when the column is absent or the row is too short.
func (r record) get(key string) (string, bool) {
	i, ok := r.header[key]
	if !ok || i >= len(r.cells) {
		return "", false
	}
	return r.cells[i], true
}

func (r record) value(key string) string {
	v, _ := r.get(key)
	return v
}

func readRecords(r io.Reader) ([]record, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make(map[string]int, len(rows[0]))
	// later duplicate columns win
	for i, name := range rows[0] {
		header[name] = i
	}
	records := make([]record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, record{header: header, cells: row})
	}
	return records, nil
}

func readLines(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(b), "\n"), nil
}
