package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"order_report/internal/models"
)

const seedBatchSize = 200

// DatasetRepository reads and writes the five reference tables.
type DatasetRepository interface {
	Load(ctx context.Context) (*models.Dataset, error)
	Seed(ctx context.Context, ds *models.Dataset) error
}

type datasetRepository struct {
	db *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) DatasetRepository {
	return &datasetRepository{db: db}
}

// Load reads every table. Rows failing field validation are dropped the same
// way the CSV loader drops them, and orders keep their stored position.
func (r *datasetRepository) Load(ctx context.Context) (*models.Dataset, error) {
	db := r.db.WithContext(ctx)
	ds := models.NewDataset()

	var customers []models.Customer
	if err := db.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	ds.Customers = lo.KeyBy(customers, func(c models.Customer) string { return c.ID })

	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	ds.Products = lo.KeyBy(validOnly(products), func(p models.Product) string { return p.ID })

	var zones []models.ShippingZone
	if err := db.Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("failed to load shipping zones: %w", err)
	}
	ds.ShippingZones = lo.KeyBy(validOnly(zones), func(z models.ShippingZone) string { return z.Zone })

	var promotions []models.Promotion
	if err := db.Find(&promotions).Error; err != nil {
		return nil, fmt.Errorf("failed to load promotions: %w", err)
	}
	ds.Promotions = lo.KeyBy(promotions, func(p models.Promotion) string { return p.Code })

	var orders []models.Order
	if err := db.Order("position").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	ds.Orders = validOnly(orders)

	return ds, nil
}

// Seed inserts a dataset in one transaction. Map-backed tables are written in
// key order.
func (r *datasetRepository) Seed(ctx context.Context, ds *models.Dataset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := insert(tx, "customers", sortedValues(ds.Customers)); err != nil {
			return err
		}
		if err := insert(tx, "products", sortedValues(ds.Products)); err != nil {
			return err
		}
		if err := insert(tx, "shipping zones", sortedValues(ds.ShippingZones)); err != nil {
			return err
		}
		if err := insert(tx, "promotions", sortedValues(ds.Promotions)); err != nil {
			return err
		}
		return insert(tx, "orders", ds.Orders)
	})
}

func insert[T any](tx *gorm.DB, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(rows, seedBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert %s: %w", table, err)
	}
	return nil
}

func validOnly[T any](rows []T) []T {
	return lo.Filter(rows, func(row T, _ int) bool {
		return models.Valid(row)
	})
}

func sortedValues[T any](m map[string]T) []T {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return lo.Map(keys, func(k string, _ int) T { return m[k] })
}
