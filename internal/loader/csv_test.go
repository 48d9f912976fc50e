package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_report/internal/models"
	"order_report/internal/pricing"
	"order_report/internal/report"
)

func TestLoadCustomers_Defaults(t *testing.T) {
	in := "id,name,level,shipping_zone,currency\n" +
		"C1,Alice,PREMIUM,ZONE2,USD\n" +
		"C2,Bob\n" +
		"C3,Carol,BASIC,ZONE3\n" +
		"broken\n"

	customers, err := LoadCustomers(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, customers, 3)

	assert.Equal(t, models.Customer{ID: "C1", Name: "Alice", Level: models.LevelPremium, ShippingZone: "ZONE2", Currency: "USD"}, customers["C1"])
	assert.Equal(t, models.Customer{ID: "C2", Name: "Bob", Level: models.LevelBasic, ShippingZone: "ZONE1", Currency: "EUR"}, customers["C2"])
	assert.Equal(t, "EUR", customers["C3"].Currency)
	assert.Equal(t, "ZONE3", customers["C3"].ShippingZone)
}

func TestLoadProducts_SkipsMalformed(t *testing.T) {
	in := "id,name,category,price,weight,taxable\n" +
		"P1,Laptop,Electronics,1200.00,2.5,true\n" +
		"P2,Book,Books,15,0.8,FALSE\n" +
		"P3,Poster,Decor,12.00\n" +
		"P4,Broken,Office,abc,1.0,true\n" +
		"P5,Heavy,Office,10,heavy,true\n" +
		"P6,Negative,Office,-1,1,true\n" +
		"P7,Weightless,Office,1,0,true\n" +
		"\n"

	products, err := LoadProducts(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, models.Product{ID: "P1", Name: "Laptop", Category: "Electronics", Price: 1200, Weight: 2.5, Taxable: true}, products["P1"])
	assert.False(t, products["P2"].Taxable)
	assert.Equal(t, 1.0, products["P3"].Weight)
	assert.True(t, products["P3"].Taxable)
}

func TestLoadProducts_OutOfRangeFallsBackToOrderValues(t *testing.T) {
	products, err := LoadProducts(strings.NewReader("id,name,category,price,weight,taxable\n" +
		"P1,Refund,Office,-5.00,0.5,false\n" +
		"P2,Ghost,Office,10.00,0,false\n" +
		"P3,Lamp,Decor,10.00,2.0,false\n"))
	require.NoError(t, err)
	assert.NotContains(t, products, "P1")
	assert.NotContains(t, products, "P2")
	require.Contains(t, products, "P3")

	ds := models.NewDataset()
	ds.Products = products
	ds.Orders = []models.Order{
		{Position: 0, ID: "O1", CustomerID: "C1", ProductID: "P1", Qty: 2, UnitPrice: 10, Time: "12:00"},
		{Position: 1, ID: "O2", CustomerID: "C2", ProductID: "P3", Qty: 1, UnitPrice: 99, Time: "12:00"},
	}
	rep, err := report.Build(ds, pricing.NewEngine(pricing.DefaultRules()))
	require.NoError(t, err)

	// dropped product: order unit price, weight 1.0 per unit, taxable
	c1, ok := rep.Find("C1")
	require.True(t, ok)
	assert.Equal(t, 20.0, c1.Subtotal)
	assert.Equal(t, 2.0, c1.Weight)
	assert.Equal(t, 4.0, c1.Tax)
	assert.Equal(t, 29.0, c1.Total)

	// kept product: catalog price, weight and tax flag
	c2, ok := rep.Find("C2")
	require.True(t, ok)
	assert.Equal(t, 10.0, c2.Subtotal)
	assert.Equal(t, 2.0, c2.Weight)
	assert.Equal(t, 0.0, c2.Tax)
	assert.Equal(t, 15.0, c2.Total)
}

func TestLoadShippingZones(t *testing.T) {
	zones, err := LoadShippingZones(strings.NewReader("zone,base,per_kg\nZONE1,5.0,0.5\nZONE2,7.5,0.7\nBAD,x,1\n"))
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, models.ShippingZone{Zone: "ZONE2", Base: 7.5, PerKg: 0.7}, zones["ZONE2"])

	zones, err = LoadShippingZones(strings.NewReader("zone,base\nZONE9,3\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, zones["ZONE9"].PerKg)
}

func TestLoadPromotions(t *testing.T) {
	in := "code,type,value,active\r\n" +
		"P10,PERCENTAGE,10,true\r\n" +
		"OFF,FIXED,5,false\r\n" +
		"NOFLAG,FIXED,2\r\n" +
		"\r\n" +
		"SHORT,FIXED\r\n"

	promos, err := LoadPromotions(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, promos, 3)

	assert.Equal(t, models.Promotion{Code: "P10", Type: models.PromotionPercentage, Value: "10", Active: true}, promos["P10"])
	assert.False(t, promos["OFF"].Active)
	assert.True(t, promos["NOFLAG"].Active)
}

func TestLoadOrders(t *testing.T) {
	in := "id,customer_id,product_id,qty,unit_price,date,promo_code,time\n" +
		"O1,C1,P1,2,30,2024-01-06,P10,09:00\n" +
		"O2,C1,P1,0,30,,,12:00\n" +
		"O3,C1,P1,1,-1,,,12:00\n" +
		"O4,C1,P1,two,30,,,12:00\n" +
		"O5,C2,P2, 3 ,1.5,,,\n" +
		"O6,C3,P3,1,2\n"

	orders, err := LoadOrders(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, models.Order{Position: 0, ID: "O1", CustomerID: "C1", ProductID: "P1", Qty: 2, UnitPrice: 30, Date: "2024-01-06", PromoCode: "P10", Time: "09:00"}, orders[0])
	assert.Equal(t, 1, orders[1].Position)
	assert.Equal(t, 3, orders[1].Qty)
	assert.Equal(t, "", orders[1].Time)
	assert.Equal(t, "", orders[2].Time)
	assert.Equal(t, "", orders[2].Date)
}

func TestLoadOrders_DefaultsWhenColumnsAbsent(t *testing.T) {
	orders, err := LoadOrders(strings.NewReader("id,customer_id,product_id,qty,unit_price\nO1,C1,P1,1,10\n"))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "12:00", orders[0].Time)
	assert.Equal(t, "", orders[0].Date)
	assert.Equal(t, "", orders[0].PromoCode)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestCSVSource_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CustomersFile, "id,name\nC1,Alice\n")
	writeFile(t, dir, ProductsFile, "id,name,category,price\nP1,Pen,Office,1.5\n")
	writeFile(t, dir, ShippingZonesFile, "zone,base,per_kg\nZONE1,5,0.5\n")
	writeFile(t, dir, OrdersFile, "id,customer_id,product_id,qty,unit_price\nO1,C1,P1,2,1.5\n")

	ds, err := NewCSVSource(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Customers, 1)
	assert.Len(t, ds.Products, 1)
	assert.Len(t, ds.ShippingZones, 1)
	assert.Empty(t, ds.Promotions)
	assert.Len(t, ds.Orders, 1)
}

func TestCSVSource_MissingRequiredFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CustomersFile, "id,name\nC1,Alice\n")

	_, err := NewCSVSource(dir).Load(context.Background())
	require.ErrorIs(t, err, ErrMissingFile)
}

func TestCSVSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCSVSource(t.TempDir()).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
