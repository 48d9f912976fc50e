package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_report/internal/models"
	"order_report/internal/report"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func sampleReport() *report.Report {
	return &report.Report{
		Customers: []report.CustomerReport{
			{
				CustomerID:     "C1",
				Name:           "Chloé",
				Level:          models.LevelPremium,
				Zone:           "ZONE2",
				Currency:       "USD",
				Subtotal:       1234.56,
				VolumeDiscount: 185.18,
				TotalDiscount:  185.18,
				MorningBonus:   0.1,
				Tax:            230.87,
				Shipping:       0,
				Weight:         2.7,
				ItemCount:      3,
				Total:          1408.1,
				LoyaltyPoints:  12.35,
			},
		},
		GrandTotal:        1408.1,
		TotalTaxCollected: 230.87,
	}
}

func TestInitialize_InvalidURL(t *testing.T) {
	for _, url := range []string{"http://localhost:6379", "://missing-scheme"} {
		c, err := Initialize(context.Background(), url)
		require.Error(t, err, url)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "failed to parse Redis URL")
	}
}

func TestInitialize_Connects(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := Initialize(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	require.NoError(t, c.Close())
}

func TestGetReport_EmptyIsCacheMiss(t *testing.T) {
	c, _ := newTestClient(t)
	rep, err := c.GetReport(context.Background())
	require.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, rep)
}

func TestSetReport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)
	want := sampleReport()

	require.NoError(t, c.SetReport(ctx, want, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL(reportKey))

	got, err := c.GetReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSetReport_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)
	require.NoError(t, c.SetReport(ctx, sampleReport(), 30*time.Second))

	mr.FastForward(31 * time.Second)
	_, err := c.GetReport(ctx)
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestDeleteReport(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)
	require.NoError(t, c.SetReport(ctx, sampleReport(), time.Minute))

	require.NoError(t, c.DeleteReport(ctx))
	_, err := c.GetReport(ctx)
	require.ErrorIs(t, err, ErrCacheMiss)

	// deleting an absent key is not an error
	require.NoError(t, c.DeleteReport(ctx))
}

func TestGetReport_CorruptValue(t *testing.T) {
	c, mr := newTestClient(t)
	require.NoError(t, mr.Set(reportKey, "{not json"))

	_, err := c.GetReport(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Contains(t, err.Error(), "failed to unmarshal report")
}

func TestGetReport_ServerDown(t *testing.T) {
	c, mr := newTestClient(t)
	mr.Close()

	_, err := c.GetReport(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Contains(t, err.Error(), "failed to get report")
}
