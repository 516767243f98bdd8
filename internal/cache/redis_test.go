package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

// setupTestRedis creates a miniredis server and a RedisCache pointing at it
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewRedisCache(client, time.Minute), mr
}

func sampleVendors() []domain.VendorAggregate {
	cny := func(s string) domain.Money {
		return domain.Money{Amount: decimal.RequireFromString(s), Currency: currency.CNY}
	}

	return []domain.VendorAggregate{
		{
			VendorID:    "vendor-a",
			VendorName:  "Vendor A",
			TotalOrders: 2,
			TotalAmount: cny("60.00"),
			MonthlyData: []domain.MonthlyVendorData{
				{Year: 2026, Month: 1, OrderCount: 2, TotalAmount: cny("60.00")},
			},
		},
		{
			VendorID:    "vendor-b",
			VendorName:  "Vendor B",
			TotalOrders: 1,
			TotalAmount: cny("5.10"),
			MonthlyData: []domain.MonthlyVendorData{
				{Year: 2026, Month: 2, OrderCount: 1, TotalAmount: cny("5.10")},
			},
		},
	}
}

func assertVendors(t *testing.T, expected, actual []domain.VendorAggregate) {
	t.Helper()

	opts := cmp.Options{
		cmp.Comparer(func(x, y currency.Unit) bool {
			return x.String() == y.String()
		}),
		cmp.Comparer(func(x, y decimal.Decimal) bool {
			return x.Equal(y)
		}),
	}

	assert.Empty(t, cmp.Diff(expected, actual, opts))
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	vendors, err := cache.Get(t.Context(), VendorReportKey(0, nil, nil))
	require.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, vendors)
}

func TestSetGet_RoundTrip(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := t.Context()

	key := VendorReportKey(0, nil, lo.ToPtr(2026))
	expected := sampleVendors()

	require.NoError(t, cache.Set(ctx, key, expected))
	assert.True(t, mr.Exists(key))

	ttl := mr.TTL(key)
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.LessOrEqual(t, ttl, time.Minute+12*time.Second)

	actual, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assertVendors(t, expected, actual)
}

func TestSet_Empty(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := t.Context()

	key := VendorReportKey(0, lo.ToPtr("nobody"), nil)

	require.NoError(t, cache.Set(ctx, key, nil))

	actual, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, actual)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)

	key := VendorReportKey(0, nil, nil)
	require.NoError(t, mr.Set(key, `[{"vendorId":`))

	_, err := cache.Get(t.Context(), key)
	require.ErrorContains(t, err, "json.Unmarshal")
}

func TestGet_InvalidCurrency(t *testing.T) {
	cache, mr := setupTestRedis(t)

	key := VendorReportKey(0, nil, nil)
	require.NoError(t, mr.Set(key, `[{"vendorId":"v","totalAmount":{"amount":"1","currency":"???"}}]`))

	_, err := cache.Get(t.Context(), key)
	require.ErrorContains(t, err, "is not valid")
}

func TestInvalidate(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := t.Context()

	before, err := cache.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, before)

	keys := []string{
		VendorReportKey(before, nil, nil),
		VendorReportKey(before, nil, lo.ToPtr(2025)),
		VendorReportKey(before, lo.ToPtr("vendor-a"), lo.ToPtr(2026)),
	}
	for _, key := range keys {
		require.NoError(t, cache.Set(ctx, key, sampleVendors()))
	}

	require.NoError(t, cache.Invalidate(ctx))

	after, err := cache.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	_, err = cache.Get(ctx, VendorReportKey(after, nil, nil))
	require.ErrorIs(t, err, ErrCacheMiss)

	// retired entries keep their TTL instead of living forever
	for _, key := range keys {
		assert.Positive(t, mr.TTL(key), key)
	}
}

func TestSet_AfterInvalidateIsNotServed(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := t.Context()

	// a rollup computed while an invalidation lands
	generation, err := cache.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx))
	require.NoError(t, cache.Set(ctx, VendorReportKey(generation, nil, nil), sampleVendors()))

	current, err := cache.Generation(ctx)
	require.NoError(t, err)

	_, err = cache.Get(ctx, VendorReportKey(current, nil, nil))
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestGeneration_ServerDown(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Close()

	_, err := cache.Generation(t.Context())
	require.Error(t, err)
	require.Error(t, cache.Invalidate(t.Context()))
}

func TestGet_ServerDown(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Close()

	_, err := cache.Get(t.Context(), VendorReportKey(0, nil, nil))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestVendorReportKey(t *testing.T) {
	tests := []struct {
		name     string
		vendorID *string
		year     *int
		want     string
	}{
		{name: "no filters", want: "vendor_report:3:all:all"},
		{name: "year only", year: lo.ToPtr(2026), want: "vendor_report:3:2026:all"},
		{name: "vendor and year", vendorID: lo.ToPtr("v1"), year: lo.ToPtr(2024), want: "vendor_report:3:2024:v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VendorReportKey(3, tt.vendorID, tt.year))
		})
	}
}

func TestNop(t *testing.T) {
	var cache VendorReportCache = Nop{}
	ctx := t.Context()

	generation, err := cache.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, generation)

	require.NoError(t, cache.Set(ctx, "k", sampleVendors()))

	_, err = cache.Get(ctx, "k")
	require.ErrorIs(t, err, ErrCacheMiss)
	require.NoError(t, cache.Invalidate(ctx))
}
