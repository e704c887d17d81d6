package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-mandi/internal/catalog"
)

const sampleCatalog = `{
  "Vegetables": {
    "Onion": [
      {"url": "", "id": "veg-1", "image": "https://img.example/onion.jpg", "date": "2024-01-02", "title": "Nashik Red Onion", "price": "₹ 18 /- Kg", "seller": "Agro Traders", "location": "Nashik, Maharashtra"}
    ]
  },
  "Grains": {
    "Wheat": [
      {"url": "", "id": "grain-1", "image": "N/A", "date": "2024-01-03", "title": "Sharbati Wheat", "price": "₹ 2,400 /- Quintal", "seller": "Mandi Bros", "location": "Sehore, Madhya Pradesh"}
    ]
  }
}`

func writeCatalogFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commodity_data.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func newTestCache(t *testing.T) (*catalog.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return catalog.NewCache(client, time.Minute), mr
}

func TestServiceLoadsAndParses(t *testing.T) {
	cache, _ := newTestCache(t)
	svc := catalog.NewService(writeCatalogFile(t, sampleCatalog), cache)

	ctx := context.Background()
	products, err := svc.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	onion, err := svc.ProductByID(ctx, "veg-1")
	require.NoError(t, err)
	require.Equal(t, "Vegetables", onion.Category)
	require.Equal(t, 18.0, onion.Price)
	require.Equal(t, "Kg", onion.Unit)
	require.Equal(t, "Maharashtra", onion.State)

	wheat, err := svc.ProductByID(ctx, "grain-1")
	require.NoError(t, err)
	require.Equal(t, 2400.0, wheat.Price)
	require.Equal(t, "Quintal", wheat.Unit)
	require.Empty(t, wheat.Image, "N/A images are dropped")

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Grains", "Vegetables"}, categories)

	_, err = svc.ProductByID(ctx, "missing")
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestServiceCachesAcrossInstances(t *testing.T) {
	cache, _ := newTestCache(t)
	path := writeCatalogFile(t, sampleCatalog)

	ctx := context.Background()
	first := catalog.NewService(path, cache)
	_, err := first.Products(ctx)
	require.NoError(t, err)

	// A second instance sharing the cache must not need the file.
	second := catalog.NewService(filepath.Join(t.TempDir(), "does-not-exist.json"), cache)
	products, err := second.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
}

func TestResetForcesReload(t *testing.T) {
	cache, _ := newTestCache(t)
	path := writeCatalogFile(t, sampleCatalog)
	svc := catalog.NewService(path, cache)

	ctx := context.Background()
	products, err := svc.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	// Shrink the file, reset, and expect the new contents to be served.
	require.NoError(t, os.WriteFile(path, []byte(`{"Grains": {"Wheat": []}}`), 0o600))
	require.NoError(t, svc.Reset(ctx))

	products, err = svc.Products(ctx)
	require.NoError(t, err)
	require.Empty(t, products)
}
