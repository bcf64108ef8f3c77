package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"warung-pos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestMissingFileReadsAsEmptyCollection(t *testing.T) {
	s := newTestStore(t)

	products, err := s.Products()
	require.NoError(t, err)
	assert.Empty(t, products)

	transactions, err := s.Transactions()
	require.NoError(t, err)
	assert.Empty(t, transactions)

	banner, err := s.Banner()
	require.NoError(t, err)
	assert.Equal(t, models.Banner{}, banner)
}

func TestProductRoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := []models.Product{
		{ID: 1, SKU: "PROD-1", Name: "Kopi Susu", SellingPrice: 12000, Price: 12000, Stock: 40},
		{ID: 2, SKU: "PROD-2", Name: "Teh Manis", SellingPrice: 8000, Price: 8000, Stock: 25, CategoryID: 9},
	}
	require.NoError(t, s.SaveProducts(in))

	out, err := s.Products()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSingletonToleratesLegacyArrayFile(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	legacy := `[{"id":1,"title":"Promo","subtitle":"Hari ini","imageBase64":"abc"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banners.json"), []byte(legacy), 0o644))

	banner, err := s.Banner()
	require.NoError(t, err)
	assert.Equal(t, "Promo", banner.Title)
	assert.Equal(t, "abc", banner.ImageBase64)

	// Saving rewrites the file as a single object and it still reads back.
	banner.Subtitle = "Besok juga"
	require.NoError(t, s.SaveBanner(banner))
	again, err := s.Banner()
	require.NoError(t, err)
	assert.Equal(t, "Besok juga", again.Subtitle)
}

func TestMutateSerializesReadModifyWrite(t *testing.T) {
	s := newTestStore(t)

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := s.Mutate(func() error {
				products, err := s.Products()
				if err != nil {
					return err
				}
				products = append(products, models.Product{ID: int64(n + 1), Name: "P"})
				return s.SaveProducts(products)
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	products, err := s.Products()
	require.NoError(t, err)
	assert.Len(t, products, writers, "no write may be lost")
}

func TestNextIDIsStrictlyIncreasing(t *testing.T) {
	prev := NextID()
	for i := 0; i < 1000; i++ {
		id := NextID()
		require.Greater(t, id, prev)
		prev = id
	}
}
