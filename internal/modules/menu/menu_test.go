package menu

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/saveur/storefront/internal/database"
	"github.com/saveur/storefront/internal/modules/currency"
)

func newStoreDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(database.Schema("store"))
	require.NoError(t, err)
	return db
}

func newCacheDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(database.Schema("cache"))
	require.NoError(t, err)
	return db
}

func testLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

func TestRepositoryAll_Seeded(t *testing.T) {
	repo := NewRepository(newStoreDB(t), testLogger())

	dishes, err := repo.All()
	require.NoError(t, err)
	assert.NotEmpty(t, dishes)

	// Every seeded dish belongs to a known category and has a positive price.
	known := map[string]bool{}
	for _, cat := range Categories() {
		known[cat] = true
	}
	for _, d := range dishes {
		assert.True(t, known[d.Category], "unknown category %q for %s", d.Category, d.Name)
		assert.Greater(t, d.PriceUSD, 0.0)
	}
}

func TestRepositoryListByCategory(t *testing.T) {
	repo := NewRepository(newStoreDB(t), testLogger())

	starters, err := repo.ListByCategory("starters")
	require.NoError(t, err)
	require.NotEmpty(t, starters)
	for _, d := range starters {
		assert.Equal(t, "starters", d.Category)
	}

	none, err := repo.ListByCategory("breakfast")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepositoryGetByName(t *testing.T) {
	repo := NewRepository(newStoreDB(t), testLogger())

	dish, err := repo.GetByName("Paneer Tikka")
	require.NoError(t, err)
	require.NotNil(t, dish)
	assert.Equal(t, "starters", dish.Category)
	assert.Equal(t, 12.00, dish.PriceUSD)

	missing, err := repo.GetByName("Flambéed Unicorn")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestServiceMenu(t *testing.T) {
	repo := NewRepository(newStoreDB(t), testLogger())
	svc := NewService(repo, nil, testLogger())

	view, err := svc.Menu(currency.EUR)
	require.NoError(t, err)
	assert.Equal(t, currency.EUR, view.Currency)
	require.NotEmpty(t, view.Categories)

	// Categories come out in display order with no empty groups.
	order := map[string]int{}
	for i, cat := range Categories() {
		order[cat] = i
	}
	last := -1
	for _, cv := range view.Categories {
		idx, ok := order[cv.Category]
		require.True(t, ok)
		assert.Greater(t, idx, last)
		last = idx
		require.NotEmpty(t, cv.Dishes)
		for _, d := range cv.Dishes {
			assert.Greater(t, d.Price, 0.0)
			assert.NotEmpty(t, d.PriceFormatted)
		}
	}
}

func TestServiceMenu_ConvertsPrices(t *testing.T) {
	repo := NewRepository(newStoreDB(t), testLogger())
	svc := NewService(repo, nil, testLogger())

	views, err := svc.Category("starters", currency.EUR)
	require.NoError(t, err)

	var found bool
	for _, d := range views {
		if d.Name == "Paneer Tikka" {
			found = true
			assert.Equal(t, 12.00, d.PriceUSD)
			assert.InDelta(t, 10.92, d.Price, 1e-9)
			assert.Equal(t, "€10.92", d.PriceFormatted)
		}
	}
	assert.True(t, found)
}

func TestServiceMenu_UsesCache(t *testing.T) {
	storeDB := newStoreDB(t)
	repo := NewRepository(storeDB, testLogger())
	cache := NewViewCache(newCacheDB(t), time.Hour, testLogger())
	svc := NewService(repo, cache, testLogger())

	first, err := svc.Menu(currency.USD)
	require.NoError(t, err)

	// Mutating the catalog after the first render proves the second
	// call was served from cache.
	_, err = storeDB.Exec("DELETE FROM menu_items")
	require.NoError(t, err)

	second, err := svc.Menu(currency.USD)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A different currency misses the cache and sees the empty catalog.
	third, err := svc.Menu(currency.EUR)
	require.NoError(t, err)
	assert.Empty(t, third.Categories)
}

func TestViewCache_RoundTrip(t *testing.T) {
	cache := NewViewCache(newCacheDB(t), time.Hour, testLogger())

	view := View{
		Currency: currency.AED,
		Categories: []CategoryView{{
			Category: "starters",
			Dishes: []DishView{{
				ID: 1, Name: "Paneer Tikka", Category: "starters",
				PriceUSD: 12.00, Price: 44.04, PriceFormatted: "د.إ44.04",
			}},
		}},
	}
	cache.Put("AED", view)

	got, ok := cache.Get("AED")
	require.True(t, ok)
	assert.Equal(t, view, *got)
}

func TestViewCache_MissAndExpiry(t *testing.T) {
	db := newCacheDB(t)
	cache := NewViewCache(db, time.Hour, testLogger())

	_, ok := cache.Get("USD")
	assert.False(t, ok)

	cache.Put("USD", View{Currency: currency.USD})

	// Backdate the entry past the TTL.
	_, err := db.Exec("UPDATE menu_views SET cached_at = ?", time.Now().Add(-2*time.Hour).Unix())
	require.NoError(t, err)

	_, ok = cache.Get("USD")
	assert.False(t, ok)
}

func TestViewCache_PurgeStale(t *testing.T) {
	db := newCacheDB(t)
	cache := NewViewCache(db, time.Hour, testLogger())

	cache.Put("USD", View{Currency: currency.USD})
	cache.Put("EUR", View{Currency: currency.EUR})

	_, err := db.Exec("UPDATE menu_views SET cached_at = ? WHERE currency = 'USD'", time.Now().Add(-2*time.Hour).Unix())
	require.NoError(t, err)

	purged, err := cache.PurgeStale()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, ok := cache.Get("EUR")
	assert.True(t, ok)
}
