package cart

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/saveur/storefront/internal/database"
	"github.com/saveur/storefront/internal/modules/currency"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(database.Schema("store"))
	require.NoError(t, err)

	return db
}

func newTestRepo(t *testing.T) (*SQLiteSnapshotRepository, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewSQLiteSnapshotRepository(db, zerolog.New(nil).Level(zerolog.Disabled)), db
}

func TestSnapshotRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)

	snap := Snapshot{
		Currency: currency.EUR,
		Items: []LineItem{
			{Name: "Paneer Tikka", UnitPrice: 10.92, BasePrice: 12.00, Category: "starters", Quantity: 2},
			{Name: "Butter Chicken", UnitPrice: 16.84, BasePrice: 18.50, Category: "mains", Quantity: 1},
		},
	}
	require.NoError(t, repo.Save(snap))

	loaded, ok, err := repo.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snap, loaded)
}

func TestSnapshotSave_ReplacesPrevious(t *testing.T) {
	repo, db := newTestRepo(t)

	require.NoError(t, repo.Save(Snapshot{Currency: currency.USD, Items: []LineItem{{Name: "Paneer Tikka", BasePrice: 12.00, Quantity: 1}}}))
	require.NoError(t, repo.Save(Snapshot{Currency: currency.INR}))

	loaded, ok, err := repo.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, currency.INR, loaded.Currency)
	assert.Empty(t, loaded.Items)

	// Only the single fixed key exists, never a history.
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM app_state").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSnapshotLoad_Absent(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, ok, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotLoad_Malformed(t *testing.T) {
	repo, db := newTestRepo(t)

	_, err := db.Exec("INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, 0)", "restaurantCart", "{not json")
	require.NoError(t, err)

	_, ok, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotStoredLayout(t *testing.T) {
	repo, db := newTestRepo(t)

	require.NoError(t, repo.Save(Snapshot{
		Currency: currency.USD,
		Items:    []LineItem{{Name: "Paneer Tikka", UnitPrice: 12.00, BasePrice: 12.00, Category: "starters", Quantity: 1}},
	}))

	var value string
	require.NoError(t, db.QueryRow("SELECT value FROM app_state WHERE key = ?", "restaurantCart").Scan(&value))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(value), &raw))
	assert.Contains(t, raw, "items")
	assert.Contains(t, raw, "currency")

	var items []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["items"], &items))
	require.Len(t, items, 1)
	assert.Contains(t, items[0], "name")
	assert.Contains(t, items[0], "price")
	assert.Contains(t, items[0], "originalPrice")
	assert.Contains(t, items[0], "category")
	assert.Contains(t, items[0], "quantity")
}
