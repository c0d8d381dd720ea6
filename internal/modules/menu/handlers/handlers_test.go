package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/saveur/storefront/internal/database"
	"github.com/saveur/storefront/internal/modules/menu"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(database.Schema("store"))
	require.NoError(t, err)

	log := zerolog.New(nil).Level(zerolog.Disabled)
	svc := menu.NewService(menu.NewRepository(db, log), nil, log)
	h := NewHandler(svc, log)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func get(t *testing.T, r chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandleGetMenu(t *testing.T) {
	r := newTestRouter(t)

	rec := get(t, r, "/menu")
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data menu.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "USD", string(response.Data.Currency))
	assert.NotEmpty(t, response.Data.Categories)
}

func TestHandleGetMenu_WithCurrency(t *testing.T) {
	r := newTestRouter(t)

	rec := get(t, r, "/menu?currency=INR")
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data menu.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "INR", string(response.Data.Currency))
}

func TestHandleGetMenu_UnknownCurrency(t *testing.T) {
	r := newTestRouter(t)

	rec := get(t, r, "/menu?currency=GBP")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetCategory(t *testing.T) {
	r := newTestRouter(t)

	rec := get(t, r, "/menu/starters?currency=EUR")
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data struct {
			Category string          `json:"category"`
			Currency string          `json:"currency"`
			Dishes   []menu.DishView `json:"dishes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "starters", response.Data.Category)
	assert.Equal(t, "EUR", response.Data.Currency)
	assert.NotEmpty(t, response.Data.Dishes)
}
