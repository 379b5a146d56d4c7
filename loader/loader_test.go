package loader_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/josephkohhh/DataLoader/loader"
	"github.com/josephkohhh/DataLoader/models"
	"github.com/josephkohhh/DataLoader/store"
)

func newStore(t *testing.T) *store.ProductStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return store.NewProductStore(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadProductsCountsOnlyNewlyCreated(t *testing.T) {
	st := newStore(t)
	// id 100 is already stored: the feed's copy is a duplicate
	_, created, err := st.InsertIfAbsent(&models.Product{ID: 100, Title: "Already here", Price: 1})
	require.NoError(t, err)
	require.True(t, created)

	srv := serve(t, `{"products": [
		{"id": 101, "title": "New one", "price": 10.5},
		{"id": 100, "title": "Duplicate", "price": 2},
		{"id": 102, "title": "", "price": 3},
		{"id": 103, "title": "No price"},
		{"id": 104, "title": 12345, "price": 4},
		{"id": 105, "title": "Another new one", "price": 5}
	]}`)

	l := loader.New(st, srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	count, err := l.LoadProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// the duplicate kept its stored title
	got, err := st.FetchByID(100)
	require.NoError(t, err)
	assert.Equal(t, "Already here", got.Title)
}

func TestLoadProductsEmptyPayload(t *testing.T) {
	srv := serve(t, `{"products": []}`)
	l := loader.New(newStore(t), srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := l.LoadProducts(context.Background())
	assert.ErrorIs(t, err, loader.ErrEmptyPayload)
}

func TestFetchWithoutURL(t *testing.T) {
	l := loader.New(newStore(t), "", slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := l.Fetch(context.Background())
	assert.ErrorIs(t, err, loader.ErrNoURL)
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	l := loader.New(newStore(t), srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := l.Fetch(context.Background())
	assert.ErrorContains(t, err, "502")
}
