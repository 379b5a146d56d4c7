package routes_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/josephkohhh/DataLoader/loader"
	"github.com/josephkohhh/DataLoader/models"
	"github.com/josephkohhh/DataLoader/routes"
	"github.com/josephkohhh/DataLoader/store"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := store.NewProductStore(db, logger)
	r := gin.New()
	routes.SetupRoutes(r, db, s, loader.New(s, "", logger))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRootWelcome(t *testing.T) {
	w := get(setup(t), "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome to DataLoader API")
}

func TestHealthz(t *testing.T) {
	w := get(setup(t), "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestMetricsExposition(t *testing.T) {
	w := get(setup(t), "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}
