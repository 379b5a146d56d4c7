package store_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/josephkohhh/DataLoader/models"
	"github.com/josephkohhh/DataLoader/schemas"
	"github.com/josephkohhh/DataLoader/store"
)

func memdb(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func newStore(t *testing.T) (*store.ProductStore, *gorm.DB) {
	t.Helper()
	db := memdb(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return store.NewProductStore(db, logger), db
}

func sampleProduct(id uint) *models.Product {
	return &models.Product{
		ID:    id,
		Title: "Essence Mascara",
		Price: 9.99,
		Meta:  datatypes.JSONMap{"barcode": "A1", "qrCode": "Q1"},
		Tags:  datatypes.JSON(`["a","b"]`),
	}
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestInsertIfAbsentDuplicateIsNoOp(t *testing.T) {
	s, db := newStore(t)

	_, created, err := s.InsertIfAbsent(sampleProduct(1))
	require.NoError(t, err)
	require.True(t, created)

	dup := sampleProduct(1)
	dup.Title = "Imposter"
	got, created, err := s.InsertIfAbsent(dup)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Essence Mascara", got.Title)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFetchByIDMissing(t *testing.T) {
	s, _ := newStore(t)

	got, err := s.FetchByID(42)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFetchAllOrderedAndFailSoft(t *testing.T) {
	s, _ := newStore(t)

	_, _, err := s.InsertIfAbsent(sampleProduct(3))
	require.NoError(t, err)
	_, _, err = s.InsertIfAbsent(sampleProduct(1))
	require.NoError(t, err)

	all := s.FetchAll()
	require.Len(t, all, 2)
	assert.EqualValues(t, 1, all[0].ID)
	assert.EqualValues(t, 3, all[1].ID)
}

func TestMergeUpdateShallowMergesMeta(t *testing.T) {
	s, _ := newStore(t)
	_, _, err := s.InsertIfAbsent(sampleProduct(1))
	require.NoError(t, err)

	got, err := s.MergeUpdate(1, &schemas.ProductUpdate{
		Meta: map[string]any{"barcode": "A2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "A2", got.Meta["barcode"])
	assert.Equal(t, "Q1", got.Meta["qrCode"])
	assert.NotEmpty(t, got.Meta["updatedAt"])

	// persisted state matches what was returned
	stored, err := s.FetchByID(1)
	require.NoError(t, err)
	assert.Equal(t, "A2", stored.Meta["barcode"])
	assert.Equal(t, "Q1", stored.Meta["qrCode"])
}

func TestMergeUpdateReplacesSequenceFields(t *testing.T) {
	s, _ := newStore(t)
	_, _, err := s.InsertIfAbsent(sampleProduct(1))
	require.NoError(t, err)

	got, err := s.MergeUpdate(1, &schemas.ProductUpdate{Tags: []string{"c"}})
	require.NoError(t, err)

	var tags []string
	require.NoError(t, json.Unmarshal(got.Tags, &tags))
	assert.Equal(t, []string{"c"}, tags)
}

func TestMergeUpdateSkipsAbsentFields(t *testing.T) {
	s, _ := newStore(t)
	_, _, err := s.InsertIfAbsent(sampleProduct(1))
	require.NoError(t, err)

	got, err := s.MergeUpdate(1, &schemas.ProductUpdate{Price: f64Ptr(19.99)})
	require.NoError(t, err)

	assert.Equal(t, 19.99, got.Price)
	assert.Equal(t, "Essence Mascara", got.Title)
	assert.Equal(t, "A1", got.Meta["barcode"])

	var tags []string
	require.NoError(t, json.Unmarshal(got.Tags, &tags))
	assert.Equal(t, []string{"a", "b"}, tags)
}

func TestMergeUpdateStampsUpdatedAtWithoutMeta(t *testing.T) {
	s, _ := newStore(t)
	p := sampleProduct(1)
	p.Meta = nil
	_, _, err := s.InsertIfAbsent(p)
	require.NoError(t, err)

	got, err := s.MergeUpdate(1, &schemas.ProductUpdate{Title: strPtr("Renamed")})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", got.Title)
	assert.NotEmpty(t, got.Meta["updatedAt"])
}

func TestMergeUpdateNotFound(t *testing.T) {
	s, _ := newStore(t)

	got, err := s.MergeUpdate(99, &schemas.ProductUpdate{Title: strPtr("X")})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteByID(t *testing.T) {
	s, _ := newStore(t)
	_, _, err := s.InsertIfAbsent(sampleProduct(1))
	require.NoError(t, err)

	got, err := s.DeleteByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Essence Mascara", got.Title)

	_, err = s.DeleteByID(1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteAllResetsSequence(t *testing.T) {
	s, _ := newStore(t)
	_, _, err := s.InsertIfAbsent(sampleProduct(7))
	require.NoError(t, err)

	require.NoError(t, s.DeleteAll())
	assert.Empty(t, s.FetchAll())

	// a record without an explicit id takes the next sequence value,
	// which restarts at 1 after DeleteAll
	fresh := &models.Product{Title: "First again", Price: 1.0}
	got, created, err := s.InsertIfAbsent(fresh)
	require.NoError(t, err)
	require.True(t, created)
	assert.EqualValues(t, 1, got.ID)
}
