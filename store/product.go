package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/josephkohhh/DataLoader/models"
	"github.com/josephkohhh/DataLoader/schemas"
)

// ErrNotFound reports that no product row exists for the requested id.
// It is kept distinct from backend errors internally; the HTTP layer may
// still conflate the two where the documented contract says 404.
var ErrNotFound = errors.New("product not found")

// ProductStore is the single-table persistence layer. The *gorm.DB owns
// the connection pool and is injected at wiring time, never global.
type ProductStore struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewProductStore(db *gorm.DB, log *slog.Logger) *ProductStore {
	if log == nil {
		log = slog.Default()
	}
	return &ProductStore{db: db, log: log}
}

// FetchAll returns every product ordered by id. The read path is
// fail-soft: a backend error is logged and yields an empty slice.
func (s *ProductStore) FetchAll() []models.Product {
	var products []models.Product
	if err := s.db.Order("id").Find(&products).Error; err != nil {
		s.log.Error("fetching products failed", "err", err)
		return []models.Product{}
	}
	return products
}

// FetchByID returns the product or ErrNotFound. Backend errors are logged
// and returned as-is.
func (s *ProductStore) FetchByID(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("fetching product failed", "id", id, "err", err)
		return nil, err
	}
	return &p, nil
}

// InsertIfAbsent persists a new product unless a row with the same id
// already exists, in which case the existing row is returned unmodified
// with created == false. Two concurrent inserts for one id can both pass
// the existence check; the table's primary-key constraint then decides,
// and the loser surfaces as a persistence error.
func (s *ProductStore) InsertIfAbsent(p *models.Product) (*models.Product, bool, error) {
	if p.ID != 0 {
		var existing models.Product
		err := s.db.First(&existing, p.ID).Error
		if err == nil {
			s.log.Info("skipping duplicate product", "id", p.ID, "title", existing.Title)
			return &existing, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("duplicate check failed", "id", p.ID, "err", err)
			return nil, false, err
		}
	}
	if err := s.db.Create(p).Error; err != nil {
		s.log.Error("inserting product failed", "id", p.ID, "err", err)
		return nil, false, err
	}
	s.log.Info("inserted product", "id", p.ID, "title", p.Title)
	return p, true, nil
}

// MergeUpdate applies a partial update to the product with the given id.
// Absent fields are left unchanged; blob fields follow the per-field
// policy in models.BlobStrategies; meta.updatedAt is stamped on every
// successful update. The whole operation is one transaction.
func (s *ProductStore) MergeUpdate(id uint, in *schemas.ProductUpdate) (*models.Product, error) {
	var p models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		applyScalars(&p, in)

		p.Dimensions = mergeBlobMap("dimensions", p.Dimensions, in.Dimensions)
		p.Meta = mergeBlobMap("meta", p.Meta, in.Meta)
		if in.Reviews != nil {
			p.Reviews = datatypes.JSON(in.Reviews)
		}
		if in.Tags != nil {
			p.Tags = marshalList(in.Tags)
		}
		if in.Images != nil {
			p.Images = marshalList(in.Images)
		}

		if p.Meta == nil {
			p.Meta = datatypes.JSONMap{}
		}
		p.Meta["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)

		return tx.Save(&p).Error
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("updating product failed", "id", id, "err", err)
		}
		return nil, err
	}
	return &p, nil
}

// DeleteByID removes the product and returns what was deleted.
func (s *ProductStore) DeleteByID(id uint) (*models.Product, error) {
	var p models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(&p).Error
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("deleting product failed", "id", id, "err", err)
		}
		return nil, err
	}
	return &p, nil
}

// DeleteAll removes every row and restarts the id sequence at 1, so the
// next sequence-assigned record reuses the lowest id.
func (s *ProductStore) DeleteAll() error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return resetSequence(tx)
	})
	if err != nil {
		s.log.Error("deleting all products failed", "err", err)
	}
	return err
}

func resetSequence(tx *gorm.DB) error {
	switch tx.Dialector.Name() {
	case "postgres":
		return tx.Exec("ALTER SEQUENCE products_id_seq RESTART WITH 1").Error
	case "sqlite":
		// sqlite_sequence only exists once an autoincrement rowid has been
		// allocated; a missing table is not a failure.
		tx.Exec("DELETE FROM sqlite_sequence WHERE name = 'products'")
		return nil
	}
	return nil
}

// applyScalars copies every provided scalar field onto the row. Explicit
// per-field mapping so a new column requires a deliberate decision here.
func applyScalars(p *models.Product, in *schemas.ProductUpdate) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.DiscountPercentage != nil {
		p.DiscountPercentage = *in.DiscountPercentage
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.Weight != nil {
		p.Weight = *in.Weight
	}
	if in.WarrantyInformation != nil {
		p.WarrantyInformation = *in.WarrantyInformation
	}
	if in.ShippingInformation != nil {
		p.ShippingInformation = *in.ShippingInformation
	}
	if in.AvailabilityStatus != nil {
		p.AvailabilityStatus = *in.AvailabilityStatus
	}
	if in.ReturnPolicy != nil {
		p.ReturnPolicy = *in.ReturnPolicy
	}
	if in.MinimumOrderQuantity != nil {
		p.MinimumOrderQuantity = *in.MinimumOrderQuantity
	}
	if in.Thumbnail != nil {
		p.Thumbnail = *in.Thumbnail
	}
}

// mergeBlobMap combines a stored mapping blob with an incoming partial
// value according to the field's declared strategy.
func mergeBlobMap(field string, stored datatypes.JSONMap, incoming map[string]any) datatypes.JSONMap {
	if incoming == nil {
		return stored
	}
	if models.BlobStrategies[field] == models.Replace || stored == nil {
		return datatypes.JSONMap(incoming)
	}
	merged := make(datatypes.JSONMap, len(stored)+len(incoming))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}

func marshalList(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}
