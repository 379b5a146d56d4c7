package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"github.com/josephkohhh/DataLoader/models"
)

var validate = validator.New()

// Dimensions is the nested {width, height, depth} sub-object. Pointer
// fields distinguish "absent" from a legitimate zero value.
type Dimensions struct {
	Width  *float64 `json:"width" validate:"required"`
	Height *float64 `json:"height" validate:"required"`
	Depth  *float64 `json:"depth" validate:"required"`
}

// Meta is the nested {createdAt, updatedAt, barcode, qrCode} sub-object.
type Meta struct {
	CreatedAt *time.Time `json:"createdAt" validate:"required"`
	UpdatedAt *time.Time `json:"updatedAt" validate:"required"`
	Barcode   *string    `json:"barcode" validate:"required"`
	QrCode    *string    `json:"qrCode" validate:"required"`
}

// Review is a single entry of the reviews list.
type Review struct {
	Rating        *int       `json:"rating" validate:"required"`
	Comment       *string    `json:"comment" validate:"required"`
	Date          *time.Time `json:"date" validate:"required"`
	ReviewerName  *string    `json:"reviewerName" validate:"required"`
	ReviewerEmail *string    `json:"reviewerEmail" validate:"required"`
}

// ProductCreate is the inbound shape for creating a product, either from
// the external feed or an /add-product/ body. The id is optional: the feed
// always carries one, a hand-written body may leave it to the db sequence.
type ProductCreate struct {
	ID                   uint        `json:"id" validate:"omitempty,gt=0"`
	Title                string      `json:"title" validate:"required,min=1"`
	Description          string      `json:"description"`
	Category             string      `json:"category"`
	Price                *float64    `json:"price" validate:"required"`
	DiscountPercentage   float64     `json:"discountPercentage"`
	Rating               float64     `json:"rating"`
	Stock                int         `json:"stock"`
	Brand                string      `json:"brand"`
	SKU                  string      `json:"sku"`
	Weight               float64     `json:"weight"`
	WarrantyInformation  string      `json:"warrantyInformation"`
	ShippingInformation  string      `json:"shippingInformation"`
	AvailabilityStatus   string      `json:"availabilityStatus"`
	ReturnPolicy         string      `json:"returnPolicy"`
	MinimumOrderQuantity int         `json:"minimumOrderQuantity"`
	Thumbnail            string      `json:"thumbnail"`
	Dimensions           *Dimensions `json:"dimensions"`
	Meta                 *Meta       `json:"meta"`
	Reviews              []Review    `json:"reviews" validate:"omitempty,dive"`
	Tags                 []string    `json:"tags"`
	Images               []string    `json:"images"`
}

// Validate checks every constraint and fails closed: a single invalid
// field rejects the whole record.
func (p *ProductCreate) Validate() error {
	return validate.Struct(p)
}

// ToModel maps the validated input onto a persistable row, field by field.
func (p *ProductCreate) ToModel() *models.Product {
	m := &models.Product{
		ID:                   p.ID,
		Title:                p.Title,
		Description:          p.Description,
		Category:             p.Category,
		Price:                *p.Price,
		DiscountPercentage:   p.DiscountPercentage,
		Rating:               p.Rating,
		Stock:                p.Stock,
		Brand:                p.Brand,
		SKU:                  p.SKU,
		Weight:               p.Weight,
		WarrantyInformation:  p.WarrantyInformation,
		ShippingInformation:  p.ShippingInformation,
		AvailabilityStatus:   p.AvailabilityStatus,
		ReturnPolicy:         p.ReturnPolicy,
		MinimumOrderQuantity: p.MinimumOrderQuantity,
		Thumbnail:            p.Thumbnail,
	}
	if p.Dimensions != nil {
		m.Dimensions = datatypes.JSONMap{
			"width":  *p.Dimensions.Width,
			"height": *p.Dimensions.Height,
			"depth":  *p.Dimensions.Depth,
		}
	}
	if p.Meta != nil {
		m.Meta = datatypes.JSONMap{
			"createdAt": p.Meta.CreatedAt.UTC().Format(time.RFC3339Nano),
			"updatedAt": p.Meta.UpdatedAt.UTC().Format(time.RFC3339Nano),
			"barcode":   *p.Meta.Barcode,
			"qrCode":    *p.Meta.QrCode,
		}
	}
	m.Reviews = jsonArray(p.Reviews)
	m.Tags = jsonArray(p.Tags)
	m.Images = jsonArray(p.Images)
	return m
}

// jsonArray serializes a slice, defaulting an absent one to [] so list
// columns are never null.
func jsonArray(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

// ProductUpdate is the partial shape for merge-updates. Nil means "leave
// unchanged", distinct from an explicit empty value. The blob fields are
// untyped so partial sub-objects are representable.
type ProductUpdate struct {
	Title                *string  `json:"title" validate:"omitempty,min=1"`
	Description          *string  `json:"description"`
	Category             *string  `json:"category"`
	Price                *float64 `json:"price"`
	DiscountPercentage   *float64 `json:"discountPercentage"`
	Rating               *float64 `json:"rating"`
	Stock                *int     `json:"stock"`
	Brand                *string  `json:"brand"`
	SKU                  *string  `json:"sku"`
	Weight               *float64 `json:"weight"`
	WarrantyInformation  *string  `json:"warrantyInformation"`
	ShippingInformation  *string  `json:"shippingInformation"`
	AvailabilityStatus   *string  `json:"availabilityStatus"`
	ReturnPolicy         *string  `json:"returnPolicy"`
	MinimumOrderQuantity *int     `json:"minimumOrderQuantity"`
	Thumbnail            *string  `json:"thumbnail"`

	Dimensions map[string]any  `json:"dimensions"`
	Meta       map[string]any  `json:"meta"`
	Reviews    json.RawMessage `json:"reviews"`
	Tags       []string        `json:"tags"`
	Images     []string        `json:"images"`
}

func (p *ProductUpdate) Validate() error {
	return validate.Struct(p)
}

// ValidationDetails flattens a validator error into a field → reason map
// so responses can enumerate every violating field.
func ValidationDetails(err error) map[string]string {
	details := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return details
	}
	for _, fe := range verrs {
		details[fe.Namespace()] = fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
	return details
}
