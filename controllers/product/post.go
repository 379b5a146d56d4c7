package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/josephkohhh/DataLoader/schemas"
	"github.com/josephkohhh/DataLoader/store"
)

// AddProduct validates the body and inserts it unless the id is already
// taken. A duplicate is not an error: the existing row wins and the
// message says so.
func AddProduct(s *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in schemas.ProductCreate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product body"})
			return
		}
		if err := in.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Validation failed",
				"fields": schemas.ValidationDetails(err),
			})
			return
		}

		product, created, err := s.InsertIfAbsent(in.ToModel())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to add product"})
			return
		}
		if !created {
			c.JSON(http.StatusOK, gin.H{
				"message":    "Product already exists",
				"product_id": product.ID,
			})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":    "Product added successfully",
			"product_id": product.ID,
		})
	}
}
