package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/josephkohhh/DataLoader/schemas"
	"github.com/josephkohhh/DataLoader/store"
)

// UpdateProduct merge-updates an existing product by ID. Fields absent
// from the body are left unchanged; the documented contract answers 404
// for a missing row and for a failed persistence alike.
func UpdateProduct(s *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var in schemas.ProductUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update body"})
			return
		}
		if err := in.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Validation failed",
				"fields": schemas.ValidationDetails(err),
			})
			return
		}

		product, err := s.MergeUpdate(uint(id), &in)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Product updated successfully",
			"product": product,
		})
	}
}
