package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/josephkohhh/DataLoader/store"
)

// GetProductByID returns a single product.
// URL param: /get_product_by_id/:id
func GetProductByID(s *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		product, err := s.FetchByID(uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product ID %d not found", id)})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
