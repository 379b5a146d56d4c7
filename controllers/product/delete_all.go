package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/josephkohhh/DataLoader/store"
)

// DeleteAllProducts wipes the products table and restarts the id
// sequence at 1.
func DeleteAllProducts(s *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.DeleteAll(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete all products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All products deleted and id sequence reset"})
	}
}
