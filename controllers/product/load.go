package productcontroller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/josephkohhh/DataLoader/loader"
)

// LoadProducts fetches the external feed and loads it into the database,
// answering with the count of newly created rows.
func LoadProducts(l *loader.Loader) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := l.LoadProducts(c.Request.Context())
		if err != nil {
			if errors.Is(err, loader.ErrEmptyPayload) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No products found in external API"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to fetch data: %v", err)})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Loaded %d new products into the database", count),
			"loaded":  count,
		})
	}
}
