package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/josephkohhh/DataLoader/store"
)

// GetProducts returns every stored product. The store's read path is
// fail-soft, so a backend outage yields an empty list rather than a 500.
func GetProducts(s *store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.FetchAll())
	}
}
