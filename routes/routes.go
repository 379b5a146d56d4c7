package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/josephkohhh/DataLoader/loader"
	"github.com/josephkohhh/DataLoader/metrics"
	"github.com/josephkohhh/DataLoader/store"
)

// SetupRoutes is the single entry-point that wires up the API surface.
func SetupRoutes(r *gin.Engine, db *gorm.DB, s *store.ProductStore, l *loader.Loader) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to DataLoader API\nGo to /docs to test out the API"})
	})

	r.GET("/healthz", healthz(db))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	SetupProductRoutes(r, s, l)
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
