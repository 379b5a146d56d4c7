package routes

import (
	"github.com/gin-gonic/gin"

	productcontroller "github.com/josephkohhh/DataLoader/controllers/product"
	"github.com/josephkohhh/DataLoader/loader"
	"github.com/josephkohhh/DataLoader/store"
)

// SetupProductRoutes wires the product CRUD and ingestion endpoints.
func SetupProductRoutes(r *gin.Engine, s *store.ProductStore, l *loader.Loader) {
	r.GET("/get-all-products", productcontroller.GetProducts(s))
	r.GET("/get_product_by_id/:id", productcontroller.GetProductByID(s))
	r.POST("/load-products", productcontroller.LoadProducts(l))
	r.POST("/add-product/", productcontroller.AddProduct(s))
	r.PUT("/update-product/:id", productcontroller.UpdateProduct(s))
	r.DELETE("/delete-product/:id", productcontroller.DeleteProduct(s))
	r.DELETE("/delete-all-products", productcontroller.DeleteAllProducts(s))
}
