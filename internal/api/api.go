package api

import (
	"errors"
	"github.com/labstack/echo/v4"
	"product-console/internal/entity"
	"product-console/internal/service"
	"strconv"
	"time"
)

type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new instance of ProductHandler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct inserts a product --> POST /products
func (ph *ProductHandler) CreateProduct(c echo.Context) error {
	product := entity.Product{}
	if err := c.Bind(&product); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := ph.productService.AddProduct(c.Request().Context(), &product); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(201, product)
}

// UpdateProductPrice changes the price of a product --> PUT /products/:id/price
func (ph *ProductHandler) UpdateProductPrice(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}
	update := struct {
		Price *int `json:"price"`
	}{}
	if err := c.Bind(&update); err != nil || update.Price == nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	affected, err := ph.productService.UpdateProductPrice(c.Request().Context(), productID, *update.Price)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]int64{"affected": affected})
}

// DeleteProduct removes a product --> DELETE /products/:id
func (ph *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	affected, err := ph.productService.DeleteProduct(c.Request().Context(), productID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]int64{"affected": affected})
}

// GetProduct returns the first product with the id --> GET /products/:id
func (ph *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	product, err := ph.productService.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return errorJSON(c, err)
	}
	if product == nil {
		return c.JSON(404, map[string]string{"error": "Product not found"})
	}

	return c.JSON(200, product)
}

// ListProducts returns every product --> GET /products
func (ph *ProductHandler) ListProducts(c echo.Context) error {
	products, err := ph.productService.ListProducts(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	if products == nil {
		products = []*entity.Product{}
	}

	return c.JSON(200, products)
}

// Health reports service status --> GET /products/health
func (ph *ProductHandler) Health(c echo.Context) error {
	count, err := ph.productService.CountProducts(c.Request().Context())
	if err != nil {
		return c.JSON(503, map[string]interface{}{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}

	return c.JSON(200, map[string]interface{}{
		"status":   "ok",
		"service":  "product-console",
		"products": count,
		"time":     time.Now().Format(time.RFC3339),
	})
}

func errorJSON(c echo.Context, err error) error {
	if errors.Is(err, entity.ErrInvalidProduct) {
		return c.JSON(400, map[string]string{"error": err.Error()})
	}
	return c.JSON(500, map[string]string{"error": err.Error()})
}
