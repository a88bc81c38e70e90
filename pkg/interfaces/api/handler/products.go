package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/transferplan/pkg/application/dto"
	"github.com/vsinha/transferplan/pkg/application/services/catalog"
)

const productNotFound = "Product not found"

type ProductsHandler struct{ svc *catalog.CatalogService }

func NewProductsHandler(svc *catalog.CatalogService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// List GET /products
func (h *ProductsHandler) List(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get GET /products/:id
func (h *ProductsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeCatalogError(c, err, productNotFound)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create POST /products; an existing product_id is replaced in place
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.ProductInput
	if !bindAndValidate(c, &req) {
		return
	}
	product, _, err := h.svc.CreateProduct(c.Request.Context(), req.ToEntity())
	if err != nil {
		writeCatalogError(c, err, productNotFound)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Update PUT /products/:id
func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ProductPatch
	if !bindAndValidate(c, &req) {
		return
	}
	product, err := h.svc.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		writeCatalogError(c, err, productNotFound)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete DELETE /products/:id
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		writeCatalogError(c, err, productNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
