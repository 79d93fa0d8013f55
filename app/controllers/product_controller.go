package controllers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/pehnava/pehnava/app/models"
	"github.com/pehnava/pehnava/app/services"
	"github.com/pehnava/pehnava/pkg/bind"
	"github.com/pehnava/pehnava/pkg/response"
	"github.com/pehnava/pehnava/pkg/storage"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// Index serves the public catalogue.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, products)
}

// Show serves one product.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}

	product, err := c.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, product)
}

// Mine serves the seller's own listings.
func (c *ProductController) Mine(w http.ResponseWriter, r *http.Request) {
	seller, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	products, err := c.catalog.ListOwnProducts(r.Context(), seller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, products)
}

// Store creates a listing owned by the authenticated seller.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	seller, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var product models.Product
	if errs, err := bind.JSON(r, &product); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.catalog.CreateProduct(r.Context(), seller, &product); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Created(w, product)
}

// Update edits one of the seller's own listings.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	seller, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}

	var product models.Product
	if errs, err := bind.JSON(r, &product); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	product.ID = id

	if err := c.catalog.UpdateProduct(r.Context(), seller, &product); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, product)
}

// Destroy removes one of the seller's own listings.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	seller, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := objectIDParam(r, "id")
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}

	if err := c.catalog.DeleteProduct(r.Context(), seller, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Message(w, "Product removed")
}

// UploadImage stores a product image on the configured disk and returns
// its public URL. The seller then sets it on the product via Update.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	seller, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, 8<<20))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "could not read image")
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	path := fmt.Sprintf("products/%s/%d%s", seller.Hex(), time.Now().UnixNano(), ext)
	if err := storage.Put(path, data); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.Created(w, map[string]string{"url": storage.URL(path)})
}
