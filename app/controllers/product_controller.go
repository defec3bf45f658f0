package controllers

import (
	"io"
	"net/http"

	"github.com/ecotrackhq/ecotrack/app/services"
	"github.com/ecotrackhq/ecotrack/pkg/bind"
	"github.com/ecotrackhq/ecotrack/pkg/response"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// Index handles GET /api/products. ?type= filters by product type.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.List(r.URL.Query().Get("type"))
	if err != nil {
		fail(w, err)
		return
	}
	response.List(w, products, len(products))
}

// Show handles GET /api/products/{id}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	product, err := c.products.Get(id)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, product)
}

// Store handles POST /api/products.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Create(in)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, product)
}

// Update handles PUT /api/products/{id}.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Update(id, in)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, product)
}

// Destroy handles DELETE /api/products/{id}.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	if err := c.products.Delete(id); err != nil {
		fail(w, err)
		return
	}
	response.Message(w, "Product deleted")
}

// UploadImage handles POST /api/products/{id}/images with a multipart
// "image" file.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Product not found")
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

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "could not read image")
		return
	}

	product, err := c.products.AttachImage(id, header.Filename, data)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, product)
}
