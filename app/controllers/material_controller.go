package controllers

import (
	"net/http"

	"github.com/ecotrackhq/ecotrack/app/services"
	"github.com/ecotrackhq/ecotrack/pkg/bind"
	"github.com/ecotrackhq/ecotrack/pkg/response"
)

type MaterialController struct {
	materials *services.MaterialService
}

func NewMaterialController(materials *services.MaterialService) *MaterialController {
	return &MaterialController{materials: materials}
}

// Index handles GET /api/materials.
func (c *MaterialController) Index(w http.ResponseWriter, r *http.Request) {
	materials, err := c.materials.List()
	if err != nil {
		fail(w, err)
		return
	}
	response.List(w, materials, len(materials))
}

// Show handles GET /api/materials/{id}.
func (c *MaterialController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Material not found")
		return
	}

	material, err := c.materials.Get(id)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, material)
}

// Store handles POST /api/materials.
func (c *MaterialController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.MaterialInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	material, err := c.materials.Create(in)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, material)
}

// Update handles PUT /api/materials/{id}.
func (c *MaterialController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Material not found")
		return
	}

	var in services.MaterialInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	material, err := c.materials.Update(id, in)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, material)
}

// Destroy handles DELETE /api/materials/{id}.
func (c *MaterialController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Material not found")
		return
	}

	if err := c.materials.Delete(id); err != nil {
		fail(w, err)
		return
	}
	response.Message(w, "Material deleted")
}
