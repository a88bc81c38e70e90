package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/transferplan/pkg/application/dto"
	"github.com/vsinha/transferplan/pkg/application/services/catalog"
)

const plantNotFound = "Plant not found"

type PlantsHandler struct{ svc *catalog.CatalogService }

func NewPlantsHandler(svc *catalog.CatalogService) *PlantsHandler {
	return &PlantsHandler{svc: svc}
}

// List GET /plants
func (h *PlantsHandler) List(c *gin.Context) {
	plants, err := h.svc.ListPlants(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, plants)
}

// Get GET /plants/:id
func (h *PlantsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	plant, err := h.svc.GetPlant(c.Request.Context(), id)
	if err != nil {
		writeCatalogError(c, err, plantNotFound)
		return
	}
	c.JSON(http.StatusOK, plant)
}

// Create POST /plants; a duplicate plant_id is a conflict
func (h *PlantsHandler) Create(c *gin.Context) {
	var req dto.PlantInput
	if !bindAndValidate(c, &req) {
		return
	}
	plant, err := h.svc.CreatePlant(c.Request.Context(), req.ToEntity())
	if err != nil {
		writeCatalogError(c, err, plantNotFound)
		return
	}
	c.JSON(http.StatusCreated, plant)
}

// Update PUT /plants/:id
func (h *PlantsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.PlantPatch
	if !bindAndValidate(c, &req) {
		return
	}
	plant, err := h.svc.UpdatePlant(c.Request.Context(), id, req)
	if err != nil {
		writeCatalogError(c, err, plantNotFound)
		return
	}
	c.JSON(http.StatusOK, plant)
}

// Delete DELETE /plants/:id
func (h *PlantsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeletePlant(c.Request.Context(), id); err != nil {
		writeCatalogError(c, err, plantNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
