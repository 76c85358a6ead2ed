// internal/handlers/taxonomy.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/petbao/petbao-backend/internal/services"
	"github.com/petbao/petbao-backend/internal/utils"
)

type TaxonomyHandler struct {
	taxonomyService *services.TaxonomyService
}

func NewTaxonomyHandler(taxonomyService *services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// GET /api/categories
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	categories, err := h.taxonomyService.ListCategories()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// GET /api/species
func (h *TaxonomyHandler) GetSpecies(c *gin.Context) {
	var categoryID *uuid.UUID
	if idStr := c.Query("category"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			categoryID = &id
		}
	}

	species, err := h.taxonomyService.ListSpecies(categoryID, c.Query("search"))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"species": species,
	})
}

// GET /api/gene-tags
func (h *TaxonomyHandler) GetGeneTags(c *gin.Context) {
	var speciesID *uuid.UUID
	if idStr := c.Query("species"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			speciesID = &id
		}
	}

	tags, err := h.taxonomyService.ListGeneTags(speciesID, c.Query("search"))
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"gene_tags": tags,
	})
}
