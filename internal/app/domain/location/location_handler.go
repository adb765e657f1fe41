package location

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/domain"
	"github.com/voyago/atlas/internal/app/models"
)

type LocationHandler struct {
	locationRepo Repository
	logger       *zap.Logger
}

func NewLocationHandler(locationRepo Repository, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// ListLocations godoc
// @Summary List locations in a city
// @Tags locations
// @Produce json
// @Param city query string true "City ID"
// @Success 200 {array} models.Location
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/locations [get]
func (h *LocationHandler) ListLocations(c *gin.Context) {
	cityID, err := uuid.Parse(c.Query("city"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a valid city query parameter"})
		return
	}
	limit, offset := domain.Pagination(c)

	locations, err := h.locationRepo.ListByCity(c.Request.Context(), cityID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list locations", zap.String("cityID", cityID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve locations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": locations})
}

// GetLocation godoc
// @Summary Get a location
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} models.Location
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/locations/{id} [get]
func (h *LocationHandler) GetLocation(c *gin.Context) {
	locationID, ok := domain.PathID(c, h.logger, "location")
	if !ok {
		return
	}

	location, err := h.locationRepo.Get(c.Request.Context(), locationID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		h.logger.Error("Failed to fetch location", zap.String("locationID", locationID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": location})
}

// CreateLocation godoc
// @Summary Create a location
// @Tags locations
// @Accept json
// @Produce json
// @Param location body models.CreateLocationParams true "Location data"
// @Success 201 {object} models.Location
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/locations [post]
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var params models.CreateLocationParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if issues := models.Validate(&params); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": issues})
		return
	}

	location, err := h.locationRepo.Create(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Location already exists"})
			return
		}
		h.logger.Error("Failed to create location", zap.String("name", params.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": location})
}

// UpdateLocation godoc
// @Summary Update a location
// @Tags locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param location body models.UpdateLocationParams true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/locations/{id} [put]
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	locationID, ok := domain.PathID(c, h.logger, "location")
	if !ok {
		return
	}

	var params models.UpdateLocationParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if issues := models.Validate(&params); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": issues})
		return
	}

	if err := h.locationRepo.Update(c.Request.Context(), locationID, params); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		h.logger.Error("Failed to update location", zap.String("locationID", locationID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location updated successfully"})
}

// DeleteLocation godoc
// @Summary Delete a location
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/locations/{id} [delete]
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	locationID, ok := domain.PathID(c, h.logger, "location")
	if !ok {
		return
	}

	if err := h.locationRepo.Delete(c.Request.Context(), locationID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		h.logger.Error("Failed to delete location", zap.String("locationID", locationID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}
