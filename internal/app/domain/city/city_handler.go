package city

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/domain"
	"github.com/voyago/atlas/internal/app/models"
)

type CityHandler struct {
	cityRepo Repository
	logger   *zap.Logger
}

func NewCityHandler(cityRepo Repository, logger *zap.Logger) *CityHandler {
	return &CityHandler{
		cityRepo: cityRepo,
		logger:   logger,
	}
}

// ListCities godoc
// @Summary List cities
// @Tags cities
// @Produce json
// @Success 200 {array} models.City
// @Failure 500 {object} map[string]string
// @Router /api/admin/cities [get]
func (h *CityHandler) ListCities(c *gin.Context) {
	limit, offset := domain.Pagination(c)

	cities, err := h.cityRepo.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list cities", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cities})
}

// CreateCity godoc
// @Summary Create a city
// @Tags cities
// @Accept json
// @Produce json
// @Param city body models.CreateCityParams true "City data"
// @Success 201 {object} models.City
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/cities [post]
func (h *CityHandler) CreateCity(c *gin.Context) {
	var params models.CreateCityParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if issues := models.Validate(&params); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": issues})
		return
	}

	city, err := h.cityRepo.Create(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "City already exists for that country"})
			return
		}
		h.logger.Error("Failed to create city", zap.String("name", params.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create city"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": city})
}

// UpdateCity godoc
// @Summary Update a city
// @Tags cities
// @Accept json
// @Produce json
// @Param id path string true "City ID"
// @Param city body models.UpdateCityParams true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/cities/{id} [put]
func (h *CityHandler) UpdateCity(c *gin.Context) {
	cityID, ok := domain.PathID(c, h.logger, "city")
	if !ok {
		return
	}

	var params models.UpdateCityParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if params.Name == nil && params.Country == nil && params.IsDraft == nil &&
		params.CenterLatitude == nil && params.CenterLongitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide at least one field to update"})
		return
	}

	if issues := models.Validate(&params); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": issues})
		return
	}

	if err := h.cityRepo.Update(c.Request.Context(), cityID, params); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
			return
		}
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "City already exists for that country"})
			return
		}
		h.logger.Error("Failed to update city", zap.String("cityID", cityID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update city"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "City updated successfully"})
}

// DeleteCity godoc
// @Summary Delete a city
// @Tags cities
// @Produce json
// @Param id path string true "City ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/cities/{id} [delete]
func (h *CityHandler) DeleteCity(c *gin.Context) {
	cityID, ok := domain.PathID(c, h.logger, "city")
	if !ok {
		return
	}

	if err := h.cityRepo.Delete(c.Request.Context(), cityID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
			return
		}
		h.logger.Error("Failed to delete city", zap.String("cityID", cityID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete city"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "City deleted successfully"})
}

