package trip

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/domain"
	"github.com/voyago/atlas/internal/app/models"
)

type TripHandler struct {
	tripRepo Repository
	logger   *zap.Logger
}

func NewTripHandler(tripRepo Repository, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		tripRepo: tripRepo,
		logger:   logger,
	}
}

// ListTrips godoc
// @Summary List trips owned by a profile
// @Tags trips
// @Produce json
// @Param owner query string true "Owner profile ID"
// @Success 200 {array} models.Trip
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/trips [get]
func (h *TripHandler) ListTrips(c *gin.Context) {
	owner, err := uuid.Parse(c.Query("owner"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a valid owner query parameter"})
		return
	}
	limit, offset := domain.Pagination(c)

	trips, err := h.tripRepo.ListByOwner(c.Request.Context(), owner, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list trips", zap.String("owner", owner.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trips"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": trips})
}

// GetTrip godoc
// @Summary Get a trip
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} models.Trip
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/trips/{id} [get]
func (h *TripHandler) GetTrip(c *gin.Context) {
	tripID, ok := domain.PathID(c, h.logger, "trip")
	if !ok {
		return
	}

	trip, err := h.tripRepo.Get(c.Request.Context(), tripID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		h.logger.Error("Failed to fetch trip", zap.String("tripID", tripID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": trip})
}

// CreateTrip godoc
// @Summary Create a trip
// @Tags trips
// @Accept json
// @Produce json
// @Param trip body models.CreateTripParams true "Trip data"
// @Success 201 {object} models.Trip
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/trips [post]
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var params models.CreateTripParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if issues := models.Validate(&params); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": issues})
		return
	}

	trip, err := h.tripRepo.Create(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Trip already exists"})
			return
		}
		h.logger.Error("Failed to create trip", zap.String("name", params.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": trip})
}

// UpdateTrip godoc
// @Summary Update a trip
// @Tags trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param trip body models.UpdateTripParams true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/trips/{id} [put]
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	tripID, ok := domain.PathID(c, h.logger, "trip")
	if !ok {
		return
	}

	var params models.UpdateTripParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if issues := models.Validate(&params); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": issues})
		return
	}

	if err := h.tripRepo.Update(c.Request.Context(), tripID, params); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		h.logger.Error("Failed to update trip", zap.String("tripID", tripID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip updated successfully"})
}

// DeleteTrip godoc
// @Summary Delete a trip
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/trips/{id} [delete]
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	tripID, ok := domain.PathID(c, h.logger, "trip")
	if !ok {
		return
	}

	if err := h.tripRepo.Delete(c.Request.Context(), tripID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
			return
		}
		h.logger.Error("Failed to delete trip", zap.String("tripID", tripID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}
