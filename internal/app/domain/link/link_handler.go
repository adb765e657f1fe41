package link

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
)

type LinkHandler struct {
	linkRepo Repository
	logger   *zap.Logger
}

func NewLinkHandler(linkRepo Repository, logger *zap.Logger) *LinkHandler {
	return &LinkHandler{
		linkRepo: linkRepo,
		logger:   logger,
	}
}

func (h *LinkHandler) bindPair(c *gin.Context, params any) bool {
	if err := c.ShouldBindJSON(params); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	if issues := models.Validate(params); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": issues})
		return false
	}
	return true
}

// AttachTrip godoc
// @Summary Attach a location to a trip
// @Tags links
// @Accept json
// @Produce json
// @Param link body models.CreateLocationTripLinkParams true "Trip-location pair"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/trip-links [post]
func (h *LinkHandler) AttachTrip(c *gin.Context) {
	var params models.CreateLocationTripLinkParams
	if !h.bindPair(c, &params) {
		return
	}

	trip := uuid.MustParse(params.Trip)
	location := uuid.MustParse(params.Location)

	if err := h.linkRepo.AttachTrip(c.Request.Context(), trip, location); err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Location is already attached to this trip"})
			return
		}
		h.logger.Error("Failed to attach location to trip", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach location to trip"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Location attached to trip"})
}

// DetachTrip godoc
// @Summary Detach a location from a trip
// @Tags links
// @Accept json
// @Produce json
// @Param link body models.CreateLocationTripLinkParams true "Trip-location pair"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/trip-links [delete]
func (h *LinkHandler) DetachTrip(c *gin.Context) {
	var params models.CreateLocationTripLinkParams
	if !h.bindPair(c, &params) {
		return
	}

	trip := uuid.MustParse(params.Trip)
	location := uuid.MustParse(params.Location)

	if err := h.linkRepo.DetachTrip(c.Request.Context(), trip, location); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		h.logger.Error("Failed to detach location from trip", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach location from trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location detached from trip"})
}

// AttachTag godoc
// @Summary Attach a tag to a location
// @Tags links
// @Accept json
// @Produce json
// @Param link body models.CreateLocationTagLinkParams true "Tag-location pair"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/tag-links [post]
func (h *LinkHandler) AttachTag(c *gin.Context) {
	var params models.CreateLocationTagLinkParams
	if !h.bindPair(c, &params) {
		return
	}

	tag := uuid.MustParse(params.Tag)
	location := uuid.MustParse(params.Location)

	if err := h.linkRepo.AttachTag(c.Request.Context(), tag, location); err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tag is already attached to this location"})
			return
		}
		h.logger.Error("Failed to attach tag to location", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach tag to location"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Tag attached to location"})
}

// DetachTag godoc
// @Summary Detach a tag from a location
// @Tags links
// @Accept json
// @Produce json
// @Param link body models.CreateLocationTagLinkParams true "Tag-location pair"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/tag-links [delete]
func (h *LinkHandler) DetachTag(c *gin.Context) {
	var params models.CreateLocationTagLinkParams
	if !h.bindPair(c, &params) {
		return
	}

	tag := uuid.MustParse(params.Tag)
	location := uuid.MustParse(params.Location)

	if err := h.linkRepo.DetachTag(c.Request.Context(), tag, location); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		h.logger.Error("Failed to detach tag from location", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach tag from location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag detached from location"})
}

// TripLocations godoc
// @Summary List location IDs attached to a trip
// @Tags links
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {array} string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/trips/{id}/locations [get]
func (h *LinkHandler) TripLocations(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID format"})
		return
	}

	ids, err := h.linkRepo.TripLocations(c.Request.Context(), tripID)
	if err != nil {
		h.logger.Error("Failed to list trip locations", zap.String("tripID", tripID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trip locations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ids})
}

// LocationTags godoc
// @Summary List tags attached to a location
// @Tags links
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {array} models.Tag
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/locations/{id}/tags [get]
func (h *LinkHandler) LocationTags(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID format"})
		return
	}

	tags, err := h.linkRepo.LocationTags(c.Request.Context(), locationID)
	if err != nil {
		h.logger.Error("Failed to list location tags", zap.String("locationID", locationID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve location tags"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tags})
}
