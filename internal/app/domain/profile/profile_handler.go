package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
)

type ProfileHandler struct {
	profileRepo Repository
	logger      *zap.Logger
}

func NewProfileHandler(profileRepo Repository, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// SyncProfile godoc
// @Summary Ensure a profile row exists for an auth identity
// @Tags profiles
// @Accept json
// @Produce json
// @Param profile body models.UpsertProfileParams true "Profile identity"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/profiles/sync [post]
func (h *ProfileHandler) SyncProfile(c *gin.Context) {
	var params models.UpsertProfileParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if issues := models.Validate(&params); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": issues})
		return
	}

	profile, err := h.profileRepo.Upsert(c.Request.Context(), params)
	if err != nil {
		h.logger.Error("Failed to sync profile", zap.String("authID", params.AuthID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// GetProfile godoc
// @Summary Fetch a profile by auth identity
// @Tags profiles
// @Produce json
// @Param auth_id query string true "Auth ID"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/profiles [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	authID := c.Query("auth_id")
	if authID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide an auth_id query parameter"})
		return
	}

	profile, err := h.profileRepo.GetByAuthID(c.Request.Context(), authID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		h.logger.Error("Failed to fetch profile", zap.String("authID", authID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}
