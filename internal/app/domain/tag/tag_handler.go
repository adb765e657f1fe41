package tag

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/domain"
	"github.com/voyago/atlas/internal/app/models"
)

type TagHandler struct {
	tagRepo Repository
	logger  *zap.Logger
}

func NewTagHandler(tagRepo Repository, logger *zap.Logger) *TagHandler {
	return &TagHandler{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

// ListTags godoc
// @Summary List tags
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Failure 500 {object} map[string]string
// @Router /api/admin/tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	limit, offset := domain.Pagination(c)

	tags, err := h.tagRepo.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list tags", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tags"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tags})
}

// CreateTag godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body models.CreateTagParams true "Tag data"
// @Success 201 {object} models.Tag
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var params models.CreateTagParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if issues := models.Validate(&params); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": issues})
		return
	}

	tag, err := h.tagRepo.Create(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tag already exists"})
			return
		}
		h.logger.Error("Failed to create tag", zap.String("name", params.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": tag})
}

// UpdateTag godoc
// @Summary Update a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param tag body models.UpdateTagParams true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/tags/{id} [put]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	tagID, ok := domain.PathID(c, h.logger, "tag")
	if !ok {
		return
	}

	var params models.UpdateTagParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if params.Name == nil && params.Icon == nil && params.Type == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide at least one field to update"})
		return
	}

	if issues := models.Validate(&params); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": issues})
		return
	}

	if err := h.tagRepo.Update(c.Request.Context(), tagID, params); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		h.logger.Error("Failed to update tag", zap.String("tagID", tagID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag updated successfully"})
}

// DeleteTag godoc
// @Summary Delete a tag
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	tagID, ok := domain.PathID(c, h.logger, "tag")
	if !ok {
		return
	}

	if err := h.tagRepo.Delete(c.Request.Context(), tagID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		h.logger.Error("Failed to delete tag", zap.String("tagID", tagID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
