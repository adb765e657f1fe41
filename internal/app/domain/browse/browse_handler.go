package browse

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
)

type BrowseHandler struct {
	browseRepo Repository
	logger     *zap.Logger
}

func NewBrowseHandler(browseRepo Repository, logger *zap.Logger) *BrowseHandler {
	return &BrowseHandler{
		browseRepo: browseRepo,
		logger:     logger,
	}
}

func limitQuery(c *gin.Context) int {
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return 0
}

// BrowseTable godoc
// @Summary Browse raw rows of one table
// @Tags browse
// @Produce json
// @Param table path string true "Table name"
// @Param limit query int false "Row limit"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/browse/{table} [get]
func (h *BrowseHandler) BrowseTable(c *gin.Context) {
	table := c.Param("table")

	rows, err := h.browseRepo.Rows(c.Request.Context(), table, limitQuery(c))
	if err != nil {
		if errors.Is(err, models.ErrUnsupportedTable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported table: " + table})
			return
		}
		h.logger.Error("Failed to browse table", zap.String("table", table), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to browse table"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// BrowseAll godoc
// @Summary Browse raw rows of every table
// @Tags browse
// @Produce json
// @Param limit query int false "Per-table row limit"
// @Success 200 {object} map[string][]map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /api/admin/browse [get]
func (h *BrowseHandler) BrowseAll(c *gin.Context) {
	snapshot, err := h.browseRepo.Snapshot(c.Request.Context(), limitQuery(c))
	if err != nil {
		h.logger.Error("Failed to browse tables", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to browse tables"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshot})
}
