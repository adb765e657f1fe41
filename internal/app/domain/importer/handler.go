package importer

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/voyago/atlas/internal/app/models"
	"github.com/voyago/atlas/internal/app/observability/metrics"
)

type Handler struct {
	importer *Importer
	logger   *zap.Logger
}

func NewHandler(importer *Importer, logger *zap.Logger) *Handler {
	return &Handler{importer: importer, logger: logger}
}

type importRequest struct {
	Table string `json:"table"`
	CSV   string `json:"csv"`
}

// HandleImport godoc
// @Summary Bulk-import CSV rows into one collection
// @Description Parse, validate and insert CSV rows, reporting the inserted count and a per-row error list
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]Result
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/import [post]
func (h *Handler) HandleImport(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid import request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Table == "" || req.CSV == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing table or csv in request body"})
		return
	}

	table, err := ParseTable(req.Table)
	if err != nil {
		h.logger.Warn("Unsupported import table", zap.String("table", req.Table))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Spreadsheet exports routinely ship with a UTF-8 BOM.
	csvText, _, err := transform.String(unicode.UTF8BOM.NewDecoder(), req.CSV)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV is not valid UTF-8 text"})
		return
	}

	records := Materialize(ParseCSV(csvText))
	if len(records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV appears to be empty or has no data rows"})
		return
	}

	metrics.Get().ImportBatchesTotal.Add(c.Request.Context(), 1)

	result, err := h.importer.Run(c.Request.Context(), table, records)
	if err != nil {
		if errors.Is(err, models.ErrUnsupportedTable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Import batch failed", zap.String("table", req.Table), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process CSV import"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
