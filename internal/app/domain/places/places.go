package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const mapboxGeocodeURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// Feature is the subset of a Mapbox geocoding feature we forward to
// clients.
type Feature struct {
	ID        string    `json:"id"`
	PlaceName string    `json:"place_name"`
	Center    []float64 `json:"center"`
	Relevance float64   `json:"relevance"`
}

type geocodeResponse struct {
	Features []Feature `json:"features"`
}

type Client struct {
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(token string, logger *zap.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (cl *Client) Forward(ctx context.Context, query string, limit int) ([]Feature, error) {
	if limit <= 0 || limit > 10 {
		limit = 5
	}

	endpoint := fmt.Sprintf("%s/%s.json?access_token=%s&limit=%d",
		mapboxGeocodeURL, url.PathEscape(query), url.QueryEscape(cl.token), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := cl.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	return decoded.Features, nil
}

type PlacesHandler struct {
	client *Client
	logger *zap.Logger
}

func NewPlacesHandler(client *Client, logger *zap.Logger) *PlacesHandler {
	return &PlacesHandler{
		client: client,
		logger: logger,
	}
}

// Geocode godoc
// @Summary Forward-geocode a free-text place query
// @Tags places
// @Produce json
// @Param q query string true "Place query"
// @Success 200 {array} places.Feature
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/admin/places/geocode [get]
func (h *PlacesHandler) Geocode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a q query parameter"})
		return
	}

	features, err := h.client.Forward(c.Request.Context(), query, 5)
	if err != nil {
		h.logger.Error("Geocode lookup failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Geocoding service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": features})
}
