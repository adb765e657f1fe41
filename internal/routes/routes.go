package routes

import (
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/domain/browse"
	"github.com/voyago/atlas/internal/app/domain/city"
	"github.com/voyago/atlas/internal/app/domain/importer"
	"github.com/voyago/atlas/internal/app/domain/link"
	"github.com/voyago/atlas/internal/app/domain/location"
	"github.com/voyago/atlas/internal/app/domain/places"
	"github.com/voyago/atlas/internal/app/domain/profile"
	"github.com/voyago/atlas/internal/app/domain/tag"
	"github.com/voyago/atlas/internal/app/domain/trip"
	"github.com/voyago/atlas/internal/app/middleware"
	"github.com/voyago/atlas/internal/pkg/config"
)

// SetupRouter wires repositories and handlers onto the gin engine. All
// mutating routes live under /api/admin behind RequireAdmin.
func SetupRouter(cfg *config.Config, pool *pgxpool.Pool, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("atlas"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())

	pprof.Register(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	profileRepo := profile.NewRepository(pool, logger)
	cityRepo := city.NewRepository(pool, logger)
	locationRepo := location.NewRepository(pool, logger)
	tripRepo := trip.NewRepository(pool, logger)
	tagRepo := tag.NewRepository(pool, logger)
	linkRepo := link.NewRepository(pool, logger)
	browseRepo := browse.NewRepository(pool, logger)

	importStore := importer.NewPgStore(pool, logger)
	importHandler := importer.NewHandler(importer.NewImporter(importStore, logger), logger)

	profileHandler := profile.NewProfileHandler(profileRepo, logger)
	cityHandler := city.NewCityHandler(cityRepo, logger)
	locationHandler := location.NewLocationHandler(locationRepo, logger)
	tripHandler := trip.NewTripHandler(tripRepo, logger)
	tagHandler := tag.NewTagHandler(tagRepo, logger)
	linkHandler := link.NewLinkHandler(linkRepo, logger)
	browseHandler := browse.NewBrowseHandler(browseRepo, logger)
	placesHandler := places.NewPlacesHandler(places.NewClient(cfg.Mapbox.Token, logger), logger)

	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAdmin(cfg.JWTSecret, profileRepo, logger))
	{
		admin.POST("/import", importHandler.HandleImport)

		admin.GET("/cities", cityHandler.ListCities)
		admin.POST("/cities", cityHandler.CreateCity)
		admin.PUT("/cities/:id", cityHandler.UpdateCity)
		admin.DELETE("/cities/:id", cityHandler.DeleteCity)

		admin.GET("/locations", locationHandler.ListLocations)
		admin.GET("/locations/:id", locationHandler.GetLocation)
		admin.POST("/locations", locationHandler.CreateLocation)
		admin.PUT("/locations/:id", locationHandler.UpdateLocation)
		admin.DELETE("/locations/:id", locationHandler.DeleteLocation)
		admin.GET("/locations/:id/tags", linkHandler.LocationTags)

		admin.GET("/trips", tripHandler.ListTrips)
		admin.GET("/trips/:id", tripHandler.GetTrip)
		admin.POST("/trips", tripHandler.CreateTrip)
		admin.PUT("/trips/:id", tripHandler.UpdateTrip)
		admin.DELETE("/trips/:id", tripHandler.DeleteTrip)
		admin.GET("/trips/:id/locations", linkHandler.TripLocations)

		admin.GET("/tags", tagHandler.ListTags)
		admin.POST("/tags", tagHandler.CreateTag)
		admin.PUT("/tags/:id", tagHandler.UpdateTag)
		admin.DELETE("/tags/:id", tagHandler.DeleteTag)

		admin.POST("/trip-links", linkHandler.AttachTrip)
		admin.DELETE("/trip-links", linkHandler.DetachTrip)
		admin.POST("/tag-links", linkHandler.AttachTag)
		admin.DELETE("/tag-links", linkHandler.DetachTag)

		admin.GET("/browse", browseHandler.BrowseAll)
		admin.GET("/browse/:table", browseHandler.BrowseTable)

		admin.GET("/places/geocode", placesHandler.Geocode)

		admin.POST("/profiles/sync", profileHandler.SyncProfile)
		admin.GET("/profiles", profileHandler.GetProfile)
	}

	return r
}
