package main

import (
	"context"
	"net/http"

	"github.com/EnzoLavieri/QualABoa-backend/internal/cache"
	"github.com/EnzoLavieri/QualABoa-backend/internal/config"
	"github.com/EnzoLavieri/QualABoa-backend/internal/handler"
	"github.com/EnzoLavieri/QualABoa-backend/internal/places"
	"github.com/EnzoLavieri/QualABoa-backend/internal/repository"
	"github.com/EnzoLavieri/QualABoa-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)

	placesClient := places.NewClient(config.PlacesBaseURL, config.PlacesAPIKey, config.PlacesTimeout)

	cacheProvider := cache.NewProvider(map[string]cache.Options{
		service.CacheNearby:     {TTL: config.NearbyCacheTTL, MaxSize: config.NearbyCacheSize},
		service.CacheDetails:    {TTL: config.DetailsCacheTTL, MaxSize: config.DetailsCacheSize},
		service.CacheReviews:    {TTL: config.ReviewsCacheTTL, MaxSize: config.ReviewsCacheSize},
		service.CacheTextSearch: {TTL: config.TextSearchCacheTTL, MaxSize: config.TextSearchCacheSize},
	})

	mapService := service.NewMapService(repo, placesClient, cacheProvider)
	mapHandler := handler.NewMapHandler(mapService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/map/pins/nearby", mapHandler.PinsNearby)
	r.GET("/map/places/:placeId", mapHandler.PlaceDetails)
	r.GET("/map/places/:placeId/reviews", mapHandler.PlaceReviews)
	r.GET("/map/search", mapHandler.SearchPlaces)

	r.Run(config.ServerAddress)
}
