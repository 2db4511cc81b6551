package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "adresse-geocoder/docs"
	"adresse-geocoder/internal/config"
	"adresse-geocoder/internal/handler"
	"adresse-geocoder/internal/logger"
	"adresse-geocoder/internal/middleware"
	"adresse-geocoder/internal/provider/adresse"
	"adresse-geocoder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Adresse Geocoder API
// @version 1.0
// @description Forward, reverse and batch geocoding of French addresses backed by api-adresse.data.gouv.fr.
// @host localhost:8080
// @BasePath /
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := logger.NewStdout(config.LogLevel, config.LogFormat, "adresse-geocoder-api")
	gin.SetMode(config.GinMode)

	// Initialize layers
	client := adresse.NewClient(
		adresse.WithBaseURL(config.BaseURL),
		adresse.WithUserAgent(config.UserAgent),
		adresse.WithHTTPClient(&http.Client{Timeout: config.HTTPTimeout}),
	)

	geocodingService := service.NewGeocodingService(client, logger,
		service.WithCourtesyDelay(config.CourtesyDelay),
		service.WithChunkSize(config.ChunkSize),
	)

	r := setupRouter(geocodingService, config, logger)

	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("address", config.ServerAddress).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down server")

	// Batches in flight get a bounded window to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
}

// geocoder is everything the HTTP layer needs from the geocoding service.
type geocoder interface {
	handler.GeoCodeService
	handler.ReverseGeoCodeService
	handler.BatchGeoCodeService
}

func setupRouter(svc geocoder, config config.Config, logger zerolog.Logger) *gin.Engine {
	geoCodeHandler := handler.NewGeoCodeHandler(svc)
	reverseGeocodeHandler := handler.NewReverseGeocodeHandler(svc)
	batchGeoCodeHandler := handler.NewBatchGeoCodeHandler(svc, config.MaxBatchSize)

	limiter := middleware.NewIPRateLimiter(config.RateLimit, config.RateBurst, logger)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/", limiter.RateLimit())
	api.GET("/geocode", geoCodeHandler.GeoCode)
	api.GET("/reverse-geocode", reverseGeocodeHandler.ReverseGeocode)
	api.POST("/geocode/batch", batchGeoCodeHandler.BatchGeoCode)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
