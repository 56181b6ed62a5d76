package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"address-api/internal/config"
	"address-api/internal/handler"
	"address-api/internal/logger"
	"address-api/internal/repository"
	"address-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

//	@title			Address API
//	@version		1.0
//	@description	Stores named geographic points and finds the ones within a distance of a coordinate.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	log.Logger = logger.Build(logger.Config{
		Level:   config.LogLevel,
		Console: config.LogConsole,
		Service: "address-api",
	}, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database connection
	store, err := repository.Open(ctx, config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Str("driver", config.DBDriver).Msg("cannot connect to db")
	}
	defer store.Close()

	// Initialize layers
	addressService := service.NewAddressService(store)

	addressHandler := handler.NewAddressHandler(addressService)
	healthHandler := handler.NewHealthHandler(store)

	gin.SetMode(config.GinMode)
	r := handler.NewRouter(log.Logger, addressHandler, healthHandler)

	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Str("driver", config.DBDriver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
