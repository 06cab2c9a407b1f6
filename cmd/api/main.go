package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/willy903/backintern/internal/bootstrap"
	"github.com/willy903/backintern/internal/pkg/logger"
)

func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to set up database")
		os.Exit(1)
	}
	defer dbPool.Close()

	if _, err := bootstrap.BuildDependencies(cfg, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to build dependencies")
		os.Exit(1)
	}

	lgr.Info().Msg("backintern core ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	lgr.Info().Str("signal", sig.String()).Msg("Shutting down")
}
