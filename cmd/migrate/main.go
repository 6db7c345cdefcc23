package main

import (
	"context"

	"github.com/lunitaval/ventas-api/internal/migrate"
	"github.com/lunitaval/ventas-api/pkg/config"
	"github.com/lunitaval/ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	ctx := context.Background()
	if err := migrate.Apply(ctx, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Msg("migraciones aplicadas")
}
