// migrate aplica o revierte las migraciones SQL de ./migrations con golang-migrate.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down [pasos]     (1 por defecto)
//	go run ./cmd/migrate version
//	go run ./cmd/migrate force <versión>
//
// Lee DATABASE_URL / DB_* y DB_MIGRATIONS_PATH igual que el API.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/workforce-analytics-api/internal/infrastructure/postgres"
	"github.com/jhoicas/workforce-analytics-api/pkg/config"
	"github.com/jhoicas/workforce-analytics-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up | down [pasos] | version | force <versión>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	mg, err := postgres.NewMigrator(cfg.DB.MigrationsPath, cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	defer mg.Close()

	switch os.Args[1] {
	case "up":
		version, err := mg.Up()
		if err != nil {
			log.Fatal().Err(err).Msg("up")
		}
		log.Info().Uint("version", version).Msg("migraciones aplicadas")
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil || steps < 1 {
				log.Fatal().Str("pasos", os.Args[2]).Msg("pasos inválidos")
			}
		}
		if err := mg.Down(steps); err != nil {
			log.Fatal().Err(err).Msg("down")
		}
		log.Info().Int("pasos", steps).Msg("migraciones revertidas")
	case "version":
		version, dirty, err := mg.Version()
		if err != nil {
			log.Fatal().Err(err).Msg("version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión actual")
	case "force":
		if len(os.Args) < 3 {
			log.Fatal().Msg("force requiere una versión")
		}
		v, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal().Str("versión", os.Args[2]).Msg("versión inválida")
		}
		if err := mg.Force(v); err != nil {
			log.Fatal().Err(err).Msg("force")
		}
		log.Info().Int("version", v).Msg("versión forzada")
	default:
		log.Fatal().Str("comando", os.Args[1]).Msg("comando desconocido")
	}
}
