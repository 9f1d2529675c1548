package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jhoicas/rfm-api/migrations"
	"github.com/jhoicas/rfm-api/pkg/config"
	"github.com/jhoicas/rfm-api/pkg/logger"
)

// Uso: go run ./cmd/migrate [up|down|drop|version|force] [-steps N] [-version N]
func main() {
	var (
		steps   = flag.Int("steps", 0, "pasos para up/down (0 = todos en up, 1 en down)")
		version = flag.Int("version", -1, "versión para force")
	)
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	m, err := newMigrate(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("crear instancia de migración")
	}
	defer m.Close()

	if err := run(m, action, *steps, *version, log); err != nil {
		log.Fatal().Err(err).Str("accion", action).Msg("migración fallida")
	}
	log.Info().Str("accion", action).Msg("migración completada")
}

func newMigrate(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("fuente iofs: %w", err)
	}
	return migrate.NewWithSourceInstance("iofs", src, dsn)
}

func run(m *migrate.Migrate, action string, steps, version int, log *logger.Logger) error {
	switch action {
	case "up":
		var err error
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
		return ignoreNoChange(err)
	case "down":
		if steps <= 0 {
			steps = 1
		}
		return ignoreNoChange(m.Steps(-steps))
	case "drop":
		return m.Drop()
	case "force":
		if version < 0 {
			return errors.New("force requiere -version")
		}
		return m.Force(version)
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Msg("ninguna migración aplicada")
			return nil
		}
		if err != nil {
			return err
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("estado del esquema")
		return nil
	default:
		return fmt.Errorf("acción no soportada %q", action)
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
