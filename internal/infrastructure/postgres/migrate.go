package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrator envuelve golang-migrate para la CLI y el arranque del API.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator abre las migraciones de sourceURL (file://...) contra la base databaseURL.
func NewMigrator(sourceURL, databaseURL string, logger migrate.Logger) (*Migrator, error) {
	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("crear migrador: %w", err)
	}
	if logger != nil {
		m.Log = logger
	}
	return &Migrator{m: m}, nil
}

// Up aplica las migraciones pendientes. Una base marcada dirty se fuerza a su versión actual antes.
// Devuelve la versión final.
func (mg *Migrator) Up() (uint, error) {
	version, dirty, err := mg.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("leer versión: %w", err)
	}
	if dirty {
		if err := mg.m.Force(int(version)); err != nil {
			return 0, fmt.Errorf("forzar versión %d: %w", version, err)
		}
	}
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("aplicar migraciones: %w", err)
	}
	version, _, err = mg.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, err
	}
	return version, nil
}

// Down revierte n pasos.
func (mg *Migrator) Down(steps int) error {
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("revertir migraciones: %w", err)
	}
	return nil
}

// Version versión actual y si quedó dirty.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Force fija la versión sin ejecutar SQL.
func (mg *Migrator) Force(version int) error {
	return mg.m.Force(version)
}

// Close libera la fuente y la conexión.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}
