package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/access"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

// Open abre el almacén en path, creándolo con su esquema la primera vez.
// El modelo es de un solo escritor activo: la conexión se limita a una.
// Tras crear el esquema siembra el usuario ADMIN con el secreto conocido,
// para que un almacén recién creado siempre sea accesible.
//
// Devuelve un error que envuelve domain.ErrStoreUnavailable si el almacén
// no se puede abrir; eso es fatal para la sesión.
func Open(ctx context.Context, path, salt string, log *logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %v: %w", path, err, domain.ErrStoreUnavailable)
	}

	// Un solo escritor; los lectores comparten la misma conexión.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=10000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %v: %w", pragma, err, domain.ErrStoreUnavailable)
		}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %v: %w", path, err, domain.ErrStoreUnavailable)
	}

	if err := createSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := bootstrapAdmin(ctx, db, salt); err != nil {
		db.Close()
		return nil, err
	}

	log.Info().Str("path", path).Msg("almacén abierto")
	return db, nil
}

// createSchema crea las tablas si no existen. Los ids son AUTOINCREMENT:
// estrictamente crecientes, asignados por el almacén al insertar, y la
// secuencia se revierte junto con la transacción, así que un intento
// abortado no deja huecos ni reutiliza identificadores.
//
// Cantidades y precios se guardan como TEXT para que los decimales viajen
// sin pasar por coma flotante.
func createSchema(ctx context.Context, db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			digest TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('ADMIN','STANDARD'))
		)`,
		`CREATE TABLE IF NOT EXISTS costcenters (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL,
			description TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL,
			description TEXT NOT NULL,
			unit TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '0',
			max_qty TEXT NOT NULL DEFAULT '0',
			min_qty TEXT NOT NULL DEFAULT '0'
		)`,
		`CREATE TABLE IF NOT EXISTS incoming (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			dn_number TEXT NOT NULL DEFAULT '',
			supplier TEXT NOT NULL DEFAULT '',
			remarks TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS incoming_lines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			incoming_id INTEGER NOT NULL REFERENCES incoming(id),
			product_id INTEGER NOT NULL REFERENCES products(id),
			quantity TEXT NOT NULL,
			price TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outgoing (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			costcenter_id INTEGER NOT NULL REFERENCES costcenters(id),
			remarks TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS outgoing_lines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			outgoing_id INTEGER NOT NULL REFERENCES outgoing(id),
			product_id INTEGER NOT NULL REFERENCES products(id),
			quantity TEXT NOT NULL,
			price TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS adjustments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			remarks TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS adjustment_lines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			adjustment_id INTEGER NOT NULL REFERENCES adjustments(id),
			product_id INTEGER NOT NULL REFERENCES products(id),
			quantity TEXT NOT NULL,
			price TEXT NOT NULL,
			kind TEXT NOT NULL CHECK(kind IN ('increase','decrease'))
		)`,
	}
	for _, t := range tables {
		if _, err := db.ExecContext(ctx, t); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}
	}
	return nil
}

// bootstrapAdmin siembra el usuario ADMIN si aún no existe.
func bootstrapAdmin(ctx context.Context, db *sql.DB, salt string) error {
	digest := access.Digest(access.DefaultAdminSecret, salt)
	_, err := db.ExecContext(ctx, `
		INSERT INTO users (username, digest, role)
		SELECT 'ADMIN', ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE username = 'ADMIN')`,
		digest, entity.RoleAdmin,
	)
	if err != nil {
		return fmt.Errorf("sembrar usuario ADMIN: %w", err)
	}
	return nil
}
