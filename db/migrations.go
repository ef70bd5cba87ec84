// Package db embeds the database schema migrations.
package db

import "embed"

// Migrations holds the SQL migration files under migration/.
//
//go:embed migration/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that holds the files.
const MigrationsDir = "migration"
