package db

import "embed"

// EmbedMigrations carries the goose migration files.
//
//go:embed migrations/*.sql
var EmbedMigrations embed.FS
