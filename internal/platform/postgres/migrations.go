package postgres

import "embed"

// MigrationsFS embeds the goose SQL migrations so the binary can migrate
// its own schema without a separate migrations directory on disk.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
