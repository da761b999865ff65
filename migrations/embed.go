package migrations

import "embed"

// FS SQL-миграции схемы бронирований
//
//go:embed *.sql
var FS embed.FS
