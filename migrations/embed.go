package migrations

import "embed"

// FS SQL миграции схемы, упорядоченные по номеру версии
//
//go:embed *.sql
var FS embed.FS
