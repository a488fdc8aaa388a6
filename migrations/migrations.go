// Package migrations содержит SQL-миграции схемы каталога занятий.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
