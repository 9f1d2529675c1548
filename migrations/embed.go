// Package migrations contiene el esquema SQL embebido para golang-migrate (fuente iofs).
package migrations

import "embed"

// FS archivos NNNNNN_nombre.{up,down}.sql.
//
//go:embed *.sql
var FS embed.FS
