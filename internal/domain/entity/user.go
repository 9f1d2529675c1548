package entity

import "time"

// Estados válidos de un empleado.
const (
	UserStatusActive   = "Active"
	UserStatusInactive = "Inactive"
)

// UserRow es una fila de la tabla users (empleados) con sus columnas nativas.
// FullName guarda el nombre combinado y Roles el valor crudo de la columna
// (string, []byte o lista según el driver); la API nunca los expone tal cual.
type UserRow struct {
	ID           string
	FullName     string
	Email        string
	Phone        *string
	PasswordHash *string // nil: empleado sin acceso al panel
	Roles        any
	Status       string
	HiredDate    *time.Time
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserFilter filtros del listado de empleados. Cadena vacía = sin filtro.
type UserFilter struct {
	Role   string
	Status string
}

// ColumnAssignment par columnas/valores de un UPDATE parcial, en el mismo orden.
type ColumnAssignment struct {
	Columns []string
	Values  []any
}

// Len devuelve el número de columnas asignadas.
func (a ColumnAssignment) Len() int { return len(a.Columns) }

// Set agrega una columna con su valor.
func (a *ColumnAssignment) Set(column string, value any) {
	a.Columns = append(a.Columns, column)
	a.Values = append(a.Values, value)
}
