package dto

import "time"

// DateLayout formato de fechas sin hora (hiredDate).
const DateLayout = "2006-01-02"

// UserResponse salida de un empleado (sin password). Los timestamps se exponen
// con nombre de columna y en camelCase para clientes de ambas convenciones.
type UserResponse struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"firstName"`
	MiddleName string     `json:"middleName,omitempty"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	Phone      *string    `json:"phone,omitempty"`
	Roles      []string   `json:"roles"`
	Status     string     `json:"status"`
	HiredDate  *string    `json:"hiredDate,omitempty"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	CreatedAtC time.Time  `json:"createdAt"`
	UpdatedAtC time.Time  `json:"updatedAt"`
}

// UserListQuery filtros del listado; "All Employees" equivale a sin filtro.
type UserListQuery struct {
	Role   string `query:"role"`
	Status string `query:"status"`
}

// CreateUserRequest entrada para alta de empleado. Acepta fullName o las partes del nombre.
type CreateUserRequest struct {
	FullName   string   `json:"fullName" validate:"required_without=FirstName,max=200"`
	FirstName  string   `json:"firstName" validate:"required_without=FullName,max=100"`
	MiddleName string   `json:"middleName" validate:"max=100"`
	LastName   string   `json:"lastName" validate:"required_without=FullName,max=100"`
	Email      string   `json:"email" validate:"required,email"`
	Phone      *string  `json:"phone" validate:"omitempty,max=30"`
	Roles      []string `json:"roles" validate:"required,min=1,dive,required"`
	Status     string   `json:"status" validate:"omitempty,oneof=Active Inactive"`
	HiredDate  *string  `json:"hiredDate" validate:"omitempty,datetime=2006-01-02"`
	Password   *string  `json:"password" validate:"omitempty,min=6"`
}

// UpdateUserRequest patch disperso: nil = campo ausente.
type UpdateUserRequest struct {
	FirstName  *string   `json:"firstName" validate:"omitempty,max=100"`
	MiddleName *string   `json:"middleName" validate:"omitempty,max=100"`
	LastName   *string   `json:"lastName" validate:"omitempty,max=100"`
	Email      *string   `json:"email" validate:"omitempty,email"`
	Phone      *string   `json:"phone" validate:"omitempty,max=30"`
	Roles      *[]string `json:"roles" validate:"omitempty,dive,required"`
	Status     *string   `json:"status" validate:"omitempty,oneof=Active Inactive"`
	HiredDate  *string   `json:"hiredDate" validate:"omitempty,datetime=2006-01-02"`
}

// HasNameParts indica si el patch toca alguna parte del nombre.
func (r UpdateUserRequest) HasNameParts() bool {
	return r.FirstName != nil || r.MiddleName != nil || r.LastName != nil
}
