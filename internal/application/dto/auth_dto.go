package dto

// RegisterRequest auto-registro de clientes.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName string  `json:"fullName" validate:"required,min=1,max=200"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	Address  *string `json:"address" validate:"omitempty,max=300"`
}

// LoginRequest entrada para login (clientes y empleados).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileResponse perfil del titular del token.
type ProfileResponse struct {
	ID         string   `json:"id"`
	Kind       string   `json:"kind"` // customer | employee
	Email      string   `json:"email"`
	FirstName  string   `json:"firstName"`
	MiddleName string   `json:"middleName,omitempty"`
	LastName   string   `json:"lastName"`
	Phone      *string  `json:"phone,omitempty"`
	Address    *string  `json:"address,omitempty"`
	Roles      []string `json:"roles,omitempty"`
}

// LoginResponse salida con token JWT y perfil.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresIn int             `json:"expires_in"` // segundos
	User      ProfileResponse `json:"user"`
}
