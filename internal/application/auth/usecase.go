package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rfm-api/internal/application/dto"
	"github.com/jhoicas/rfm-api/internal/application/ports"
	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
	"github.com/jhoicas/rfm-api/internal/domain/person"
	"github.com/jhoicas/rfm-api/internal/domain/repository"
	"github.com/jhoicas/rfm-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro de clientes, login de
// clientes y empleados, logout y perfil.
type AuthUseCase struct {
	customers repository.CustomerRepository
	users     repository.UserRepository
	tokens    ports.TokenStore
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(customers repository.CustomerRepository, users repository.UserRepository, tokens ports.TokenStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{customers: customers, users: users, tokens: tokens, jwtCfg: jwtCfg}
}

// Register crea una cuenta de cliente. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.ProfileResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.customers.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	account := &entity.CustomerAccount{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Phone:        in.Phone,
		Address:      in.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.customers.Create(ctx, account); err != nil {
		return nil, err
	}
	return customerProfile(account), nil
}

// Login verifica credenciales. Primero busca en cuentas de cliente y luego en
// empleados, que además necesitan el rol admin y estado Active.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)

	customer, err := uc.customers.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(in.Password)); err != nil {
			return nil, domain.ErrInvalidPassword
		}
		if err := uc.customers.TouchLastLogin(ctx, customer.ID); err != nil {
			log.Warn().Err(err).Str("customer_id", customer.ID).Msg("auth: no se pudo actualizar last_login")
		}
		return uc.issue(jwt.KindCustomer, nil, customerProfile(customer))
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.PasswordHash == nil || bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidPassword
	}
	roles := person.DecodeRoles(user.Roles)
	if !person.ContainsRole(roles, person.RoleAdmin) {
		return nil, domain.ErrNoAdminRole
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	if err := uc.users.TouchLastLogin(ctx, user.ID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("auth: no se pudo actualizar last_login")
	}
	return uc.issue(jwt.KindEmployee, roles, employeeProfile(user, roles))
}

func (uc *AuthUseCase) issue(kind string, roles []string, profile *dto.ProfileResponse) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, profile.ID, kind, roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      *profile,
	}, nil
}

// Logout revoca el token hasta su expiración natural.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if uc.tokens == nil || claims == nil || claims.ID == "" {
		return nil
	}
	ttl := claims.ExpiresIn(time.Now())
	if ttl <= 0 {
		return nil
	}
	return uc.tokens.Revoke(ctx, claims.ID, ttl)
}

// IsRevoked indica si el jti fue revocado. Sin almacén de tokens nunca lo está.
func (uc *AuthUseCase) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if uc.tokens == nil || jti == "" {
		return false, nil
	}
	return uc.tokens.IsRevoked(ctx, jti)
}

// Me devuelve el perfil del titular del token.
func (uc *AuthUseCase) Me(ctx context.Context, userID, kind string) (*dto.ProfileResponse, error) {
	switch kind {
	case jwt.KindCustomer:
		c, err := uc.customers.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrUserNotFound
		}
		return customerProfile(c), nil
	case jwt.KindEmployee:
		u, err := uc.users.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, domain.ErrUserNotFound
		}
		return employeeProfile(u, person.DecodeRoles(u.Roles)), nil
	default:
		return nil, errors.New("auth: tipo de cuenta desconocido")
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func customerProfile(c *entity.CustomerAccount) *dto.ProfileResponse {
	name := person.SplitName(c.FullName)
	return &dto.ProfileResponse{
		ID:         c.ID,
		Kind:       jwt.KindCustomer,
		Email:      c.Email,
		FirstName:  name.First,
		MiddleName: name.Middle,
		LastName:   name.Last,
		Phone:      c.Phone,
		Address:    c.Address,
	}
}

func employeeProfile(u *entity.UserRow, roles []string) *dto.ProfileResponse {
	name := person.SplitName(u.FullName)
	return &dto.ProfileResponse{
		ID:         u.ID,
		Kind:       jwt.KindEmployee,
		Email:      u.Email,
		FirstName:  name.First,
		MiddleName: name.Middle,
		LastName:   name.Last,
		Phone:      u.Phone,
		Roles:      roles,
	}
}
