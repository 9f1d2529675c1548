package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rfm-api/internal/application/auth"
	"github.com/jhoicas/rfm-api/internal/application/dto"
	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
	"github.com/jhoicas/rfm-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomers struct {
	byEmail map[string]*entity.CustomerAccount
	touched []string
}

func (f *fakeCustomers) Create(_ context.Context, a *entity.CustomerAccount) error {
	f.byEmail[a.Email] = a
	return nil
}

func (f *fakeCustomers) FindByID(_ context.Context, id string) (*entity.CustomerAccount, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomers) FindByEmail(_ context.Context, email string) (*entity.CustomerAccount, error) {
	return f.byEmail[email], nil
}

func (f *fakeCustomers) TouchLastLogin(_ context.Context, id string) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeUsers struct {
	byEmail map[string]*entity.UserRow
	touched []string
}

func (f *fakeUsers) Create(context.Context, *entity.UserRow) error { return nil }

func (f *fakeUsers) FindByID(_ context.Context, id string) (*entity.UserRow, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*entity.UserRow, error) {
	return f.byEmail[email], nil
}

func (f *fakeUsers) List(context.Context, entity.UserFilter) ([]*entity.UserRow, error) {
	return nil, nil
}

func (f *fakeUsers) UpdateColumns(context.Context, string, entity.ColumnAssignment) error {
	return nil
}

func (f *fakeUsers) Delete(context.Context, string) error { return nil }

func (f *fakeUsers) TouchLastLogin(_ context.Context, id string) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeTokens struct {
	revoked map[string]time.Duration
}

func (f *fakeTokens) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	f.revoked[jti] = ttl
	return nil
}

func (f *fakeTokens) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, nil
}

func hash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

type fixture struct {
	uc        *auth.AuthUseCase
	customers *fakeCustomers
	users     *fakeUsers
	tokens    *fakeTokens
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	admin := hash(t, "admin123")
	cutter := hash(t, "cutter123")
	customers := &fakeCustomers{byEmail: map[string]*entity.CustomerAccount{
		"cliente@rfm.test": {ID: "c-1", Email: "cliente@rfm.test", PasswordHash: hash(t, "cliente1"), FullName: "Ana María Ruiz"},
	}}
	users := &fakeUsers{byEmail: map[string]*entity.UserRow{
		"admin@rfm.test":    {ID: "u-1", Email: "admin@rfm.test", PasswordHash: &admin, FullName: "LEO ESPINOSA", Roles: `["Designer","admin"]`, Status: "Active"},
		"mayus@rfm.test":    {ID: "u-5", Email: "mayus@rfm.test", PasswordHash: &admin, FullName: "ANA ADMIN", Roles: `["Admin"]`, Status: "Active"},
		"cutter@rfm.test":   {ID: "u-2", Email: "cutter@rfm.test", PasswordHash: &cutter, FullName: "JANE DOE", Roles: "Cutter", Status: "Active"},
		"inactivo@rfm.test": {ID: "u-3", Email: "inactivo@rfm.test", PasswordHash: &admin, FullName: "OLD ADMIN", Roles: "admin", Status: "Inactive"},
		"sinpass@rfm.test":  {ID: "u-4", Email: "sinpass@rfm.test", FullName: "NO PASS", Roles: "admin", Status: "Active"},
	}}
	tokens := &fakeTokens{revoked: map[string]time.Duration{}}
	uc := auth.NewAuthUseCase(customers, users, tokens, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "rfm-test"})
	return fixture{uc: uc, customers: customers, users: users, tokens: tokens}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_NormalizaEmailYDetectaDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.Register(ctx, dto.RegisterRequest{Email: " Nuevo@RFM.test ", Password: "secreto", FullName: "Nuevo Cliente"})
	require.NoError(t, err)
	assert.Equal(t, "nuevo@rfm.test", out.Email)
	assert.Equal(t, "Nuevo", out.FirstName)
	assert.Equal(t, "Cliente", out.LastName)
	assert.Equal(t, jwt.KindCustomer, out.Kind)

	_, err = f.uc.Register(ctx, dto.RegisterRequest{Email: "NUEVO@rfm.test", Password: "secreto", FullName: "Otro"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Cliente(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "cliente@rfm.test", Password: "cliente1"})
	require.NoError(t, err)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "c-1", claims.UserID)
	assert.Equal(t, jwt.KindCustomer, claims.Kind)
	assert.Equal(t, "María", out.User.MiddleName)
	assert.Equal(t, []string{"c-1"}, f.customers.touched)
	assert.Equal(t, 3600, out.ExpiresIn)
}

func TestLogin_EmpleadoAdmin(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ADMIN@rfm.test", Password: "admin123"})
	require.NoError(t, err)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.KindEmployee, claims.Kind)
	assert.Equal(t, []string{"Designer", "admin"}, claims.Roles)
	assert.Equal(t, "LEO", out.User.FirstName)
	assert.Equal(t, []string{"u-1"}, f.users.touched)
}

func TestLogin_Errores(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name  string
		email string
		pass  string
		want  error
	}{
		{"cliente con password incorrecto", "cliente@rfm.test", "x", domain.ErrInvalidPassword},
		{"empleado con password incorrecto", "admin@rfm.test", "x", domain.ErrInvalidPassword},
		{"empleado sin password", "sinpass@rfm.test", "x", domain.ErrInvalidPassword},
		{"empleado sin rol admin", "cutter@rfm.test", "cutter123", domain.ErrNoAdminRole},
		{"rol Admin con mayúscula no habilita el panel", "mayus@rfm.test", "admin123", domain.ErrNoAdminRole},
		{"empleado inactivo", "inactivo@rfm.test", "admin123", domain.ErrForbidden},
		{"email desconocido", "nadie@rfm.test", "x", domain.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: tt.email, Password: tt.pass})
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.users.touched, "un login fallido no actualiza last_login")
}

func TestLogout_RevocaJTI(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	out, err := f.uc.Login(ctx, dto.LoginRequest{Email: "admin@rfm.test", Password: "admin123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(ctx, claims))

	ttl, ok := f.tokens.revoked[claims.ID]
	require.True(t, ok)
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)
	revoked, err := f.uc.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogout_SinAlmacenEsNoop(t *testing.T) {
	uc := auth.NewAuthUseCase(&fakeCustomers{}, &fakeUsers{}, nil, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60})

	assert.NoError(t, uc.Logout(context.Background(), &jwt.Claims{}))
	revoked, err := uc.IsRevoked(context.Background(), "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMe_PorTipoDeCuenta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.uc.Me(ctx, "c-1", jwt.KindCustomer)
	require.NoError(t, err)
	assert.Equal(t, "cliente@rfm.test", c.Email)

	e, err := f.uc.Me(ctx, "u-2", jwt.KindEmployee)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cutter"}, e.Roles)
	assert.Equal(t, "DOE", e.LastName)

	_, err = f.uc.Me(ctx, "u-404", jwt.KindEmployee)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
