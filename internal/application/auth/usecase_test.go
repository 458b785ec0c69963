package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/pkg/jwt"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 30, Issuer: "catalog-test"}

func newUseCase(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := auth.HashPassword("correcta")
	require.NoError(t, err)
	return auth.NewAuthUseCase("admin", hash, jwtCfg)
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc := newUseCase(t)

	out, err := uc.Login(dto.LoginRequest{UserName: "admin", Password: "correcta"})
	require.NoError(t, err)
	assert.Equal(t, 30*60, out.ExpiresIn)

	user, role, err := jwt.Parse(jwtCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user)
	assert.Equal(t, auth.RoleAdmin, role)
}

func TestLogin_Rechazos(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Login(dto.LoginRequest{UserName: "admin", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{UserName: "otro", Password: "correcta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_SinHashConfigurado(t *testing.T) {
	uc := auth.NewAuthUseCase("admin", "", jwtCfg)
	_, err := uc.Login(dto.LoginRequest{UserName: "admin", Password: ""})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
