package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/pkg/jwt"
)

// RoleAdmin rol del operador del catálogo; es el único que puede escribir.
const RoleAdmin = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login del operador configurado. No hay registro de usuarios: la identidad vive en la config.
type AuthUseCase struct {
	user         string
	passwordHash []byte
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso con el usuario y su hash bcrypt.
func NewAuthUseCase(user, passwordHash string, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{user: user, passwordHash: []byte(passwordHash), jwtCfg: jwtCfg}
}

// HashPassword genera el hash bcrypt de una contraseña en claro.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login verifica usuario/password y emite el JWT. domain.ErrUnauthorized ante cualquier discrepancia.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if len(uc.passwordHash) == 0 {
		return nil, domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(in.UserName), []byte(uc.user)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.user, RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60}, nil
}
