package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Servicio que valida los JWT emitidos por el login del storefront.
type AuthService struct {
	secret []byte
}

type AuthUser struct {
	ID   string `json:"userId"`
	Role string `json:"role"`
}

// Claims: el storefront firma {userId} con HS256.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: []byte(secret)}
}

// Verifica si el usuario tiene rol de administrador.
func (a *AuthService) IsAdmin(user *AuthUser) bool {
	return user != nil && user.Role == "admin"
}

// IssueToken firma un token con la misma forma que el login (30 días).
func (a *AuthService) IssueToken(userID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// ValidateToken parsea el token y devuelve el usuario.
func (a *AuthService) ValidateToken(token string) (*AuthUser, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return &AuthUser{ID: claims.UserID, Role: claims.Role}, nil
}
