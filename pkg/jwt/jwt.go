package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Access y BusinessUnits permiten al middleware decidir sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID        string   `json:"userId"`
	Email         string   `json:"email"`
	CompanyID     string   `json:"companyId"`
	Access        string   `json:"access"` // "employee" | "superUser"
	IsFirstLogin  bool     `json:"isFirstLogin"`
	MustReset     bool     `json:"must_reset"`
	BusinessUnits []string `json:"businessUnits,omitempty"`
}

// Identity datos del usuario que se firman en el token.
type Identity struct {
	UserID        string
	Email         string
	CompanyID     string
	Access        string
	IsFirstLogin  bool
	MustReset     bool
	BusinessUnits []string
}

// Generate genera un token JWT firmado con un jti único. Devuelve también el jti y el vencimiento
// para poder revocarlo en el logout.
func Generate(secret, issuer string, expMinutes int, id Identity) (token, jti string, expiresAt time.Time, err error) {
	if secret == "" {
		return "", "", time.Time{}, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	jti = uuid.NewString()
	expiresAt = now.Add(time.Duration(expMinutes) * time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:        id.UserID,
		Email:         id.Email,
		CompanyID:     id.CompanyID,
		Access:        id.Access,
		IsFirstLogin:  id.IsFirstLogin,
		MustReset:     id.MustReset,
		BusinessUnits: id.BusinessUnits,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, jti, expiresAt, nil
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// ExpiresAtTime vencimiento de los claims; cero si no lo tienen.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
