// Package jwt emite y valida los tokens de sesión del servicio.
//
// Los tokens son HS256 con un secret compartido: la identidad acá solo
// etiqueta authorIDs para el canvas, no hay federación ni rotación de claves.
package jwt

import (
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL matches the original system: sessions last seven days.
const DefaultTTL = 7 * 24 * time.Hour

// Issuer firma tokens con el secret configurado.
type Issuer struct {
	Iss    string // "iss"
	Secret []byte
	TTL    time.Duration
}

// NewIssuer creates an issuer with the default TTL.
func NewIssuer(iss string, secret []byte) *Issuer {
	return &Issuer{Iss: iss, Secret: secret, TTL: DefaultTTL}
}

// Sign emite un token para el usuario dado.
func (i *Issuer) Sign(userID, email string) (string, error) {
	if len(i.Secret) == 0 {
		return "", fmt.Errorf("jwt: empty secret")
	}
	ttl := i.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	claims := jwtv5.MapClaims{
		"userId": userID,
		"email":  email,
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}
	if i.Iss != "" {
		claims["iss"] = i.Iss
	}
	tok := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return tok.SignedString(i.Secret)
}
