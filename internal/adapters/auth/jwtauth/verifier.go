package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vet-clinic/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

// Claims del token emitido por el backoffice de la clínica.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Verifier valida tokens HS256 con un secreto compartido.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwtauth: secret is required")
	}
	return &Verifier{secret: []byte(secret), issuer: strings.TrimSpace(issuer)}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var c Claims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), &c, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	sub := strings.TrimSpace(c.Subject)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", auth.ErrInvalidToken)
	}
	return auth.Claims{
		UserID: sub,
		Email:  strings.TrimSpace(c.Email),
		Roles:  c.Roles,
	}, nil
}

// Sign emite un token para el sujeto; lo usan tests y la CLI de desarrollo.
func (v *Verifier) Sign(c Claims) (string, error) {
	if c.Issuer == "" {
		c.Issuer = v.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(v.secret)
}
