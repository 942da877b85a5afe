package hostapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// adminClaims is the JWT payload issued to an operator after they have
// authenticated out of band (e.g. by holding the settlement shim's
// admin private key). It gates the host's own HTTP admin endpoints,
// which is a separate concern from the secp256k1 signature the
// settlement shim itself requires on StartMatch/SetImageID calls.
type adminClaims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies admin bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer signing HS256 tokens with secret,
// each valid for ttl from the moment it is issued.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue mints a signed token for the given admin subject.
func (ti *TokenIssuer) Issue(subject string) (string, error) {
	now := time.Now()
	claims := adminClaims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, returning its subject.
func (ti *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &adminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse admin token: %w", err)
	}
	claims, ok := token.Claims.(*adminClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid admin token")
	}
	return claims.Subject, nil
}

type contextKey string

const adminSubjectKey contextKey = "admin_subject"

// RequireAdmin wraps next with bearer-token verification, rejecting
// requests lacking a valid admin token with 401.
func (ti *TokenIssuer) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(authz, prefix) {
			writeError(w, "missing admin bearer token", http.StatusUnauthorized)
			return
		}
		subject, err := ti.Verify(strings.TrimPrefix(authz, prefix))
		if err != nil {
			writeError(w, "invalid admin bearer token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), adminSubjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
