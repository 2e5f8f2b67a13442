package svc

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// TokenTTL is the fixed credential lifetime.
const TokenTTL = time.Hour

// ErrMissingSecret rejects token issuer construction without a signing key.
var ErrMissingSecret = errors.New("sceneforge: token signing secret is required")

// TokenIssuer signs and verifies login credentials. The token is opaque to
// every other component: it encodes the user identifier and issue time, and
// verification yields the identifier back or rejects.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer creates an issuer signing with the given HMAC secret.
func NewTokenIssuer(secret []byte) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	return &TokenIssuer{secret: secret, now: time.Now}, nil
}

// Issue signs a token bound to the user identifier, expiring after TokenTTL.
func (t *TokenIssuer) Issue(userID bson.ObjectID) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks signature and expiry and returns the encoded user
// identifier. Any failure surfaces as ErrInvalidToken.
func (t *TokenIssuer) Verify(token string) (bson.ObjectID, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return bson.ObjectID{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	id, err := bson.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: malformed subject: %w", ErrInvalidToken, err)
	}
	return id, nil
}
