package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StaticVerifier accepts HS256 tokens signed with a shared secret. It
// stands in for the Google verifier during local development and in tests;
// cmd/gentoken mints matching tokens.
type StaticVerifier struct {
	secret []byte
}

var errInvalidToken = errors.New("token signature or claims invalid")

func NewStaticVerifier(secret string) *StaticVerifier {
	return &StaticVerifier{secret: []byte(secret)}
}

type devClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &devClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*devClaims)
	if !ok || !parsed.Valid {
		return Claims{}, errInvalidToken
	}
	return Claims{Email: claims.Email}, nil
}

// SignDevToken mints an HS256 token the StaticVerifier accepts.
func SignDevToken(secret, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &devClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
