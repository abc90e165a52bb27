package firebase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DevTokenIssuer signs short-lived HS256 tokens for local development, where
// no Identity Toolkit API key is available. Never enabled in production.
type DevTokenIssuer struct {
	secret []byte
	expiry time.Duration
}

func NewDevTokenIssuer(secret string, expirySeconds int64) *DevTokenIssuer {
	if expirySeconds <= 0 {
		expirySeconds = 3600
	}
	return &DevTokenIssuer{
		secret: []byte(secret),
		expiry: time.Duration(expirySeconds) * time.Second,
	}
}

func (d *DevTokenIssuer) Issue(uid string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(d.expiry)),
		Issuer:    "nuptio-dev",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(d.secret)
}

func (d *DevTokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return d.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid dev token")
	}

	return claims.Subject, nil
}
