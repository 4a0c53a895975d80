package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// InitJWT sets the signing secret. An empty secret leaves token auth
// disabled; Generate/Parse then fail closed.
func InitJWT(secret string) {
	jwtSecret = []byte(secret)
}

// Enabled reports whether a signing secret is configured.
func Enabled() bool {
	return len(jwtSecret) > 0
}

// GenerateSessionToken issues a 24h HS256 token for the app's single user.
func GenerateSessionToken() (string, error) {
	if !Enabled() {
		return "", errors.New("jwt secret not configured")
	}

	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"sub": "owner",
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": now,
		"nbf": now,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseSessionToken validates a token issued by GenerateSessionToken.
func ParseSessionToken(tokenString string) error {
	if !Enabled() {
		return errors.New("jwt secret not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok && int64(exp) < now {
		return errors.New("token expired")
	}
	if nbf, ok := claims["nbf"].(float64); ok && int64(nbf) > now {
		return errors.New("token not valid yet")
	}
	if sub, _ := claims["sub"].(string); sub != "owner" {
		return errors.New("unknown subject")
	}
	return nil
}
