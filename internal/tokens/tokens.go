package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/crossingbook/crossingbook/internal/config"
	"github.com/crossingbook/crossingbook/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid access token")

// Identity is the authenticated subject carried by an access token.
type Identity struct {
	Username string
	Role     string
}

// GenerateAccessToken creates a signed JWT access token for the user. API
// clients use it as a Bearer alternative to the session cookie.
func GenerateAccessToken(cfg *config.Config, u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.Username,
		"role": u.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// ParseAccessToken validates the signature and expiry and returns the identity.
func ParseAccessToken(cfg *config.Config, raw string) (*Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return &Identity{Username: sub, Role: role}, nil
}
