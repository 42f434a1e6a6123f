package auth

import (
	"github.com/golang-jwt/jwt/v4"

	"github.com/glowdesk/glowdesk/internal/config"
	ierr "github.com/glowdesk/glowdesk/internal/errors"
)

// Claims are the token claims issued by the identity provider
type Claims struct {
	jwt.RegisteredClaims
}

// ValidateToken parses and verifies a bearer token, returning the user id
// it was issued to
func ValidateToken(cfg *config.Configuration, tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewErrorf("unexpected signing method: %v", token.Header["alg"]).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(cfg.Auth.Secret), nil
	})
	if err != nil || !token.Valid {
		return "", ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrPermissionDenied)
	}

	if claims.Subject == "" {
		return "", ierr.NewError("token missing subject").
			WithHint("Invalid token").
			Mark(ierr.ErrPermissionDenied)
	}

	return claims.Subject, nil
}
