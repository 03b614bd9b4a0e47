package identity

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// Claims carries the profile fields the identity provider embeds in its tokens.
type Claims struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	jwt.RegisteredClaims
}

// Verifier validates identity-provider bearer tokens.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for HS256 tokens signed with the shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a bearer token and returns the caller identity.
// The subject claim is the identity provider's opaque user identifier.
func (v *Verifier) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Identity{}, ErrUnauthorized
	}

	return Identity{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		AvatarURL: claims.AvatarURL,
	}, nil
}
