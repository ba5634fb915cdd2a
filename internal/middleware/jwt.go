// internal/middleware/jwt.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"heron-feed/internal/models"
)

// Token expiration time - 24 hours
const tokenExpiration = 24 * time.Hour

// Claims carries the session profile inside the token: the engine has no
// user database, so identity travels with the session.
type Claims struct {
	Profile models.Author `json:"profile"`
	jwt.RegisteredClaims
}

// UnprotectedRoutes defines routes that don't require a session token
var UnprotectedRoutes = map[string]bool{
	"/health":  true,
	"/session": true,
}

// Sessions signs and validates session tokens.
type Sessions struct {
	secret []byte
}

// NewSessions builds a session signer over the configured secret.
func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret)}
}

// GenerateToken creates a new session token for the given profile
func (s *Sessions) GenerateToken(profile models.Author) (string, error) {
	expirationTime := time.Now().Add(tokenExpiration)

	claims := &Claims{
		Profile: profile,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "heron-feed",
			Subject:   profile.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates the provided session token
func (s *Sessions) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Auth wraps a handler with session-token validation. The websocket route
// also accepts the token as a query parameter, since browsers cannot set
// headers on upgrade requests.
func (s *Sessions) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UnprotectedRoutes[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		tokenString := ""
		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
				return
			}
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if token := r.URL.Query().Get("token"); token != "" {
			tokenString = token
		} else {
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return
		}

		claims, err := s.ValidateToken(tokenString)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
			return
		}
		if time.Now().After(claims.ExpiresAt.Time) {
			http.Error(w, "Token expired", http.StatusUnauthorized)
			return
		}

		ctx := SetProfileInContext(r.Context(), claims.Profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Define a custom context key type to avoid collisions
type contextKey string

// ProfileKey is the key used to store the session profile in the context
const ProfileKey contextKey = "profile"

// SetProfileInContext saves the session profile in the request context
func SetProfileInContext(ctx context.Context, profile models.Author) context.Context {
	return context.WithValue(ctx, ProfileKey, profile)
}

// GetProfileFromContext retrieves the session profile from the context
func GetProfileFromContext(ctx context.Context) (models.Author, bool) {
	profile, ok := ctx.Value(ProfileKey).(models.Author)
	return profile, ok
}
