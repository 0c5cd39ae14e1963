package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amtop/blog/internal/response"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// EditorIDKey is the context key for the authenticated editor's id.
const EditorIDKey contextKey = "editorID"

// editorRoles may see unpublished content.
var editorRoles = map[string]bool{
	"admin":  true,
	"editor": true,
}

// RequireEditor returns middleware that validates an HS256 Bearer JWT whose
// "role" claim is an editor role, and puts the "sub" claim in the context.
func RequireEditor(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "invalid authorization header format")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				response.Unauthorized(w, "invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				response.Unauthorized(w, "invalid token claims")
				return
			}

			role, _ := claims["role"].(string)
			if !editorRoles[role] {
				response.Error(w, http.StatusForbidden, "editor role required")
				return
			}

			sub, _ := claims.GetSubject()
			ctx := context.WithValue(r.Context(), EditorIDKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
