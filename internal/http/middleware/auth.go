package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/basura/basura-api/internal/auth"
	"github.com/basura/basura-api/internal/model"
)

const principalKey = "principal"

// TokenParser verifies a raw bearer token and returns the identity it carries.
type TokenParser func(raw string) (model.Principal, error)

// Auth rejects requests without a valid bearer token. Token failures use the
// {"msg": ...} body mobile clients key on to trigger a refresh.
func Auth(parse TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			abortToken(c, "Missing Authorization Header")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortToken(c, "Bad Authorization header. Expected 'Authorization: Bearer <JWT>'")
			return
		}

		principal, err := parse(token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				abortToken(c, "Token has expired")
			case errors.Is(err, auth.ErrWrongTokenType):
				abortToken(c, "Wrong token type")
			default:
				abortToken(c, "Signature verification failed")
			}
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRoles must run after Auth.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := MustPrincipal(c)
		if !ok || !principal.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	return principal, ok
}

func abortToken(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": message})
}
