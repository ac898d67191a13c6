package middleware

import (
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/yonginsolar/erp/internal/domain"
	"github.com/yonginsolar/erp/internal/shared/contextutil"
)

const userContextKey = "user_context"

// Session resolves the caller's descriptor (role/position) without ever
// rejecting the request. Anything that fails to resolve is anonymous; route
// handlers decide what anonymous callers may do.
//
// Resolution order: Bearer token, access_token cookie, redis session keyed by
// X-Session-Key.
func Session(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := domain.Anonymous()

		if claims := parseSessionToken(c); claims != nil {
			role, _ := claims["role"].(string)
			position, _ := claims["position"].(string)
			user = domain.UserContext{Role: role, Position: position}
		} else if rdb != nil {
			if sessionKey := c.GetHeader("X-Session-Key"); sessionKey != "" {
				c.Set("session_key", sessionKey)
				raw, err := rdb.Get(c.Request.Context(), "session:"+sessionKey).Bytes()
				if err == nil {
					user = domain.ParseUserContext(raw)
				}
			}
		}

		c.Set(userContextKey, user)
		ctx := contextutil.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func parseSessionToken(c *gin.Context) jwt.MapClaims {
	var tokenString string

	authHeader := c.GetHeader("Authorization")
	tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		tokenString = ""
	}

	if tokenString == "" {
		if cookie, err := c.Cookie("access_token"); err == nil {
			tokenString = cookie
		}
	}

	if tokenString == "" {
		return nil
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	return claims
}

// CurrentUser mengambil descriptor sesi yang sudah dipasang oleh Session.
func CurrentUser(c *gin.Context) domain.UserContext {
	if v, exists := c.Get(userContextKey); exists {
		if u, ok := v.(domain.UserContext); ok {
			return u
		}
	}
	return contextutil.GetUser(c.Request.Context())
}
