package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shesafe/internal/access"
	"shesafe/internal/domain"
	"shesafe/internal/pkg/jwt"
	"shesafe/internal/pkg/response"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth requires a valid "Authorization: Bearer <token>" header and stores the
// caller's id and role on the context.
func JWTAuth(svc *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		authenticate(c, svc, strings.TrimSpace(parts[1]))
	}
}

// QueryTokenAuth is JWTAuth for clients that cannot set headers (browser websockets).
// The token is read from the "token" query parameter when no header is present.
func QueryTokenAuth(svc *jwt.Service) gin.HandlerFunc {
	header := JWTAuth(svc)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			header(c)
			return
		}
		token := strings.TrimSpace(c.Query("token"))
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization token is required")
			return
		}
		authenticate(c, svc, token)
	}
}

func authenticate(c *gin.Context, svc *jwt.Service, token string) {
	claims, err := svc.ValidateToken(token)
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxRole, claims.Role)
	c.Next()
}

// ActorFrom returns the identity stored by JWTAuth. It is the zero Actor on public routes.
func ActorFrom(c *gin.Context) access.Actor {
	return access.Actor{
		UserID: c.GetInt64(ctxUserID),
		Role:   domain.UserRole(c.GetString(ctxRole)),
	}
}
