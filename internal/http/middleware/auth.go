package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/ctxutil"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AdminAuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AdminAuthService) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

// RequireAdmin rejects requests without a valid admin token. When admin
// auth is not configured every request passes.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if am.authService == nil || !am.authService.Enabled() {
			c.Next()
			return
		}
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}
		subject, err := am.authService.Verify(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Debug("admin token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithAdmin(c.Request.Context(), subject))
		c.Next()
	}
}

// bearerToken reads the Authorization header only; admin QR routes use a
// token query parameter for the QR code itself.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
