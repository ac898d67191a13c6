package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yonginsolar/erp/internal/shared/contextutil"
)

// ContextLogger menempelkan scoped logger ke context request.
// Dipasang setelah RequestID dan Session agar metadata-nya lengkap.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		user := CurrentUser(c)

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("role", user.Role),
			zap.String("position", user.Position),
		)

		// Propagasi agar layer Service/Repo bisa ambil via contextutil tanpa tahu Gin
		ctx := contextutil.WithLogger(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
