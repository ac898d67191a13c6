package changelog

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yonginsolar/erp/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	notes := r.Group("/changelog")
	{
		notes.GET("", handler.Feed)
		notes.GET("/version", handler.LatestVersion)
		notes.POST("",
			middleware.RateLimitByUser(2, 5),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		notes.DELETE("/:id",
			middleware.RateLimitByUser(2, 5),
			handler.Delete,
		)
	}
}
