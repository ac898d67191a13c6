package document

import (
	"github.com/gin-gonic/gin"

	"github.com/yonginsolar/erp/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	docs := r.Group("/documents")
	{
		docs.POST("/salary",
			middleware.RateLimitByUser(2, 5),
			handler.PrintSalary,
		)
		docs.POST("/certificate",
			middleware.RateLimitByUser(2, 5),
			handler.PrintCertificate,
		)
		docs.POST("/ledger",
			middleware.RateLimitByUser(1, 3),
			handler.PrintLedger,
		)
	}
}
