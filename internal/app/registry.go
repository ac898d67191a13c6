package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yonginsolar/erp/internal/changelog"
	"github.com/yonginsolar/erp/internal/document"
	"github.com/yonginsolar/erp/internal/messaging/kafka"
	"github.com/yonginsolar/erp/internal/permission"
	"github.com/yonginsolar/erp/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	changelogRepo := changelog.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Permission Core ---
	gate, err := permission.NewGate()
	if err != nil {
		return err
	}

	// --- Services ---
	changelogService := changelog.NewServiceWithOutbox(db, changelogRepo, gate, outboxRepo, rdb)
	documentService := document.NewService(counterRepo)

	// --- Handlers ---
	changelogHandler := changelog.NewHandlerWithRedis(changelogService, rdb)
	documentHandler := document.NewHandler(documentService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		changelog.RegisterRoutes(api, changelogHandler, rdb)
		document.RegisterRoutes(api, documentHandler)
	}

	return nil
}
