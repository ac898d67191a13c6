package changelog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yonginsolar/erp/internal/middleware"
	"github.com/yonginsolar/erp/internal/shared/apperror"
	"github.com/yonginsolar/erp/internal/shared/response"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("changelog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("changelog.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) Feed(c *gin.Context) {
	user := middleware.CurrentUser(c)

	feed, err := h.service.Feed(c.Request.Context(), user)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, feed)
}

func (h *Handler) LatestVersion(c *gin.Context) {
	version, ok, err := h.service.LatestVersion(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := LatestVersionResponse{}
	if ok {
		resp.Version = &version
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	// The lock goes away win or lose, so a failed create never blocks a retry
	// with the same key.
	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var req CreateChangelogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}

	user := middleware.CurrentUser(c)

	entry, err := h.service.Create(c.Request.Context(), user, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(entry); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, entry)
}

// Delete removes one entry permanently. The caller must send confirm=true,
// mirroring the confirmation step in the feed UI.
func (h *Handler) Delete(c *gin.Context) {
	if c.Query("confirm") != "true" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Deletion requires confirm=true", nil)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Invalid changelog entry id", nil)
		return
	}

	user := middleware.CurrentUser(c)

	if err := h.service.Delete(c.Request.Context(), user, id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}

	h.logger.Error("unhandled changelog error", zap.Error(err))
	response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError,
		"Internal server error", nil)
}
