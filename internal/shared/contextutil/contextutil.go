package contextutil

import (
	"context"

	"go.uber.org/zap"

	"github.com/yonginsolar/erp/internal/domain"
)

// contextKey adalah tipe privat agar tidak terjadi tabrakan key dengan library lain
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userKey      contextKey = "user_context"
	loggerKey    contextKey = "logger"
)

// --- Request ID Helpers ---

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// --- User Context Helpers ---

// WithUser memasukkan descriptor sesi (role/position) ke dalam context
func WithUser(ctx context.Context, user domain.UserContext) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser mengambil descriptor sesi dari context.
// Tidak ada descriptor berarti anonymous, bukan error.
func GetUser(ctx context.Context) domain.UserContext {
	if u, ok := ctx.Value(userKey).(domain.UserContext); ok {
		return u
	}
	return domain.Anonymous()
}

// --- Logger Helpers ---

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger mengambil logger dari context.
// Jika tidak ada, mengembalikan fallback (defaultLogger) agar tidak panic.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}
