package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxFromContext retrieves the GORM transaction placed by the unit of work,
// or nil when the call runs outside a unit of work.
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// ContextWithTx attaches a GORM transaction to the context.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

type requestIDKey struct{}

// RequestIDFromContext returns the request ID propagated from the API layer,
// or "" when none was set.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ContextWithRequestID attaches a request ID for persistence-layer logging.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}
