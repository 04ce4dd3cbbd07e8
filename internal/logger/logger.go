// Package logger configura log/slog para el servicio y guarda un logger por
// request (con request_id) en el context.
//
//	log := logger.WithCtx(ctx)
//	log.Info("order created", "order_id", id)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

var L = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Setup elige JSON en producción y texto legible en desarrollo.
func Setup(env string) {
	L = New(os.Stdout, env)
	slog.SetDefault(L)
}

func New(w io.Writer, env string) *slog.Logger {
	switch env {
	case "production", "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

type ctxKey struct{}

// WithCtx devuelve el logger del request o el logger base si no hay uno.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return L
}

// InjectLogger guarda log en ctx. Lo usa el middleware de request.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}
