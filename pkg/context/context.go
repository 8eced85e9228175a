package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const (
	traceIDKey ctxKey = "trace_id"
	subjectKey ctxKey = "subject"
	appCtxKey  ctxKey = "app_context"
)

type appContext struct {
	context.Context
	logger *slog.Logger
}

// Value exposes the app context itself so it stays reachable through
// contexts derived from it.
func (ac *appContext) Value(key any) any {
	if key == appCtxKey {
		return ac
	}
	return ac.Context.Value(key)
}

type AppContextOpt func(*appContext) *appContext // option pattern

func WithLogger(logger *slog.Logger) AppContextOpt {
	return func(ac *appContext) *appContext {
		ac.logger = logger
		return ac
	}
}

func NewAppContext(parent context.Context, opts ...AppContextOpt) context.Context {
	ctx := &appContext{Context: parent}
	for _, opt := range opts {
		ctx = opt(ctx)
	}

	return ctx
}

// NewAppContextWithTracing attaches traceID, generating one when empty.
func NewAppContextWithTracing(parent context.Context, traceID string, opts ...AppContextOpt) context.Context {
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return NewAppContext(context.WithValue(parent, traceIDKey, traceID), opts...)
}

// WithSubject records the authenticated caller (JWT subject) on ctx.
func WithSubject(parent context.Context, subject string) context.Context {
	return context.WithValue(parent, subjectKey, subject)
}

func lookupAppContext(ctx context.Context) (*appContext, bool) {
	appCtx, ok := ctx.Value(appCtxKey).(*appContext)
	return appCtx, ok
}

// SetLogger replaces the logger of the nearest app context. It reports false
// when ctx carries none.
func SetLogger(ctx context.Context, logger *slog.Logger) bool {
	appCtx, ok := lookupAppContext(ctx)
	if !ok {
		return false
	}
	appCtx.logger = logger
	return true
}

// LookupLogger reports the logger attached to ctx, if any.
func LookupLogger(ctx context.Context) (*slog.Logger, bool) {
	appCtx, ok := lookupAppContext(ctx)
	if !ok || appCtx.logger == nil {
		return nil, false
	}
	return appCtx.logger, true
}

func GetTraceID(ctx context.Context) string {
	if tid, ok := ctx.Value(traceIDKey).(string); ok {
		return tid
	}
	return ""
}

func GetSubject(ctx context.Context) string {
	if sub, ok := ctx.Value(subjectKey).(string); ok {
		return sub
	}
	return ""
}
