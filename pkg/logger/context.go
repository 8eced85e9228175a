package logger

import (
	"context"
	"sync"

	"gitlab.apk-group.net/siem/backend/qualys-client/config"
	appContext "gitlab.apk-group.net/siem/backend/qualys-client/pkg/context"
)

// ContextLogger resolves a CoreLogger enriched with the trace ID carried by a context
type ContextLogger struct {
	*CoreLogger
}

func newContextLogger(cfg config.LoggerConfig) (*ContextLogger, error) {
	coreLogger, err := NewCoreLogger(cfg)
	if err != nil {
		return nil, err
	}

	return &ContextLogger{CoreLogger: coreLogger}, nil
}

// FromContext prefers a logger stored on ctx and adds trace_id and subject when present
func (cl *ContextLogger) FromContext(ctx context.Context) *CoreLogger {
	logger := cl.CoreLogger
	if ctxLogger, ok := appContext.LookupLogger(ctx); ok {
		logger = &CoreLogger{Logger: ctxLogger, config: cl.config}
	}

	logger = logger.withTraceID(appContext.GetTraceID(ctx))
	if subject := appContext.GetSubject(ctx); subject != "" {
		logger = logger.withFields(map[string]interface{}{"subject": subject})
	}
	return logger
}

// SetInContext attaches logger to ctx, wrapping ctx in an app context when it
// carries none.
func (cl *ContextLogger) SetInContext(ctx context.Context, logger *CoreLogger) context.Context {
	if appContext.SetLogger(ctx, logger.Logger) {
		return ctx
	}
	return appContext.NewAppContext(ctx, appContext.WithLogger(logger.Logger))
}

var (
	globalMu            sync.RWMutex
	globalContextLogger *ContextLogger
)

// InitGlobalLogger initializes the global context logger
func InitGlobalLogger(cfg config.LoggerConfig) error {
	logger, err := newContextLogger(cfg)
	if err != nil {
		return err
	}
	setGlobalLogger(logger)
	return nil
}

func setGlobalLogger(logger *ContextLogger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalContextLogger = logger
}

// GetGlobalLogger returns the global context logger instance
func GetGlobalLogger() *ContextLogger {
	globalMu.RLock()
	logger := globalContextLogger
	globalMu.RUnlock()
	if logger != nil {
		return logger
	}

	logger, err := newContextLogger(config.LoggerConfig{Level: "info", Output: "stdout"})
	if err != nil {
		panic("Failed to create default logger: " + err.Error())
	}
	globalMu.Lock()
	if globalContextLogger == nil {
		globalContextLogger = logger
	}
	logger = globalContextLogger
	globalMu.Unlock()
	return logger
}

// FromContext is a convenience function to get logger from context using global instance
func FromContext(ctx context.Context) *CoreLogger {
	return GetGlobalLogger().FromContext(ctx)
}

func DebugContext(ctx context.Context, msg string, args ...interface{}) {
	FromContext(ctx).Debug(msg, args...)
}

func InfoContext(ctx context.Context, msg string, args ...interface{}) {
	FromContext(ctx).Info(msg, args...)
}

func WarnContext(ctx context.Context, msg string, args ...interface{}) {
	FromContext(ctx).Warn(msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...interface{}) {
	FromContext(ctx).Error(msg, args...)
}

func DebugContextWithFields(ctx context.Context, msg string, fields map[string]interface{}) {
	FromContext(ctx).DebugWithFields(msg, fields)
}

func InfoContextWithFields(ctx context.Context, msg string, fields map[string]interface{}) {
	FromContext(ctx).InfoWithFields(msg, fields)
}

func WarnContextWithFields(ctx context.Context, msg string, fields map[string]interface{}) {
	FromContext(ctx).WarnWithFields(msg, fields)
}

func ErrorContextWithFields(ctx context.Context, msg string, fields map[string]interface{}) {
	FromContext(ctx).ErrorWithFields(msg, fields)
}
