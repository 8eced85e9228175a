package logger

// Process-level helpers for startup, shutdown and other code that runs
// outside a request context.

func Info(msg string, args ...interface{}) {
	GetGlobalLogger().CoreLogger.Info(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	GetGlobalLogger().CoreLogger.Warn(msg, args...)
}

// Fatal logs through the global logger and exits with status 1.
func Fatal(msg string, args ...interface{}) {
	GetGlobalLogger().CoreLogger.Fatal(msg, args...)
}

func InfoWithFields(msg string, fields map[string]interface{}) {
	GetGlobalLogger().CoreLogger.InfoWithFields(msg, fields)
}
