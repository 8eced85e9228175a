package context_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	appContext "gitlab.apk-group.net/siem/backend/qualys-client/pkg/context"
)

func TestNewAppContextWithTracing(t *testing.T) {
	ctx := appContext.NewAppContextWithTracing(context.Background(), "trace-1")
	assert.Equal(t, "trace-1", appContext.GetTraceID(ctx))

	generated := appContext.NewAppContextWithTracing(context.Background(), "")
	assert.NotEmpty(t, appContext.GetTraceID(generated))
}

func TestLoggerInContext(t *testing.T) {
	plain := context.Background()
	_, ok := appContext.LookupLogger(plain)
	assert.False(t, ok)
	assert.False(t, appContext.SetLogger(plain, slog.Default()))

	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := appContext.NewAppContext(plain, appContext.WithLogger(custom))
	got, ok := appContext.LookupLogger(ctx)
	assert.True(t, ok)
	assert.Same(t, custom, got)

	other := slog.New(slog.NewTextHandler(os.Stderr, nil))
	assert.True(t, appContext.SetLogger(ctx, other))
	got, _ = appContext.LookupLogger(ctx)
	assert.Same(t, other, got)
}

func TestLoggerSurvivesDerivedContexts(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := appContext.NewAppContextWithTracing(context.Background(), "trace-2", appContext.WithLogger(custom))

	derived := appContext.WithSubject(ctx, "soc-analyst")
	derived, cancel := context.WithCancel(derived)
	defer cancel()

	got, ok := appContext.LookupLogger(derived)
	assert.True(t, ok)
	assert.Same(t, custom, got)
	assert.Equal(t, "trace-2", appContext.GetTraceID(derived))
	assert.Equal(t, "soc-analyst", appContext.GetSubject(derived))
}

func TestSubject(t *testing.T) {
	ctx := appContext.WithSubject(context.Background(), "svc-scanner")
	assert.Equal(t, "svc-scanner", appContext.GetSubject(ctx))
	assert.Empty(t, appContext.GetSubject(context.Background()))
}
