package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/cache/domain"
)

// MockCacheRepo is a mock implementation of the cache port.Repo interface
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Get(ctx context.Context, key string, now time.Time) (*domain.Entry, error) {
	args := m.Called(ctx, key, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockCacheRepo) Put(ctx context.Context, entry domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCacheRepo) InvalidateCall(ctx context.Context, call string) (int64, error) {
	args := m.Called(ctx, call)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
