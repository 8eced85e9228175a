package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/connector/port"
)

// MockConnector is a mock implementation of the port.Connector interface
type MockConnector struct {
	mock.Mock
}

func (m *MockConnector) Request(ctx context.Context, call string, params port.Params) ([]byte, error) {
	args := m.Called(ctx, call, params)
	var body []byte
	if b := args.Get(0); b != nil {
		body = b.([]byte)
	}
	return body, args.Error(1)
}

func (m *MockConnector) Stream(ctx context.Context, call string, params port.Params) (io.ReadCloser, error) {
	args := m.Called(ctx, call, params)
	var rc io.ReadCloser
	if r := args.Get(0); r != nil {
		rc = r.(io.ReadCloser)
	}
	return rc, args.Error(1)
}

func (m *MockConnector) Settings() port.Settings {
	args := m.Called()
	return args.Get(0).(port.Settings)
}
