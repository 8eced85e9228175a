package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
)

// MockQualysService is a mock implementation of the qualys port.Service interface
type MockQualysService struct {
	mock.Mock
}

func (m *MockQualysService) GetHost(ctx context.Context, ip string) (domain.Host, error) {
	args := m.Called(ctx, ip)
	return args.Get(0).(domain.Host), args.Error(1)
}

func (m *MockQualysService) ListHostRange(ctx context.Context, start, end string) ([]domain.Host, error) {
	args := m.Called(ctx, start, end)
	return hosts(args.Get(0)), args.Error(1)
}

func (m *MockQualysService) NotScannedSince(ctx context.Context, days int) ([]domain.Host, error) {
	args := m.Called(ctx, days)
	return hosts(args.Get(0)), args.Error(1)
}

func (m *MockQualysService) ListAssetGroups(ctx context.Context, title string) ([]domain.AssetGroup, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssetGroup), args.Error(1)
}

func (m *MockQualysService) GetAssetGroup(ctx context.Context, id int64) (domain.AssetGroup, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.AssetGroup), args.Error(1)
}

func (m *MockQualysService) AddAssetGroupIP(ctx context.Context, id int64, ip string) (domain.AssetGroup, error) {
	args := m.Called(ctx, id, ip)
	return args.Get(0).(domain.AssetGroup), args.Error(1)
}

func (m *MockQualysService) SetAssetGroupIPs(ctx context.Context, id int64, ips []string) (domain.AssetGroup, error) {
	args := m.Called(ctx, id, ips)
	return args.Get(0).(domain.AssetGroup), args.Error(1)
}

func (m *MockQualysService) ListScans(ctx context.Context, filter domain.ScanFilter) ([]domain.Scan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scan), args.Error(1)
}

func (m *MockQualysService) LaunchScan(ctx context.Context, req domain.LaunchScanRequest) (domain.Scan, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Scan), args.Error(1)
}

func (m *MockQualysService) GetScan(ctx context.Context, ref string) (domain.Scan, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(domain.Scan), args.Error(1)
}

func (m *MockQualysService) CancelScan(ctx context.Context, ref string) (domain.Scan, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(domain.Scan), args.Error(1)
}

func (m *MockQualysService) PauseScan(ctx context.Context, ref string) (domain.Scan, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(domain.Scan), args.Error(1)
}

func (m *MockQualysService) ResumeScan(ctx context.Context, ref string) (domain.Scan, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(domain.Scan), args.Error(1)
}

func (m *MockQualysService) ListReportTemplates(ctx context.Context) ([]domain.ReportTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportTemplate), args.Error(1)
}

func (m *MockQualysService) ListReports(ctx context.Context) ([]domain.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockQualysService) GetReport(ctx context.Context, id int64) (domain.Report, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Report), args.Error(1)
}

func (m *MockQualysService) FetchReport(ctx context.Context, id int64) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockQualysService) StreamReport(ctx context.Context, id int64, w io.Writer) (int64, error) {
	args := m.Called(ctx, id, w)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQualysService) ListMapReports(ctx context.Context) ([]domain.MapReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MapReport), args.Error(1)
}

func (m *MockQualysService) LaunchMapReport(ctx context.Context, req domain.MapReportRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockQualysService) AddIPs(ctx context.Context, ips []string, module domain.IPModule) error {
	args := m.Called(ctx, ips, module)
	return args.Error(0)
}

func (m *MockQualysService) QueryKnowledgeBase(ctx context.Context, query domain.KBQuery, fn func(domain.Vulnerability) error) error {
	args := m.Called(ctx, query, fn)
	return args.Error(0)
}

func hosts(v interface{}) []domain.Host {
	if v == nil {
		return nil
	}
	return v.([]domain.Host)
}
