package port

import (
	"context"
	"io"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
)

type Service interface {
	GetHost(ctx context.Context, ip string) (domain.Host, error)
	ListHostRange(ctx context.Context, start, end string) ([]domain.Host, error)
	// NotScannedSince compares LastScan with now minus days exactly, not by
	// calendar day.
	NotScannedSince(ctx context.Context, days int) ([]domain.Host, error)

	ListAssetGroups(ctx context.Context, title string) ([]domain.AssetGroup, error)
	GetAssetGroup(ctx context.Context, id int64) (domain.AssetGroup, error)
	AddAssetGroupIP(ctx context.Context, id int64, ip string) (domain.AssetGroup, error)
	SetAssetGroupIPs(ctx context.Context, id int64, ips []string) (domain.AssetGroup, error)

	ListScans(ctx context.Context, filter domain.ScanFilter) ([]domain.Scan, error)
	LaunchScan(ctx context.Context, req domain.LaunchScanRequest) (domain.Scan, error)
	GetScan(ctx context.Context, ref string) (domain.Scan, error)
	CancelScan(ctx context.Context, ref string) (domain.Scan, error)
	PauseScan(ctx context.Context, ref string) (domain.Scan, error)
	ResumeScan(ctx context.Context, ref string) (domain.Scan, error)

	ListReportTemplates(ctx context.Context) ([]domain.ReportTemplate, error)
	ListReports(ctx context.Context) ([]domain.Report, error)
	GetReport(ctx context.Context, id int64) (domain.Report, error)
	FetchReport(ctx context.Context, id int64) ([]byte, error)
	StreamReport(ctx context.Context, id int64, w io.Writer) (int64, error)

	ListMapReports(ctx context.Context) ([]domain.MapReport, error)
	LaunchMapReport(ctx context.Context, req domain.MapReportRequest) (string, error)

	AddIPs(ctx context.Context, ips []string, module domain.IPModule) error
	QueryKnowledgeBase(ctx context.Context, query domain.KBQuery, fn func(domain.Vulnerability) error) error
}
