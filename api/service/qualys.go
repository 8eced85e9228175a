package service

import (
	"context"
	"errors"
	"fmt"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
	qualysPort "gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/port"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/logger"
)

var (
	ErrInvalidArgument = qualys.ErrInvalidArgument
	ErrMapReportScope  = qualys.ErrMapReportScope
	ErrMissingTemplate = qualys.ErrMissingTemplate

	ErrInvalidRequest = errors.New("invalid request")
)

const (
	ScanActionCancel = "cancel"
	ScanActionPause  = "pause"
	ScanActionResume = "resume"
)

type QualysService struct {
	service qualysPort.Service
}

func NewQualysService(srv qualysPort.Service) *QualysService {
	return &QualysService{
		service: srv,
	}
}

func invalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Hosts looks up one ip, or the range start-end when ip is empty.
func (s *QualysService) Hosts(ctx context.Context, ip, start, end string) ([]HostResponse, error) {
	switch {
	case ip != "":
		host, err := s.service.GetHost(ctx, ip)
		if err != nil {
			return nil, err
		}
		return []HostResponse{hostResponse(host)}, nil
	case start != "" && end != "":
		hosts, err := s.service.ListHostRange(ctx, start, end)
		if err != nil {
			return nil, err
		}
		return hostResponses(hosts), nil
	default:
		return nil, invalidRequest("ip or start and end are required")
	}
}

func (s *QualysService) StaleHosts(ctx context.Context, days int) ([]HostResponse, error) {
	hosts, err := s.service.NotScannedSince(ctx, days)
	if err != nil {
		return nil, err
	}
	return hostResponses(hosts), nil
}

func (s *QualysService) AssetGroups(ctx context.Context, title string) ([]AssetGroupResponse, error) {
	groups, err := s.service.ListAssetGroups(ctx, title)
	if err != nil {
		return nil, err
	}
	result := make([]AssetGroupResponse, 0, len(groups))
	for _, g := range groups {
		result = append(result, assetGroupResponse(g))
	}
	return result, nil
}

func (s *QualysService) AssetGroup(ctx context.Context, id int64) (*AssetGroupResponse, error) {
	group, err := s.service.GetAssetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := assetGroupResponse(group)
	return &resp, nil
}

// UpdateAssetGroupIPs replaces the group's ips, or adds them one by one.
func (s *QualysService) UpdateAssetGroupIPs(ctx context.Context, id int64, req *AssetGroupIPsRequest) (*AssetGroupResponse, error) {
	if len(req.IPs) == 0 {
		return nil, invalidRequest("ips are required")
	}

	var (
		group domain.AssetGroup
		err   error
	)
	if req.Replace {
		group, err = s.service.SetAssetGroupIPs(ctx, id, req.IPs)
	} else {
		for _, ip := range req.IPs {
			if group, err = s.service.AddAssetGroupIP(ctx, id, ip); err != nil {
				break
			}
		}
	}
	if err != nil {
		logger.ErrorContext(ctx, "API Service: Failed to update asset group %d: %v", id, err)
		return nil, err
	}
	resp := assetGroupResponse(group)
	return &resp, nil
}

func (s *QualysService) Scans(ctx context.Context, req *ScanFilterRequest) ([]ScanResponse, error) {
	scans, err := s.service.ListScans(ctx, domain.ScanFilter{
		LaunchedAfter: req.LaunchedAfter,
		State:         req.State,
		Target:        req.Target,
		Type:          req.Type,
		UserLogin:     req.UserLogin,
	})
	if err != nil {
		return nil, err
	}
	result := make([]ScanResponse, 0, len(scans))
	for _, scan := range scans {
		result = append(result, scanResponse(scan))
	}
	return result, nil
}

func (s *QualysService) Scan(ctx context.Context, ref string) (*ScanResponse, error) {
	if ref == "" {
		return nil, invalidRequest("ref is required")
	}
	scan, err := s.service.GetScan(ctx, ref)
	if err != nil {
		return nil, err
	}
	resp := scanResponse(scan)
	return &resp, nil
}

func (s *QualysService) LaunchScan(ctx context.Context, req *LaunchScanRequest) (*ScanResponse, error) {
	logger.DebugContext(ctx, "API Service: Launching scan %q", req.Title)
	scan, err := s.service.LaunchScan(ctx, domain.LaunchScanRequest{
		Title:       req.Title,
		OptionTitle: req.OptionTitle,
		ScannerName: req.ScannerName,
		AssetGroups: req.AssetGroups,
		IP:          req.IP,
	})
	if err != nil {
		return nil, err
	}
	resp := scanResponse(scan)
	return &resp, nil
}

// ControlScan runs cancel, pause or resume on the scan ref.
func (s *QualysService) ControlScan(ctx context.Context, action, ref string) (*ScanResponse, error) {
	if ref == "" {
		return nil, invalidRequest("ref is required")
	}

	var control func(context.Context, string) (domain.Scan, error)
	switch action {
	case ScanActionCancel:
		control = s.service.CancelScan
	case ScanActionPause:
		control = s.service.PauseScan
	case ScanActionResume:
		control = s.service.ResumeScan
	default:
		return nil, invalidRequest("unknown scan action %q", action)
	}

	scan, err := control(ctx, ref)
	if err != nil {
		return nil, err
	}
	resp := scanResponse(scan)
	return &resp, nil
}

func (s *QualysService) ReportTemplates(ctx context.Context) ([]ReportTemplateResponse, error) {
	templates, err := s.service.ListReportTemplates(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]ReportTemplateResponse, 0, len(templates))
	for _, t := range templates {
		result = append(result, ReportTemplateResponse{
			ID:           t.ID,
			Title:        t.Title,
			Type:         t.Type,
			TemplateType: t.TemplateType,
			User:         t.User,
			LastUpdate:   domain.FormatDatetime(t.LastUpdate),
			IsGlobal:     t.IsGlobal,
			IsDefault:    t.IsDefault,
		})
	}
	return result, nil
}

func (s *QualysService) Reports(ctx context.Context) ([]ReportResponse, error) {
	reports, err := s.service.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		result = append(result, reportResponse(r))
	}
	return result, nil
}

func (s *QualysService) Report(ctx context.Context, id int64) (*ReportResponse, error) {
	report, err := s.service.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := reportResponse(report)
	return &resp, nil
}

// DownloadReport returns the content of a finished report.
func (s *QualysService) DownloadReport(ctx context.Context, id int64) ([]byte, error) {
	return s.service.FetchReport(ctx, id)
}

func (s *QualysService) MapReports(ctx context.Context) ([]MapReportResponse, error) {
	maps, err := s.service.ListMapReports(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]MapReportResponse, 0, len(maps))
	for _, m := range maps {
		result = append(result, MapReportResponse{
			Ref:            m.Ref,
			Title:          m.Title,
			Domain:         m.Domain,
			Status:         m.Status,
			LaunchDatetime: domain.FormatDatetime(m.LaunchDatetime),
			ReportID:       m.ReportID,
		})
	}
	return result, nil
}

func (s *QualysService) LaunchMapReport(ctx context.Context, req *MapReportRequest) (*MapReportLaunchResponse, error) {
	if req.MapRef == "" {
		return nil, invalidRequest("map_ref is required")
	}
	if req.IPs != "" && len(req.IPRanges) > 0 {
		return nil, invalidRequest("ips and ip_ranges are exclusive")
	}

	launch := domain.MapReportRequest{
		Map:                domain.MapHandle{Ref: req.MapRef, Name: req.MapTitle},
		Domain:             req.Domain,
		TemplateID:         req.TemplateID,
		TemplateTitle:      req.TemplateTitle,
		UseDefaultTemplate: req.UseDefaultTemplate,
		Title:              req.Title,
		OutputFormat:       req.OutputFormat,
		HideHeader:         req.HideHeader,
	}
	if req.CompareRef != "" {
		launch.CompareMap = domain.MapHandle{Ref: req.CompareRef, Name: req.CompareTitle}
	}
	switch {
	case req.IPs != "":
		launch.IPRestriction = domain.RawIPs(req.IPs)
	case len(req.IPRanges) > 0:
		ranges := make(domain.IPRanges, 0, len(req.IPRanges))
		for _, r := range req.IPRanges {
			ranges = append(ranges, domain.IPRange{Start: r.Start, End: r.End})
		}
		launch.IPRestriction = ranges
	}

	id, err := s.service.LaunchMapReport(ctx, launch)
	if err != nil {
		return nil, err
	}
	return &MapReportLaunchResponse{ReportID: id}, nil
}

func (s *QualysService) AddIPs(ctx context.Context, req *AddIPsRequest) error {
	module := domain.IPModule(req.Module)
	switch module {
	case "":
		module = domain.ModuleVM
	case domain.ModuleVM, domain.ModulePC, domain.ModuleBoth:
	default:
		return invalidRequest("unknown module %q", req.Module)
	}
	return s.service.AddIPs(ctx, req.IPs, module)
}

func hostResponse(h domain.Host) HostResponse {
	return HostResponse{
		ID:             h.ID,
		IP:             h.IP,
		DNS:            h.DNS,
		NetBIOS:        h.NetBIOS,
		OS:             h.OS,
		TrackingMethod: h.TrackingMethod,
		LastScan:       h.LastScanString(),
	}
}

func hostResponses(hosts []domain.Host) []HostResponse {
	result := make([]HostResponse, 0, len(hosts))
	for _, h := range hosts {
		result = append(result, hostResponse(h))
	}
	return result
}

func assetGroupResponse(g domain.AssetGroup) AssetGroupResponse {
	return AssetGroupResponse{
		ID:                g.ID,
		Title:             g.Title,
		BusinessImpact:    g.BusinessImpact,
		LastUpdate:        g.LastUpdate,
		ScanIPs:           nonNil(g.ScanIPs),
		ScanDNS:           nonNil(g.ScanDNS),
		ScannerAppliances: nonNil(g.ScannerAppliances),
	}
}

func scanResponse(s domain.Scan) ScanResponse {
	return ScanResponse{
		Ref:            s.Ref,
		Title:          s.Title,
		Type:           s.Type,
		Status:         s.Status,
		UserLogin:      s.UserLogin,
		LaunchDatetime: domain.FormatDatetime(s.LaunchDatetime),
		Duration:       s.Duration,
		Processed:      s.Processed,
		Target:         nonNil(s.Target),
		AssetGroups:    nonNil(s.AssetGroups),
		OptionProfile:  s.OptionProfile,
	}
}

func reportResponse(r domain.Report) ReportResponse {
	return ReportResponse{
		ID:                 r.ID,
		Title:              r.Title,
		Type:               r.Type,
		Status:             r.Status,
		UserLogin:          r.UserLogin,
		OutputFormat:       r.OutputFormat,
		Size:               r.Size,
		LaunchDatetime:     domain.FormatDatetime(r.LaunchDatetime),
		ExpirationDatetime: domain.FormatDatetime(r.ExpirationDatetime),
	}
}

// nonNil keeps empty lists as [] in JSON.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
