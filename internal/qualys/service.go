package qualys

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	connectorPort "gitlab.apk-group.net/siem/backend/qualys-client/internal/connector/port"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/mapper"
	qualysPort "gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/port"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/logger"
)

var (
	ErrInvalidArgument = domain.ErrInvalidArgument
	ErrMapReportScope  = domain.ErrMapReportScope
	ErrEmptyKBQuery    = domain.ErrEmptyKBQuery
	ErrMissingTemplate = domain.ErrMissingTemplate
)

type service struct {
	conn  connectorPort.Connector
	locks *refLocks
	now   func() time.Time
}

type Option func(*service)

// WithClock replaces time.Now for NotScannedSince.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func NewQualysService(conn connectorPort.Connector, opts ...Option) qualysPort.Service {
	s := &service{
		conn:  conn,
		locks: newRefLocks(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func (s *service) request(ctx context.Context, call string, params connectorPort.Params, v interface{}) error {
	body, err := s.conn.Request(ctx, call, params)
	if err != nil {
		return err
	}
	return domain.Decode(body, v)
}

func (s *service) listHosts(ctx context.Context, params connectorPort.Params) ([]domain.Host, error) {
	var out domain.HostListOutput
	if err := s.request(ctx, domain.CallHost, params, &out); err != nil {
		return nil, err
	}
	return mapper.HostListWire2Domain(out)
}

func (s *service) GetHost(ctx context.Context, ip string) (domain.Host, error) {
	logger.InfoContext(ctx, "Qualys service: Getting host %s", ip)
	if strings.TrimSpace(ip) == "" {
		return domain.Host{}, invalid("ip is required")
	}

	hosts, err := s.listHosts(ctx, connectorPort.Params{"action": domain.ActionList, "ips": ip, "details": domain.DetailsAll})
	if err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to get host %s: %v", ip, err)
		return domain.Host{}, err
	}
	if len(hosts) == 0 {
		return domain.Host{}, &domain.NotFoundError{Kind: "host", Key: ip}
	}
	return hosts[0], nil
}

func (s *service) ListHostRange(ctx context.Context, start, end string) ([]domain.Host, error) {
	logger.InfoContext(ctx, "Qualys service: Listing hosts %s-%s", start, end)
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return nil, invalid("range start and end are required")
	}

	hosts, err := s.listHosts(ctx, connectorPort.Params{"action": domain.ActionList, "ips": start + "-" + end})
	if err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to list hosts %s-%s: %v", start, end, err)
		return nil, err
	}
	return hosts, nil
}

// NotScannedSince returns hosts whose last scan is at least days old,
// including hosts never scanned. Age is measured to the second against
// now minus days in UTC, not in whole calendar days: a host scanned 29 days
// and 23 hours ago is not stale for days=30.
func (s *service) NotScannedSince(ctx context.Context, days int) ([]domain.Host, error) {
	if days < 0 {
		return nil, invalid("days must not be negative, got %d", days)
	}

	hosts, err := s.listHosts(ctx, connectorPort.Params{"action": domain.ActionList, "details": domain.DetailsAll})
	if err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to list hosts: %v", err)
		return nil, err
	}

	cutoff := s.now().UTC().AddDate(0, 0, -days)
	stale := make([]domain.Host, 0, len(hosts))
	for _, h := range hosts {
		if h.ScannedBefore(cutoff) {
			stale = append(stale, h)
		}
	}

	logger.InfoContextWithFields(ctx, "Qualys service: Found stale hosts", map[string]interface{}{
		"days":  days,
		"total": len(hosts),
		"stale": len(stale),
	})
	return stale, nil
}

func (s *service) listAssetGroups(ctx context.Context, params connectorPort.Params) ([]domain.AssetGroup, error) {
	var list domain.AssetGroupList
	if err := s.request(ctx, domain.CallAssetGroupList, params, &list); err != nil {
		return nil, err
	}
	return mapper.AssetGroupListWire2Domain(list)
}

func (s *service) ListAssetGroups(ctx context.Context, title string) ([]domain.AssetGroup, error) {
	logger.InfoContext(ctx, "Qualys service: Listing asset groups (title=%q)", title)

	params := connectorPort.Params{}
	if title != "" {
		params["title"] = title
	}
	groups, err := s.listAssetGroups(ctx, params)
	if err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to list asset groups: %v", err)
		return nil, err
	}
	return groups, nil
}

func (s *service) GetAssetGroup(ctx context.Context, id int64) (domain.AssetGroup, error) {
	if id <= 0 {
		return domain.AssetGroup{}, invalid("asset group id must be positive")
	}

	key := strconv.FormatInt(id, 10)
	groups, err := s.listAssetGroups(ctx, connectorPort.Params{"ids": key})
	if err != nil {
		return domain.AssetGroup{}, err
	}
	for _, g := range groups {
		if g.ID == id {
			return g, nil
		}
	}
	return domain.AssetGroup{}, &domain.NotFoundError{Kind: "asset group", Key: key}
}

func (s *service) AddAssetGroupIP(ctx context.Context, id int64, ip string) (domain.AssetGroup, error) {
	if strings.TrimSpace(ip) == "" {
		return domain.AssetGroup{}, invalid("ip is required")
	}
	group, err := s.GetAssetGroup(connectorPort.WithFreshRead(ctx), id)
	if err != nil {
		return domain.AssetGroup{}, err
	}

	if err := group.AddAsset(ctx, s.conn, ip); err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to add %s to asset group %d: %v", ip, id, err)
		return domain.AssetGroup{}, err
	}
	logger.InfoContext(ctx, "Qualys service: Added %s to asset group %d", ip, id)
	return group, nil
}

func (s *service) SetAssetGroupIPs(ctx context.Context, id int64, ips []string) (domain.AssetGroup, error) {
	if len(ips) == 0 {
		return domain.AssetGroup{}, invalid("at least one ip is required")
	}
	group, err := s.GetAssetGroup(connectorPort.WithFreshRead(ctx), id)
	if err != nil {
		return domain.AssetGroup{}, err
	}

	if err := group.SetAssets(ctx, s.conn, ips); err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to set ips of asset group %d: %v", id, err)
		return domain.AssetGroup{}, err
	}
	logger.InfoContext(ctx, "Qualys service: Replaced ips of asset group %d (%d entries)", id, len(ips))
	return group, nil
}

func (s *service) listScans(ctx context.Context, params connectorPort.Params) ([]domain.Scan, error) {
	var out domain.ScanListOutput
	if err := s.request(ctx, domain.CallScan, params, &out); err != nil {
		return nil, err
	}
	return mapper.ScanListWire2Domain(out)
}

func (s *service) ListScans(ctx context.Context, filter domain.ScanFilter) ([]domain.Scan, error) {
	params := connectorPort.Params{
		"action":      domain.ActionList,
		"show_ags":    "1",
		"show_op":     "1",
		"show_status": "1",
	}
	setIf(params, "launched_after_datetime", filter.LaunchedAfter)
	setIf(params, "state", filter.State)
	setIf(params, "target", filter.Target)
	setIf(params, "type", filter.Type)
	setIf(params, "user_login", filter.UserLogin)

	scans, err := s.listScans(ctx, params)
	if err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to list scans: %v", err)
		return nil, err
	}
	return scans, nil
}

func setIf(params connectorPort.Params, key, value string) {
	if value != "" {
		params[key] = value
	}
}

func (s *service) GetScan(ctx context.Context, ref string) (domain.Scan, error) {
	if strings.TrimSpace(ref) == "" {
		return domain.Scan{}, invalid("scan ref is required")
	}

	scans, err := s.listScans(ctx, connectorPort.Params{
		"action":      domain.ActionList,
		"scan_ref":    ref,
		"show_ags":    "1",
		"show_op":     "1",
		"show_status": "1",
	})
	if err != nil {
		return domain.Scan{}, err
	}
	if len(scans) == 0 {
		return domain.Scan{}, &domain.NotFoundError{Kind: "scan", Key: ref}
	}
	return scans[0], nil
}

func (s *service) LaunchScan(ctx context.Context, req domain.LaunchScanRequest) (domain.Scan, error) {
	if req.Title == "" || req.OptionTitle == "" {
		return domain.Scan{}, invalid("scan title and option title are required")
	}
	if req.AssetGroups == "" && req.IP == "" {
		return domain.Scan{}, invalid("asset groups or ip are required")
	}

	params := connectorPort.Params{
		"action":       domain.ActionLaunch,
		"scan_title":   req.Title,
		"option_title": req.OptionTitle,
	}
	setIf(params, "iscanner_name", req.ScannerName)
	setIf(params, "asset_groups", req.AssetGroups)
	setIf(params, "ip", req.IP)

	var ret domain.SimpleReturn
	if err := s.request(ctx, domain.CallScan, params, &ret); err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to launch scan %q: %v", req.Title, err)
		return domain.Scan{}, err
	}
	ref, err := mapper.LaunchedScanRef(ret)
	if err != nil {
		return domain.Scan{}, err
	}

	logger.InfoContextWithFields(ctx, "Qualys service: Scan launched", map[string]interface{}{
		"scan_ref": ref,
		"title":    req.Title,
	})
	return s.GetScan(ctx, ref)
}

func (s *service) CancelScan(ctx context.Context, ref string) (domain.Scan, error) {
	return s.controlScan(ctx, ref, domain.ActionCancel, (*domain.Scan).Cancel)
}

func (s *service) PauseScan(ctx context.Context, ref string) (domain.Scan, error) {
	return s.controlScan(ctx, ref, domain.ActionPause, (*domain.Scan).Pause)
}

func (s *service) ResumeScan(ctx context.Context, ref string) (domain.Scan, error) {
	return s.controlScan(ctx, ref, domain.ActionResume, (*domain.Scan).Resume)
}

// controlScan holds the ref lock across fetch, transition and re-query so
// concurrent callers see each other's server-confirmed status. The status
// the transition is checked against is always read from the server.
func (s *service) controlScan(ctx context.Context, ref, action string, op func(*domain.Scan, context.Context, connectorPort.Connector) error) (domain.Scan, error) {
	unlock := s.locks.Lock(ref)
	defer unlock()

	scan, err := s.GetScan(connectorPort.WithFreshRead(ctx), ref)
	if err != nil {
		return domain.Scan{}, err
	}

	previous := scan.Status
	if err := op(&scan, ctx, s.conn); err != nil {
		var stateErr *domain.InvalidStateError
		if errors.As(err, &stateErr) {
			logger.WarnContext(ctx, "Qualys service: Refused to %s scan %s in status %s", action, ref, previous)
		} else {
			logger.ErrorContext(ctx, "Qualys service: Failed to %s scan %s: %v", action, ref, err)
		}
		return domain.Scan{}, err
	}

	logger.InfoContextWithFields(ctx, "Qualys service: Scan state changed", map[string]interface{}{
		"scan_ref": ref,
		"action":   action,
		"from":     previous,
		"to":       scan.Status,
	})
	return scan, nil
}

func (s *service) ListReportTemplates(ctx context.Context) ([]domain.ReportTemplate, error) {
	var list domain.ReportTemplateList
	if err := s.request(ctx, domain.CallTemplateList, connectorPort.Params{}, &list); err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to list report templates: %v", err)
		return nil, err
	}
	return mapper.ReportTemplateListWire2Domain(list)
}

func (s *service) listReports(ctx context.Context, params connectorPort.Params) ([]domain.Report, error) {
	var out domain.ReportListOutput
	if err := s.request(ctx, domain.CallReport, params, &out); err != nil {
		return nil, err
	}
	return mapper.ReportListWire2Domain(out)
}

func (s *service) ListReports(ctx context.Context) ([]domain.Report, error) {
	reports, err := s.listReports(ctx, connectorPort.Params{"action": domain.ActionList})
	if err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to list reports: %v", err)
		return nil, err
	}
	return reports, nil
}

func (s *service) GetReport(ctx context.Context, id int64) (domain.Report, error) {
	if id <= 0 {
		return domain.Report{}, invalid("report id must be positive")
	}

	key := strconv.FormatInt(id, 10)
	reports, err := s.listReports(ctx, connectorPort.Params{"action": domain.ActionList, "id": key})
	if err != nil {
		return domain.Report{}, err
	}
	if len(reports) == 0 {
		return domain.Report{}, &domain.NotFoundError{Kind: "report", Key: key}
	}
	return reports[0], nil
}

func (s *service) FetchReport(ctx context.Context, id int64) ([]byte, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	body, err := report.Download(ctx, s.conn)
	if err != nil {
		logger.WarnContext(ctx, "Qualys service: Report %d not downloaded: %v", id, err)
		return nil, err
	}
	return body, nil
}

func (s *service) StreamReport(ctx context.Context, id int64, w io.Writer) (int64, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return 0, err
	}
	n, err := report.DownloadTo(ctx, s.conn, w)
	if err != nil {
		logger.WarnContext(ctx, "Qualys service: Report %d not streamed: %v", id, err)
		return n, err
	}
	logger.InfoContext(ctx, "Qualys service: Streamed report %d (%d bytes)", id, n)
	return n, nil
}

func (s *service) ListMapReports(ctx context.Context) ([]domain.MapReport, error) {
	var list domain.MapReportList
	if err := s.request(ctx, domain.CallMapReportList, connectorPort.Params{}, &list); err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to list map reports: %v", err)
		return nil, err
	}
	return mapper.MapReportListWire2Domain(list)
}

func (s *service) LaunchMapReport(ctx context.Context, req domain.MapReportRequest) (string, error) {
	if req.Map == nil || req.Map.TargetRef() == "" {
		return "", invalid("map reference is required")
	}

	reportDomain := req.Domain
	if reportDomain == "" {
		reportDomain = domain.MapDomainNone
	}
	ipRestriction := ""
	if req.IPRestriction != nil {
		ipRestriction = req.IPRestriction.IPRestriction()
	}
	if reportDomain == domain.MapDomainNone && ipRestriction == "" {
		return "", ErrMapReportScope
	}

	templateID, err := s.resolveMapTemplate(ctx, req)
	if err != nil {
		return "", err
	}

	title := req.Title
	if title == "" {
		title = req.DefaultTitle()
	}
	outputFormat := req.OutputFormat
	if outputFormat == "" {
		outputFormat = domain.DefaultOutputFormat
	}

	params := connectorPort.Params{
		"action":        domain.ActionLaunch,
		"template_id":   strconv.FormatInt(templateID, 10),
		"report_title":  title,
		"output_format": outputFormat,
		"report_type":   domain.ReportTypeMap,
		"domain":        reportDomain,
		"report_refs":   req.ReportRefs(),
	}
	setIf(params, "ip_restriction", ipRestriction)
	if req.HideHeader != nil {
		params["hide_header"] = "0"
		if *req.HideHeader {
			params["hide_header"] = "1"
		}
	}

	var ret domain.SimpleReturn
	if err := s.request(ctx, domain.CallReport, params, &ret); err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to launch map report on %s: %v", req.Map.TargetRef(), err)
		return "", err
	}
	reportID, err := mapper.LaunchedReportID(ret)
	if err != nil {
		return "", err
	}
	if listed, ok := req.Map.(*domain.MapReport); ok {
		listed.ReportID = reportID
	}

	logger.InfoContextWithFields(ctx, "Qualys service: Map report launched", map[string]interface{}{
		"report_id":   reportID,
		"report_refs": params["report_refs"],
		"template_id": templateID,
	})
	return reportID, nil
}

// resolveMapTemplate picks the template id: explicit id, then the default
// Map template, then a title lookup with the configured title as fallback.
func (s *service) resolveMapTemplate(ctx context.Context, req domain.MapReportRequest) (int64, error) {
	if req.TemplateID > 0 {
		return req.TemplateID, nil
	}

	title := req.TemplateTitle
	if title == "" && !req.UseDefaultTemplate {
		title = s.conn.Settings().MapReportTemplate
		if title == "" {
			return 0, ErrMissingTemplate
		}
	}

	templates, err := s.ListReportTemplates(ctx)
	if err != nil {
		return 0, err
	}

	if req.UseDefaultTemplate {
		for _, t := range templates {
			if t.IsDefault && t.TemplateType == domain.ReportTypeMap {
				return t.ID, nil
			}
		}
		return 0, &domain.NotFoundError{Kind: "report template", Key: "default " + domain.ReportTypeMap}
	}

	for _, t := range templates {
		if t.Title == title {
			return t.ID, nil
		}
	}
	return 0, &domain.NotFoundError{Kind: "report template", Key: title}
}

func (s *service) AddIPs(ctx context.Context, ips []string, module domain.IPModule) error {
	if len(ips) == 0 {
		return invalid("at least one ip is required")
	}

	vm, pc := module.Flags()
	body, err := s.conn.Request(ctx, domain.CallAssetIP, connectorPort.Params{
		"action":    domain.ActionAdd,
		"ips":       strings.Join(ips, ","),
		"enable_vm": vm,
		"enable_pc": pc,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to add ips: %v", err)
		return err
	}
	return domain.CheckResponse(body)
}

func (s *service) QueryKnowledgeBase(ctx context.Context, query domain.KBQuery, fn func(domain.Vulnerability) error) error {
	if query.Empty() {
		return ErrEmptyKBQuery
	}

	emit := func(v domain.VulnXML) error {
		vuln, err := mapper.VulnerabilityWire2Domain(v)
		if err != nil {
			return err
		}
		return fn(vuln)
	}

	if query.File != nil {
		logger.InfoContext(ctx, "Qualys service: Reading knowledge base from file")
		return domain.StreamVulns(query.File, emit)
	}

	rc, err := s.conn.Stream(ctx, domain.CallKnowledgeBase, kbParams(query))
	if err != nil {
		logger.ErrorContext(ctx, "Qualys service: Failed to query knowledge base: %v", err)
		return err
	}
	defer rc.Close()

	return domain.StreamVulns(rc, emit)
}

func kbParams(query domain.KBQuery) connectorPort.Params {
	details := query.Details
	if details == "" {
		details = domain.DetailsAll
	}
	discovery := query.DiscoveryMethod
	if discovery == "" {
		discovery = domain.DiscoveryRemoteAndAuthenticated
	}

	params := connectorPort.Params{
		"action":           domain.ActionList,
		"details":          details,
		"discovery_method": discovery,
	}
	if !query.All {
		if len(query.IDs) > 0 {
			ids := make([]string, 0, len(query.IDs))
			for _, id := range query.IDs {
				ids = append(ids, strconv.FormatInt(id, 10))
			}
			params["ids"] = strings.Join(ids, ",")
		}
		if query.Range != nil {
			params["id_min"] = strconv.FormatInt(query.Range.Min, 10)
			params["id_max"] = strconv.FormatInt(query.Range.Max, 10)
		}
	}
	setIf(params, "last_modified_after", domain.FormatDatetime(query.ChangesSince))
	setIf(params, "last_modified_before", domain.FormatDatetime(query.ChangesBefore))
	if query.OnlyPatchable {
		params["is_patchable"] = "1"
	}
	if query.ShowPCIReasons {
		params["show_pci_reasons"] = "1"
	}
	return params
}
