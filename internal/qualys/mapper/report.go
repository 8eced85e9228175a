package mapper

import (
	"strings"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
)

func ReportWire2Domain(r domain.ReportXML) (domain.Report, error) {
	id, err := parseID("REPORT/ID", r.ID)
	if err != nil {
		return domain.Report{}, err
	}
	launched, err := domain.ParseDatetime("REPORT/LAUNCH_DATETIME", r.LaunchDatetime)
	if err != nil {
		return domain.Report{}, err
	}
	expires, err := domain.ParseOptionalDatetime("REPORT/EXPIRATION_DATETIME", r.ExpirationDatetime)
	if err != nil {
		return domain.Report{}, err
	}

	return domain.Report{
		ExpirationDatetime: expires,
		LaunchDatetime:     launched,
		ID:                 id,
		OutputFormat:       strings.TrimSpace(r.OutputFormat),
		Size:               strings.TrimSpace(r.Size),
		Status:             r.Status.Value(),
		Type:               strings.TrimSpace(r.Type),
		UserLogin:          strings.TrimSpace(r.UserLogin),
		Title:              strings.TrimSpace(r.Title),
	}, nil
}

func ReportListWire2Domain(out domain.ReportListOutput) ([]domain.Report, error) {
	reports := make([]domain.Report, 0, len(out.Reports))
	for _, r := range out.Reports {
		report, err := ReportWire2Domain(r)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func ReportTemplateWire2Domain(t domain.ReportTemplateXML) (domain.ReportTemplate, error) {
	id, err := parseID("REPORT_TEMPLATE/ID", t.ID)
	if err != nil {
		return domain.ReportTemplate{}, err
	}
	updated, err := domain.ParseDatetime("REPORT_TEMPLATE/LAST_UPDATE", t.LastUpdate)
	if err != nil {
		return domain.ReportTemplate{}, err
	}

	return domain.ReportTemplate{
		IsGlobal:     parseFlag(t.Global),
		IsDefault:    parseFlag(t.Default),
		ID:           id,
		LastUpdate:   updated,
		TemplateType: strings.TrimSpace(t.TemplateType),
		Title:        strings.TrimSpace(t.Title),
		Type:         strings.TrimSpace(t.Type),
		User:         strings.TrimSpace(t.User),
	}, nil
}

func ReportTemplateListWire2Domain(list domain.ReportTemplateList) ([]domain.ReportTemplate, error) {
	templates := make([]domain.ReportTemplate, 0, len(list.Templates))
	for _, t := range list.Templates {
		template, err := ReportTemplateWire2Domain(t)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, nil
}

func MapReportWire2Domain(m domain.MapReportXML) (domain.MapReport, error) {
	ref := strings.TrimSpace(m.Ref)
	if ref == "" {
		return domain.MapReport{}, &domain.MalformedResponseError{Element: "MAP_REPORT/@ref"}
	}
	launched, err := domain.ParseOptionalDatetime("MAP_REPORT/@date", m.Date)
	if err != nil {
		return domain.MapReport{}, err
	}

	return domain.MapReport{
		Ref:            ref,
		Title:          strings.TrimSpace(m.Title),
		Domain:         strings.TrimSpace(m.Domain),
		Status:         strings.TrimSpace(m.Status),
		LaunchDatetime: launched,
		ReportID:       strings.TrimSpace(m.ReportID),
	}, nil
}

func MapReportListWire2Domain(list domain.MapReportList) ([]domain.MapReport, error) {
	maps := make([]domain.MapReport, 0, len(list.Maps))
	for _, m := range list.Maps {
		mr, err := MapReportWire2Domain(m)
		if err != nil {
			return nil, err
		}
		maps = append(maps, mr)
	}
	return maps, nil
}
