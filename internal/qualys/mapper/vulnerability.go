package mapper

import (
	"strconv"
	"strings"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
)

func VulnerabilityWire2Domain(v domain.VulnXML) (domain.Vulnerability, error) {
	qid, err := parseID("VULN/QID", v.QID)
	if err != nil {
		return domain.Vulnerability{}, err
	}

	severity := 0
	if s := strings.TrimSpace(v.Severity); s != "" {
		if severity, err = strconv.Atoi(s); err != nil {
			return domain.Vulnerability{}, &domain.MalformedResponseError{Element: "VULN/SEVERITY_LEVEL", Err: err}
		}
	}

	published, err := domain.ParseOptionalDatetime("VULN/PUBLISHED_DATETIME", v.Published)
	if err != nil {
		return domain.Vulnerability{}, err
	}
	modified, err := domain.ParseOptionalDatetime("VULN/LAST_SERVICE_MODIFICATION_DATETIME", v.LastModified)
	if err != nil {
		return domain.Vulnerability{}, err
	}

	return domain.Vulnerability{
		QID:          qid,
		VulnType:     strings.TrimSpace(v.VulnType),
		Severity:     severity,
		Title:        strings.TrimSpace(v.Title),
		Category:     strings.TrimSpace(v.Category),
		Published:    published,
		LastModified: modified,
		Patchable:    parseFlag(v.Patchable),
		CVEs:         trimAll(v.CVEs),
	}, nil
}
