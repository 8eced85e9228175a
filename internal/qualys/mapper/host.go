package mapper

import (
	"strings"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
)

// HostWire2Domain maps a HOST element. A missing or unparsable
// LAST_VULN_SCAN_DATETIME means the host was never scanned.
func HostWire2Domain(h domain.HostXML) (domain.Host, error) {
	id, err := parseID("HOST/ID", h.ID)
	if err != nil {
		return domain.Host{}, err
	}

	ip := strings.TrimSpace(h.IP)
	if ip == "" {
		return domain.Host{}, &domain.MalformedResponseError{Element: "HOST/IP"}
	}

	host := domain.Host{
		DNS:            strings.TrimSpace(h.DNS),
		ID:             id,
		IP:             ip,
		NetBIOS:        strings.TrimSpace(h.NetBIOS),
		OS:             strings.TrimSpace(h.OS),
		TrackingMethod: strings.TrimSpace(h.TrackingMethod),
	}
	if lastScan, err := domain.ParseDatetime("HOST/LAST_VULN_SCAN_DATETIME", h.LastVulnScan); err == nil {
		host.LastScan = lastScan
	}
	return host, nil
}

func HostListWire2Domain(out domain.HostListOutput) ([]domain.Host, error) {
	hosts := make([]domain.Host, 0, len(out.Hosts))
	for _, h := range out.Hosts {
		host, err := HostWire2Domain(h)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, host)
	}
	return hosts, nil
}
