package mapper

import (
	"strconv"
	"strings"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
)

func ScanWire2Domain(s domain.ScanXML) (domain.Scan, error) {
	ref := strings.TrimSpace(s.Ref)
	if ref == "" {
		return domain.Scan{}, &domain.MalformedResponseError{Element: "SCAN/REF"}
	}

	launched, err := domain.ParseDatetime("SCAN/LAUNCH_DATETIME", s.LaunchDatetime)
	if err != nil {
		return domain.Scan{}, err
	}

	processed := 0
	if p := strings.TrimSpace(s.Processed); p != "" {
		if processed, err = strconv.Atoi(p); err != nil {
			return domain.Scan{}, &domain.MalformedResponseError{Element: "SCAN/PROCESSED", Err: err}
		}
	}

	return domain.Scan{
		AssetGroups:    trimAll(s.AssetGroups),
		Duration:       strings.TrimSpace(s.Duration),
		LaunchDatetime: launched,
		OptionProfile:  strings.TrimSpace(s.OptionProfile),
		Processed:      processed,
		Ref:            ref,
		Status:         strings.TrimSpace(s.State),
		Target:         splitTarget(s.Target),
		Title:          strings.TrimSpace(s.Title),
		Type:           strings.TrimSpace(s.Type),
		UserLogin:      strings.TrimSpace(s.UserLogin),
	}, nil
}

func ScanListWire2Domain(out domain.ScanListOutput) ([]domain.Scan, error) {
	scans := make([]domain.Scan, 0, len(out.Scans))
	for _, s := range out.Scans {
		scan, err := ScanWire2Domain(s)
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}
	return scans, nil
}

// ScanDomain2Wire renders s as the SCAN element of a list response.
func ScanDomain2Wire(s domain.Scan) domain.ScanXML {
	return domain.ScanXML{
		Ref:            s.Ref,
		Type:           s.Type,
		Title:          s.Title,
		UserLogin:      s.UserLogin,
		LaunchDatetime: domain.FormatDatetime(s.LaunchDatetime),
		Duration:       s.Duration,
		Processed:      strconv.Itoa(s.Processed),
		State:          s.Status,
		Target:         joinTarget(s.Target),
		AssetGroups:    s.AssetGroups,
		OptionProfile:  s.OptionProfile,
	}
}

// LaunchedScanRef reads the scan reference from a launch answer: the
// REFERENCE item, else the second item.
func LaunchedScanRef(ret domain.SimpleReturn) (string, error) {
	if ref, ok := ret.Item("REFERENCE"); ok && strings.TrimSpace(ref) != "" {
		return strings.TrimSpace(ref), nil
	}
	if items := ret.Response.Items; len(items) > 1 && strings.TrimSpace(items[1].Value) != "" {
		return strings.TrimSpace(items[1].Value), nil
	}
	return "", &domain.MalformedResponseError{Element: "SIMPLE_RETURN/ITEM_LIST"}
}

// LaunchedReportID reads the ID item of a report launch answer.
func LaunchedReportID(ret domain.SimpleReturn) (string, error) {
	if id, ok := ret.Item("ID"); ok && strings.TrimSpace(id) != "" {
		return strings.TrimSpace(id), nil
	}
	return "", &domain.MalformedResponseError{Element: "SIMPLE_RETURN/ITEM_LIST/ID"}
}
