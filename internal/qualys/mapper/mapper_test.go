package mapper_test

import (
	"encoding/xml"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/mapper"
	"gitlab.apk-group.net/siem/backend/qualys-client/tests/fixtures/responses"
)

func decode(t *testing.T, body string, v interface{}) {
	t.Helper()
	require.NoError(t, domain.Decode([]byte(body), v))
}

func TestHostListWire2Domain(t *testing.T) {
	var out domain.HostListOutput
	decode(t, responses.HostList, &out)

	hosts, err := mapper.HostListWire2Domain(out)
	require.NoError(t, err)
	require.Len(t, hosts, 2)

	assert.Equal(t, "ip: 127.0.0.1, qualys_id: 12345678, dns: host.example.com", hosts[0].String())
	assert.Equal(t, time.Date(2018, 10, 22, 0, 9, 9, 0, time.UTC), hosts[0].LastScan)
	assert.Equal(t, "Windows 2012", hosts[0].OS)
	assert.Equal(t, "HOST", hosts[0].NetBIOS)
	assert.Equal(t, "IP", hosts[0].TrackingMethod)

	assert.True(t, hosts[1].NeverScanned())
	assert.Equal(t, "never", hosts[1].LastScanString())
}

func TestHostWire2Domain_LastScan(t *testing.T) {
	tests := []struct {
		name      string
		lastScan  string
		wantNever bool
		want      time.Time
	}{
		{name: "well formed", lastScan: "2018-10-22T00:09:09Z", want: time.Date(2018, 10, 22, 0, 9, 9, 0, time.UTC)},
		{name: "space separated", lastScan: "2019-01-02 03:04:05", want: time.Date(2019, 1, 2, 3, 4, 5, 0, time.UTC)},
		{name: "missing", lastScan: "", wantNever: true},
		{name: "date only", lastScan: "2018-10-22", wantNever: true},
		{name: "garbage", lastScan: "not a date", wantNever: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, err := mapper.HostWire2Domain(domain.HostXML{ID: "1", IP: "127.0.0.1", LastVulnScan: tt.lastScan})
			require.NoError(t, err)

			assert.Equal(t, tt.wantNever, host.NeverScanned())
			if !tt.wantNever {
				assert.Equal(t, tt.want, host.LastScan)
			}
		})
	}
}

func TestHostWire2Domain_Malformed(t *testing.T) {
	var out domain.HostListOutput
	decode(t, responses.HostListBadID, &out)

	_, err := mapper.HostListWire2Domain(out)
	var malformed *domain.MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "HOST/ID", malformed.Element)

	_, err = mapper.HostWire2Domain(domain.HostXML{ID: "1"})
	assert.True(t, errors.As(err, &malformed))
}

func TestAssetGroupListWire2Domain(t *testing.T) {
	var list domain.AssetGroupList
	decode(t, responses.AssetGroupList, &list)

	groups, err := mapper.AssetGroupListWire2Domain(list)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	servers := groups[0]
	assert.Equal(t, int64(1001), servers.ID)
	assert.Equal(t, "Servers", servers.Title)
	assert.Equal(t, "High", servers.BusinessImpact)
	assert.Equal(t, "2018-10-22T00:09:09Z", servers.LastUpdate)
	assert.Equal(t, []string{"127.0.0.1", "127.0.0.5-127.0.0.9", "127.0.0.2"}, servers.ScanIPs)
	assert.Equal(t, []string{"host.example.com"}, servers.ScanDNS)
	assert.Equal(t, []string{"appliance_1", "appliance_2"}, servers.ScannerAppliances)

	empty := groups[1]
	assert.Equal(t, "Empty", empty.Title)
	assert.Equal(t, "Low", empty.BusinessImpact)
	assert.NotNil(t, empty.ScanIPs)
	assert.NotNil(t, empty.ScanDNS)
	assert.NotNil(t, empty.ScannerAppliances)
	assert.Empty(t, empty.ScanIPs)
	assert.Empty(t, empty.ScanDNS)
	assert.Empty(t, empty.ScannerAppliances)
}

func TestAssetGroupListWire2Domain_Filtered(t *testing.T) {
	var list domain.AssetGroupList
	decode(t, responses.AssetGroupListFiltered, &list)

	groups, err := mapper.AssetGroupListWire2Domain(list)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"10.0.0.1"}, groups[0].ScanIPs)
	assert.Equal(t, []string{}, groups[0].ScanDNS)
}

func TestScanListWire2Domain(t *testing.T) {
	var out domain.ScanListOutput
	decode(t, responses.ScanList, &out)

	scans, err := mapper.ScanListWire2Domain(out)
	require.NoError(t, err)
	require.Len(t, scans, 2)

	first := scans[0]
	assert.Equal(t, "scan/1540162149.12345", first.Ref)
	assert.Equal(t, "Running", first.Status)
	assert.Equal(t, []string{"Servers", "DMZ"}, first.AssetGroups)
	assert.Equal(t, []string{"127.0.0.1", "127.0.0.5-127.0.0.9"}, first.Target)
	assert.Equal(t, "Initial Options", first.OptionProfile)
	assert.Equal(t, 1, first.Processed)
	assert.Equal(t, time.Date(2018, 10, 21, 22, 49, 9, 0, time.UTC), first.LaunchDatetime)

	second := scans[1]
	assert.Equal(t, []string{}, second.AssetGroups)
	assert.Equal(t, "", second.OptionProfile)
	assert.Equal(t, "Finished", second.Status)
}

func TestScanWire2Domain_BadLaunchDate(t *testing.T) {
	var out domain.ScanListOutput
	decode(t, responses.ScanListBadDate, &out)

	_, err := mapper.ScanListWire2Domain(out)
	var malformed *domain.MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "SCAN/LAUNCH_DATETIME", malformed.Element)
}

func TestScanDomain2Wire_RoundTrip(t *testing.T) {
	var out domain.ScanListOutput
	decode(t, responses.ScanList, &out)
	scans, err := mapper.ScanListWire2Domain(out)
	require.NoError(t, err)

	rebuilt := domain.ScanListOutput{}
	for _, s := range scans {
		rebuilt.Scans = append(rebuilt.Scans, mapper.ScanDomain2Wire(s))
	}
	body, err := xml.Marshal(rebuilt)
	require.NoError(t, err)

	var again domain.ScanListOutput
	decode(t, string(body), &again)
	roundTripped, err := mapper.ScanListWire2Domain(again)
	require.NoError(t, err)

	assert.Equal(t, scans, roundTripped)
}

func TestLaunchedScanRef(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "keyed", body: responses.LaunchScan, want: "scan/1540162149.12345"},
		{name: "second item", body: responses.LaunchScanUnkeyed, want: "scan/1540162149.12345"},
		{name: "no items", body: responses.SimpleSuccess, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ret domain.SimpleReturn
			decode(t, tt.body, &ret)

			ref, err := mapper.LaunchedScanRef(ret)
			if tt.wantErr {
				var malformed *domain.MalformedResponseError
				assert.True(t, errors.As(err, &malformed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref)
		})
	}
}

func TestReportListWire2Domain(t *testing.T) {
	var out domain.ReportListOutput
	decode(t, responses.ReportList, &out)

	reports, err := mapper.ReportListWire2Domain(out)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, int64(4242), reports[0].ID)
	assert.Equal(t, "Finished", reports[0].Status)
	assert.Equal(t, "PDF", reports[0].OutputFormat)
	assert.Equal(t, "1.2 MB", reports[0].Size)
	assert.Equal(t, time.Date(2018, 10, 29, 0, 9, 9, 0, time.UTC), reports[0].ExpirationDatetime)

	assert.Equal(t, "Running", reports[1].Status)
	assert.True(t, reports[1].ExpirationDatetime.IsZero())
}

func TestReportWire2Domain_BadDate(t *testing.T) {
	_, err := mapper.ReportWire2Domain(domain.ReportXML{ID: "1", LaunchDatetime: "2018-13-45"})

	var malformed *domain.MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "REPORT/LAUNCH_DATETIME", malformed.Element)
}

func TestReportTemplateListWire2Domain(t *testing.T) {
	var list domain.ReportTemplateList
	decode(t, responses.ReportTemplateList, &list)

	templates, err := mapper.ReportTemplateListWire2Domain(list)
	require.NoError(t, err)
	require.Len(t, templates, 3)

	assert.Equal(t, int64(91), templates[0].ID)
	assert.True(t, templates[0].IsGlobal)
	assert.True(t, templates[0].IsDefault)
	assert.Equal(t, "apiuser", templates[0].User)
	assert.Equal(t, "Map", templates[1].TemplateType)
	assert.False(t, templates[1].IsDefault)
	assert.False(t, templates[2].IsGlobal)
}

func TestMapReportListWire2Domain(t *testing.T) {
	var list domain.MapReportList
	decode(t, responses.MapReportList, &list)

	maps, err := mapper.MapReportListWire2Domain(list)
	require.NoError(t, err)
	require.Len(t, maps, 2)

	assert.Equal(t, "map/1540162149.100", maps[0].Ref)
	assert.Equal(t, "Office map", maps[0].Title)
	assert.Equal(t, "example.com", maps[0].Domain)
	assert.Equal(t, "Finished", maps[0].Status)
	assert.Equal(t, "Office map", maps[0].Target().TargetName())
	assert.Equal(t, "5150", maps[0].ReportID)
	assert.Empty(t, maps[1].ReportID)
}

func TestVulnerabilityWire2Domain(t *testing.T) {
	vuln, err := mapper.VulnerabilityWire2Domain(domain.VulnXML{
		QID:       "90883",
		Severity:  "3",
		Patchable: "1",
		Published: "2012-03-01T10:00:00Z",
		CVEs:      []string{" CVE-2005-1794 "},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(90883), vuln.QID)
	assert.Equal(t, 3, vuln.Severity)
	assert.True(t, vuln.Patchable)
	assert.Equal(t, []string{"CVE-2005-1794"}, vuln.CVEs)
	assert.True(t, vuln.LastModified.IsZero())

	_, err = mapper.VulnerabilityWire2Domain(domain.VulnXML{QID: "x"})
	var malformed *domain.MalformedResponseError
	assert.True(t, errors.As(err, &malformed))
}
