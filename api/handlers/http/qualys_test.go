package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwt2 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.apk-group.net/siem/backend/qualys-client/config"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
	qualysPort "gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/port"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/jwt"
	mocks "gitlab.apk-group.net/siem/backend/qualys-client/tests/mocks/qualys"
	"gorm.io/gorm"
)

const testSecret = "gateway-test-secret"

type testContainer struct {
	svc qualysPort.Service
}

func (c *testContainer) QualysService(ctx context.Context) qualysPort.Service { return c.svc }
func (c *testContainer) Config() config.Config { return config.Config{} }
func (c *testContainer) DB() *gorm.DB { return nil }
func (c *testContainer) PurgeCache(ctx context.Context) (int64, error) { return 0, nil }
func (c *testContainer) Close() error { return nil }

func testToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.CreateToken([]byte(testSecret), &jwt.UserClaims{
		RegisteredClaims: jwt2.RegisteredClaims{
			ExpiresAt: jwt2.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "soc-analyst",
	})
	require.NoError(t, err)
	return token
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doRequest(t *testing.T, svc *mocks.MockQualysService, method, target, body string) (*http.Response, apiResponse) {
	t.Helper()
	router := NewRouter(&testContainer{svc: svc}, config.ServerConfig{Secret: testSecret})

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := router.Test(req, -1)
	require.NoError(t, err)

	var decoded apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	} else {
		decoded.Data = raw
	}
	return resp, decoded
}

func TestGateway_RequiresToken(t *testing.T) {
	router := NewRouter(&testContainer{svc: new(mocks.MockQualysService)}, config.ServerConfig{Secret: testSecret})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	resp, err := router.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = router.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateway_TraceHeader(t *testing.T) {
	svc := new(mocks.MockQualysService)
	svc.On("ListReports", mock.Anything).Return([]domain.Report{}, nil)
	router := NewRouter(&testContainer{svc: svc}, config.ServerConfig{Secret: testSecret})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	req.Header.Set("X-Trace-ID", "trace-123")
	resp, err := router.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "trace-123", resp.Header.Get("X-Trace-ID"))
}

func TestGetHosts(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setupMock  func(*mocks.MockQualysService)
		wantStatus int
		wantIPs    []string
	}{
		{
			name:   "single ip",
			target: "/api/v1/hosts?ip=10.0.0.1",
			setupMock: func(m *mocks.MockQualysService) {
				m.On("GetHost", mock.Anything, "10.0.0.1").
					Return(domain.Host{ID: 1, IP: "10.0.0.1"}, nil)
			},
			wantStatus: http.StatusOK,
			wantIPs:    []string{"10.0.0.1"},
		},
		{
			name:   "range",
			target: "/api/v1/hosts?start=10.0.0.1&end=10.0.0.9",
			setupMock: func(m *mocks.MockQualysService) {
				m.On("ListHostRange", mock.Anything, "10.0.0.1", "10.0.0.9").
					Return([]domain.Host{{ID: 1, IP: "10.0.0.1"}, {ID: 2, IP: "10.0.0.5"}}, nil)
			},
			wantStatus: http.StatusOK,
			wantIPs:    []string{"10.0.0.1", "10.0.0.5"},
		},
		{
			name:       "missing parameters",
			target:     "/api/v1/hosts",
			setupMock:  func(m *mocks.MockQualysService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown host",
			target: "/api/v1/hosts?ip=10.0.0.2",
			setupMock: func(m *mocks.MockQualysService) {
				m.On("GetHost", mock.Anything, "10.0.0.2").
					Return(domain.Host{}, &domain.NotFoundError{Kind: "host", Key: "10.0.0.2"})
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockQualysService)
			tt.setupMock(svc)

			resp, body := doRequest(t, svc, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantIPs != nil {
				var hosts []struct {
					IP       string `json:"ip"`
					LastScan string `json:"last_scan"`
				}
				require.NoError(t, json.Unmarshal(body.Data, &hosts))
				ips := make([]string, 0, len(hosts))
				for _, h := range hosts {
					ips = append(ips, h.IP)
					assert.Equal(t, domain.NeverScanned, h.LastScan)
				}
				assert.Equal(t, tt.wantIPs, ips)
			} else {
				assert.False(t, body.Success)
				assert.NotEmpty(t, body.Error)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestGetStaleHosts(t *testing.T) {
	svc := new(mocks.MockQualysService)
	resp, _ := doRequest(t, svc, http.MethodGet, "/api/v1/hosts/stale?days=abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	svc.On("NotScannedSince", mock.Anything, -1).
		Return(nil, domain.ErrInvalidArgument)
	resp, _ = doRequest(t, svc, http.MethodGet, "/api/v1/hosts/stale?days=-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	svc.On("NotScannedSince", mock.Anything, 30).
		Return([]domain.Host{{ID: 3, IP: "10.0.0.3"}}, nil)
	resp, body := doRequest(t, svc, http.MethodGet, "/api/v1/hosts/stale?days=30", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body.Data), "10.0.0.3")
}

func TestUpdateAssetGroupIPs(t *testing.T) {
	t.Run("adds one by one", func(t *testing.T) {
		svc := new(mocks.MockQualysService)
		svc.On("AddAssetGroupIP", mock.Anything, int64(7), "10.0.0.1").
			Return(domain.AssetGroup{ID: 7, ScanIPs: []string{"10.0.0.1"}}, nil).Once()
		svc.On("AddAssetGroupIP", mock.Anything, int64(7), "10.0.0.2").
			Return(domain.AssetGroup{ID: 7, ScanIPs: []string{"10.0.0.1", "10.0.0.2"}}, nil).Once()

		resp, body := doRequest(t, svc, http.MethodPost, "/api/v1/asset-groups/7/ips", `{"ips":["10.0.0.1","10.0.0.2"]}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body.Data), `"scan_ips":["10.0.0.1","10.0.0.2"]`)
		svc.AssertExpectations(t)
	})

	t.Run("replace", func(t *testing.T) {
		svc := new(mocks.MockQualysService)
		svc.On("SetAssetGroupIPs", mock.Anything, int64(7), []string{"10.0.0.9"}).
			Return(domain.AssetGroup{ID: 7, ScanIPs: []string{"10.0.0.9"}}, nil).Once()

		resp, _ := doRequest(t, svc, http.MethodPost, "/api/v1/asset-groups/7/ips", `{"ips":["10.0.0.9"],"replace":true}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("bad id", func(t *testing.T) {
		resp, _ := doRequest(t, new(mocks.MockQualysService), http.MethodPost, "/api/v1/asset-groups/abc/ips", `{"ips":["10.0.0.9"]}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty ips", func(t *testing.T) {
		resp, _ := doRequest(t, new(mocks.MockQualysService), http.MethodPost, "/api/v1/asset-groups/7/ips", `{"ips":[]}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestControlScan(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setupMock  func(*mocks.MockQualysService)
		wantStatus int
	}{
		{
			name:   "cancel running",
			target: "/api/v1/scans/cancel?ref=scan/1",
			setupMock: func(m *mocks.MockQualysService) {
				m.On("CancelScan", mock.Anything, "scan/1").
					Return(domain.Scan{Ref: "scan/1", Status: domain.ScanCancelled}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "pause finished",
			target: "/api/v1/scans/pause?ref=scan/1",
			setupMock: func(m *mocks.MockQualysService) {
				m.On("PauseScan", mock.Anything, "scan/1").
					Return(domain.Scan{}, &domain.InvalidStateError{Ref: "scan/1", Current: domain.ScanFinished, Attempted: "pause"})
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "resume api error",
			target: "/api/v1/scans/resume?ref=scan/1",
			setupMock: func(m *mocks.MockQualysService) {
				m.On("ResumeScan", mock.Anything, "scan/1").
					Return(domain.Scan{}, &domain.APIError{Code: "1905", Message: "denied"})
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "missing ref",
			target:     "/api/v1/scans/cancel",
			setupMock:  func(m *mocks.MockQualysService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockQualysService)
			tt.setupMock(svc)

			resp, _ := doRequest(t, svc, http.MethodPost, tt.target, "")

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			svc.AssertExpectations(t)
		})
	}
}

func TestLaunchScan(t *testing.T) {
	svc := new(mocks.MockQualysService)
	svc.On("LaunchScan", mock.Anything, domain.LaunchScanRequest{
		Title:       "weekly",
		OptionTitle: "Initial Options",
		IP:          "10.0.0.1",
	}).Return(domain.Scan{Ref: "scan/777", Status: domain.ScanQueued}, nil)

	resp, body := doRequest(t, svc, http.MethodPost, "/api/v1/scans",
		`{"title":"weekly","option_title":"Initial Options","ip":"10.0.0.1"}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, string(body.Data), `"ref":"scan/777"`)
}

func TestListScans_Filter(t *testing.T) {
	svc := new(mocks.MockQualysService)
	svc.On("ListScans", mock.Anything, domain.ScanFilter{State: "Running", UserLogin: "apk_ab"}).
		Return([]domain.Scan{{Ref: "scan/1"}}, nil)

	resp, body := doRequest(t, svc, http.MethodGet, "/api/v1/scans?state=Running&user_login=apk_ab", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body.Data), `"target":[]`)
	svc.AssertExpectations(t)
}

func TestDownloadReport(t *testing.T) {
	t.Run("not ready", func(t *testing.T) {
		svc := new(mocks.MockQualysService)
		svc.On("FetchReport", mock.Anything, int64(4243)).
			Return(nil, &domain.NotReadyError{ID: 4243, Status: domain.ReportRunning})

		resp, _ := doRequest(t, svc, http.MethodGet, "/api/v1/reports/4243/download", "")
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("finished", func(t *testing.T) {
		svc := new(mocks.MockQualysService)
		svc.On("FetchReport", mock.Anything, int64(4242)).
			Return([]byte("<REPORT/>"), nil)

		resp, body := doRequest(t, svc, http.MethodGet, "/api/v1/reports/4242/download", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "<REPORT/>", string(body.Data))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "report-4242")
	})
}

func TestUpstreamFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "transport", err: &domain.TransportError{Call: "report_template_list.php", StatusCode: 500, Err: errors.New("boom")}},
		{name: "malformed", err: &domain.MalformedResponseError{Element: "REPORT_TEMPLATE"}},
		{name: "api", err: &domain.APIError{Code: "999", Message: "internal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockQualysService)
			svc.On("ListReportTemplates", mock.Anything).Return(nil, tt.err)

			resp, body := doRequest(t, svc, http.MethodGet, "/api/v1/report-templates", "")
			assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
			assert.Equal(t, tt.err.Error(), body.Error)
		})
	}
}

func TestLaunchMapReport(t *testing.T) {
	t.Run("ranges", func(t *testing.T) {
		svc := new(mocks.MockQualysService)
		svc.On("LaunchMapReport", mock.Anything, mock.MatchedBy(func(req domain.MapReportRequest) bool {
			return req.ReportRefs() == "map/1,map/0" &&
				req.IPRestriction.IPRestriction() == "10.0.0.1-10.0.0.9,10.0.1.1" &&
				req.DefaultTitle() == "map/0 vs. Office - api generated"
		})).Return("5150", nil)

		resp, body := doRequest(t, svc, http.MethodPost, "/api/v1/map-reports",
			`{"map_ref":"map/1","map_title":"Office","compare_ref":"map/0","ip_ranges":[{"start":"10.0.0.1","end":"10.0.0.9"},{"start":"10.0.1.1"}]}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Contains(t, string(body.Data), `"report_id":"5150"`)
	})

	t.Run("scope", func(t *testing.T) {
		svc := new(mocks.MockQualysService)
		svc.On("LaunchMapReport", mock.Anything, mock.Anything).Return("", domain.ErrMapReportScope)

		resp, _ := doRequest(t, svc, http.MethodPost, "/api/v1/map-reports", `{"map_ref":"map/1"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing map", func(t *testing.T) {
		resp, _ := doRequest(t, new(mocks.MockQualysService), http.MethodPost, "/api/v1/map-reports", `{"ips":"10.0.0.1"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAddIPs(t *testing.T) {
	svc := new(mocks.MockQualysService)
	svc.On("AddIPs", mock.Anything, []string{"10.0.0.1"}, domain.ModuleBoth).Return(nil)

	resp, body := doRequest(t, svc, http.MethodPost, "/api/v1/ips", `{"ips":["10.0.0.1"],"module":"both"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)

	resp, _ = doRequest(t, svc, http.MethodPost, "/api/v1/ips", `{"ips":["10.0.0.1"],"module":"xx"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	svc.AssertNumberOfCalls(t, "AddIPs", 1)
}
