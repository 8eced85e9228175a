package domain

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/connector/port"
)

const (
	ReportFinished  = "Finished"
	ReportRunning   = "Running"
	ReportError     = "Error"
	ReportCancelled = "Cancelled"
	ReportQueued    = "Queued"
	ReportPaused    = "Paused"
	ReportLoading   = "Loading"
)

type Report struct {
	ExpirationDatetime time.Time
	LaunchDatetime     time.Time
	ID                 int64
	OutputFormat       string
	Size               string
	Status             string
	Type               string
	UserLogin          string
	Title              string
}

func (r Report) String() string {
	return fmt.Sprintf("qualys_id: %d, title: %s", r.ID, r.Title)
}

func (r Report) Ready() bool {
	return r.Status == ReportFinished
}

// Download returns the report body verbatim. A report that is not Finished
// yields a *NotReadyError without any network call.
func (r Report) Download(ctx context.Context, conn port.Connector) ([]byte, error) {
	if !r.Ready() {
		return nil, &NotReadyError{ID: r.ID, Status: r.Status}
	}

	body, err := conn.Request(ctx, CallReport, r.fetchParams())
	if err != nil {
		return nil, err
	}
	if apiErr, ok := IsErrorEnvelope(body); ok {
		return nil, apiErr
	}
	return body, nil
}

// DownloadTo streams the report body into w and returns the bytes written.
func (r Report) DownloadTo(ctx context.Context, conn port.Connector, w io.Writer) (int64, error) {
	if !r.Ready() {
		return 0, &NotReadyError{ID: r.ID, Status: r.Status}
	}

	rc, err := conn.Stream(ctx, CallReport, r.fetchParams())
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	return io.Copy(w, rc)
}

func (r Report) fetchParams() port.Params {
	return port.Params{"action": ActionFetch, "id": strconv.FormatInt(r.ID, 10)}
}

type ReportTemplate struct {
	IsGlobal     bool
	IsDefault    bool
	ID           int64
	LastUpdate   time.Time
	TemplateType string
	Title        string
	Type         string
	User         string
}

func (t ReportTemplate) String() string {
	return fmt.Sprintf("qualys_id: %d, title: %s", t.ID, t.Title)
}
