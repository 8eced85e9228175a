package domain

import (
	"context"
	"fmt"
	"time"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/connector/port"
)

const (
	ScanQueued    = "Queued"
	ScanLoading   = "Loading"
	ScanRunning   = "Running"
	ScanPaused    = "Paused"
	ScanFinished  = "Finished"
	ScanError     = "Error"
	ScanCancelled = "Cancelled"
	// ScanCanceled is the spelling the scan API itself uses.
	ScanCanceled = "Canceled"
)

type Scan struct {
	AssetGroups    []string
	Duration       string
	LaunchDatetime time.Time
	OptionProfile  string
	Processed      int
	Ref            string
	Status         string
	Target         []string
	Title          string
	Type           string
	UserLogin      string
}

func (s Scan) String() string {
	return fmt.Sprintf("qualys_ref: %s, title: %s, option_profile: %s", s.Ref, s.Title, s.OptionProfile)
}

func (s Scan) CanCancel() bool {
	switch s.Status {
	case ScanFinished, ScanCancelled, ScanCanceled, ScanError:
		return false
	}
	return true
}

func (s Scan) CanPause() bool  { return s.Status == ScanRunning }
func (s Scan) CanResume() bool { return s.Status == ScanPaused }

func (s *Scan) Cancel(ctx context.Context, conn port.Connector) error {
	return s.transition(ctx, conn, ActionCancel, s.CanCancel())
}

func (s *Scan) Pause(ctx context.Context, conn port.Connector) error {
	return s.transition(ctx, conn, ActionPause, s.CanPause())
}

func (s *Scan) Resume(ctx context.Context, conn port.Connector) error {
	return s.transition(ctx, conn, ActionResume, s.CanResume())
}

// transition issues action and then takes Status from the server. Status is
// left untouched on any failure.
func (s *Scan) transition(ctx context.Context, conn port.Connector, action string, allowed bool) error {
	if !allowed {
		return &InvalidStateError{Ref: s.Ref, Current: s.Status, Attempted: action}
	}

	body, err := conn.Request(ctx, CallScan, port.Params{"action": action, "scan_ref": s.Ref})
	if err != nil {
		return err
	}
	if err := CheckResponse(body); err != nil {
		return err
	}
	return s.Refresh(ctx, conn)
}

// Refresh overwrites Status with the server's current state of the scan.
func (s *Scan) Refresh(ctx context.Context, conn port.Connector) error {
	body, err := conn.Request(ctx, CallScan, port.Params{
		"action":      ActionList,
		"scan_ref":    s.Ref,
		"show_status": "1",
	})
	if err != nil {
		return err
	}

	var out ScanListOutput
	if err := Decode(body, &out); err != nil {
		return err
	}
	if len(out.Scans) == 0 {
		return &NotFoundError{Kind: "scan", Key: s.Ref}
	}
	if out.Scans[0].State == "" {
		return &MalformedResponseError{Element: "SCAN/STATUS/STATE"}
	}
	s.Status = out.Scans[0].State
	return nil
}
