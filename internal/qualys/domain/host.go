package domain

import (
	"fmt"
	"time"
)

// Host is a scanned asset. A zero LastScan means the host was never scanned.
type Host struct {
	DNS            string
	ID             int64
	IP             string
	LastScan       time.Time
	NetBIOS        string
	OS             string
	TrackingMethod string
}

func (h Host) String() string {
	return fmt.Sprintf("ip: %s, qualys_id: %d, dns: %s", h.IP, h.ID, h.DNS)
}

func (h Host) NeverScanned() bool {
	return h.LastScan.IsZero()
}

// LastScanString renders LastScan, or "never".
func (h Host) LastScanString() string {
	if h.NeverScanned() {
		return NeverScanned
	}
	return FormatDatetime(h.LastScan)
}

// ScannedBefore reports whether the host is stale at cutoff. Never-scanned
// hosts are always stale.
func (h Host) ScannedBefore(cutoff time.Time) bool {
	return h.NeverScanned() || !h.LastScan.After(cutoff)
}
