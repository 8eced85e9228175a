package domain

import "time"

// MapReport is a network discovery map result. ReportID is set once a
// report has been launched against it: read from the map list, or filled in
// when a *MapReport is the Map of a successful launch.
type MapReport struct {
	Ref            string
	Title          string
	Domain         string
	Status         string
	LaunchDatetime time.Time
	ReportID       string
}

// Target lets a listed map be passed wherever a MapTarget is accepted.
func (m MapReport) Target() MapTarget {
	return MapHandle{Ref: m.Ref, Name: m.Title}
}

func (m MapReport) TargetRef() string { return m.Ref }

func (m MapReport) TargetName() string {
	if m.Title == "" {
		return m.Ref
	}
	return m.Title
}

// Vulnerability is one knowledge base entry.
type Vulnerability struct {
	QID          int64
	VulnType     string
	Severity     int
	Title        string
	Category     string
	Published    time.Time
	LastModified time.Time
	Patchable    bool
	CVEs         []string
}
