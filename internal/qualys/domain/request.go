package domain

import (
	"io"
	"strings"
	"time"
)

// ScanFilter narrows ListScans. Empty fields are not sent.
type ScanFilter struct {
	LaunchedAfter string
	State         string
	Target        string
	Type          string
	UserLogin     string
}

// LaunchScanRequest launches a scan. Empty AssetGroups or IP are not sent.
type LaunchScanRequest struct {
	Title       string
	OptionTitle string
	ScannerName string
	AssetGroups string
	IP          string
}

// MapTarget is either a bare map reference or a listed map.
type MapTarget interface {
	TargetRef() string
	TargetName() string
}

// MapRef is a bare map reference; it doubles as its own name.
type MapRef string

func (r MapRef) TargetRef() string  { return string(r) }
func (r MapRef) TargetName() string { return string(r) }

type MapHandle struct {
	Ref  string
	Name string
}

func (h MapHandle) TargetRef() string { return h.Ref }

func (h MapHandle) TargetName() string {
	if h.Name == "" {
		return h.Ref
	}
	return h.Name
}

// IPRestriction limits a map report to a set of addresses.
type IPRestriction interface {
	IPRestriction() string
}

// RawIPs is passed to the API unchanged.
type RawIPs string

func (r RawIPs) IPRestriction() string { return string(r) }

type IPRange struct {
	Start string
	End   string
}

func (r IPRange) String() string {
	if r.End == "" || r.End == r.Start {
		return r.Start
	}
	return r.Start + "-" + r.End
}

type IPRanges []IPRange

func (rs IPRanges) IPRestriction() string {
	parts := make([]string, 0, len(rs))
	for _, r := range rs {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ",")
}

const (
	MapDomainNone       = "none"
	DefaultOutputFormat = "xml"
	ReportTypeMap       = "Map"
)

// MapReportRequest launches a report on a map result. Template resolution
// order: TemplateID, UseDefaultTemplate, TemplateTitle, then the configured
// map report template.
type MapReportRequest struct {
	Map                MapTarget
	CompareMap         MapTarget
	Domain             string
	IPRestriction      IPRestriction
	TemplateID         int64
	TemplateTitle      string
	UseDefaultTemplate bool
	Title              string
	OutputFormat       string
	HideHeader         *bool
}

// DefaultTitle is the report title used when Title is empty.
func (r MapReportRequest) DefaultTitle() string {
	title := r.Map.TargetName() + " - api generated"
	if r.CompareMap != nil {
		title = r.CompareMap.TargetName() + " vs. " + title
	}
	return title
}

// ReportRefs joins the map and comparison refs.
func (r MapReportRequest) ReportRefs() string {
	if r.CompareMap == nil {
		return r.Map.TargetRef()
	}
	return r.Map.TargetRef() + "," + r.CompareMap.TargetRef()
}

// IPModule selects what AddIPs enables the addresses for.
type IPModule string

const (
	ModuleVM   IPModule = "vm"
	ModulePC   IPModule = "pc"
	ModuleBoth IPModule = "both"
)

// Flags returns enable_vm and enable_pc. Unknown values behave as vm.
func (m IPModule) Flags() (vm, pc string) {
	switch m {
	case ModulePC:
		return "0", "1"
	case ModuleBoth:
		return "1", "1"
	default:
		return "1", "0"
	}
}

const (
	DetailsAll   = "All"
	DetailsBasic = "Basic"
	DetailsNone  = "None"

	DiscoveryRemoteAndAuthenticated = "RemoteAndAuthenticated"
)

// QIDRange is an inclusive QID interval.
type QIDRange struct {
	Min int64
	Max int64
}

// KBQuery selects knowledge base entries. File, when set, is parsed
// directly and every other field is ignored.
type KBQuery struct {
	All             bool
	IDs             []int64
	Range           *QIDRange
	ChangesSince    time.Time
	ChangesBefore   time.Time
	Details         string
	OnlyPatchable   bool
	ShowPCIReasons  bool
	DiscoveryMethod string
	File            io.Reader
}

// Empty reports whether q selects nothing.
func (q KBQuery) Empty() bool {
	return !q.All && len(q.IDs) == 0 && q.Range == nil &&
		q.ChangesSince.IsZero() && q.ChangesBefore.IsZero() && q.File == nil
}
