package domain

import (
	"encoding/xml"
	"strings"
)

// SimpleReturn is the v2 envelope returned by mutating calls and by errors.
type SimpleReturn struct {
	XMLName  xml.Name `xml:"SIMPLE_RETURN"`
	Response struct {
		Datetime string    `xml:"DATETIME"`
		Code     string    `xml:"CODE"`
		Text     string    `xml:"TEXT"`
		Items    []ItemXML `xml:"ITEM_LIST>ITEM"`
	} `xml:"RESPONSE"`
}

type ItemXML struct {
	Key   string `xml:"KEY"`
	Value string `xml:"VALUE"`
}

// Item returns the value stored under key.
func (s *SimpleReturn) Item(key string) (string, bool) {
	for _, item := range s.Response.Items {
		if item.Key == key {
			return item.Value, true
		}
	}
	return "", false
}

// GenericReturn is the v1 envelope.
type GenericReturn struct {
	XMLName xml.Name `xml:"GENERIC_RETURN"`
	Return  struct {
		Status string `xml:"status,attr"`
		Number string `xml:"number,attr"`
		Text   string `xml:",chardata"`
	} `xml:"RETURN"`
}

type HostListOutput struct {
	XMLName xml.Name  `xml:"HOST_LIST_OUTPUT"`
	Hosts   []HostXML `xml:"RESPONSE>HOST_LIST>HOST"`
}

type HostXML struct {
	ID             string `xml:"ID"`
	IP             string `xml:"IP"`
	TrackingMethod string `xml:"TRACKING_METHOD"`
	DNS            string `xml:"DNS"`
	NetBIOS        string `xml:"NETBIOS"`
	OS             string `xml:"OS"`
	LastVulnScan   string `xml:"LAST_VULN_SCAN_DATETIME"`
}

type ScanListOutput struct {
	XMLName xml.Name  `xml:"SCAN_LIST_OUTPUT"`
	Scans   []ScanXML `xml:"RESPONSE>SCAN_LIST>SCAN"`
}

type ScanXML struct {
	Ref            string   `xml:"REF"`
	Type           string   `xml:"TYPE"`
	Title          string   `xml:"TITLE"`
	UserLogin      string   `xml:"USER_LOGIN"`
	LaunchDatetime string   `xml:"LAUNCH_DATETIME"`
	Duration       string   `xml:"DURATION"`
	Processed      string   `xml:"PROCESSED"`
	State          string   `xml:"STATUS>STATE"`
	Target         string   `xml:"TARGET"`
	AssetGroups    []string `xml:"ASSET_GROUP_TITLE_LIST>ASSET_GROUP_TITLE"`
	OptionProfile  string   `xml:"OPTION_PROFILE>TITLE,omitempty"`
}

// AssetGroupList is the v1 asset_group_list.php document. Filtered calls
// nest the groups under RESPONSE.
type AssetGroupList struct {
	XMLName        xml.Name        `xml:"ASSET_GROUP_LIST"`
	Groups         []AssetGroupXML `xml:"ASSET_GROUP"`
	ResponseGroups []AssetGroupXML `xml:"RESPONSE>ASSET_GROUP"`
}

// All returns the groups in document order regardless of nesting.
func (l *AssetGroupList) All() []AssetGroupXML {
	return append(append([]AssetGroupXML{}, l.Groups...), l.ResponseGroups...)
}

type AssetGroupXML struct {
	ID                string      `xml:"ID"`
	Title             string      `xml:"TITLE"`
	BusinessImpact    string      `xml:"BUSINESS_IMPACT"`
	LastUpdate        string      `xml:"LAST_UPDATE"`
	ScanIPs           *ScanIPsXML `xml:"SCANIPS"`
	ScanDNS           []string    `xml:"SCANDNS>DNS"`
	ScannerAppliances []string    `xml:"SCANNER_APPLIANCES>SCANNER_APPLIANCE>SCANNER_APPLIANCE_NAME"`
}

// ScanIPsXML keeps IP and IP_RANGE children in document order.
type ScanIPsXML struct {
	Entries []ScanIPEntryXML `xml:",any"`
}

type ScanIPEntryXML struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type ReportListOutput struct {
	XMLName xml.Name    `xml:"REPORT_LIST_OUTPUT"`
	Reports []ReportXML `xml:"RESPONSE>REPORT_LIST>REPORT"`
}

type ReportXML struct {
	ID                 string          `xml:"ID"`
	Title              string          `xml:"TITLE"`
	Type               string          `xml:"TYPE"`
	UserLogin          string          `xml:"USER_LOGIN"`
	LaunchDatetime     string          `xml:"LAUNCH_DATETIME"`
	OutputFormat       string          `xml:"OUTPUT_FORMAT"`
	Size               string          `xml:"SIZE"`
	Status             ReportStatusXML `xml:"STATUS"`
	ExpirationDatetime string          `xml:"EXPIRATION_DATETIME"`
}

// ReportStatusXML accepts both <STATUS><STATE>x</STATE></STATUS> and <STATUS>x</STATUS>.
type ReportStatusXML struct {
	State string `xml:"STATE"`
	Text  string `xml:",chardata"`
}

func (s ReportStatusXML) Value() string {
	if s.State != "" {
		return s.State
	}
	return strings.TrimSpace(s.Text)
}

type ReportTemplateList struct {
	XMLName   xml.Name            `xml:"REPORT_TEMPLATE_LIST"`
	Templates []ReportTemplateXML `xml:"REPORT_TEMPLATE"`
}

type ReportTemplateXML struct {
	ID           string `xml:"ID"`
	Type         string `xml:"TYPE"`
	TemplateType string `xml:"TEMPLATE_TYPE"`
	Title        string `xml:"TITLE"`
	User         string `xml:"USER>LOGIN"`
	LastUpdate   string `xml:"LAST_UPDATE"`
	Global       string `xml:"GLOBAL"`
	Default      string `xml:"DEFAULT"`
}

type MapReportList struct {
	XMLName xml.Name       `xml:"MAP_REPORT_LIST"`
	Maps    []MapReportXML `xml:"MAP_REPORT"`
}

type MapReportXML struct {
	Ref      string `xml:"ref,attr"`
	Date     string `xml:"date,attr"`
	Domain   string `xml:"domain,attr"`
	Status   string `xml:"status,attr"`
	Title    string `xml:"TITLE"`
	ReportID string `xml:"REPORT_ID"`
}

// VulnXML is one VULN of KNOWLEDGE_BASE_VULN_LIST_OUTPUT/RESPONSE/VULN_LIST.
type VulnXML struct {
	QID          string   `xml:"QID"`
	VulnType     string   `xml:"VULN_TYPE"`
	Severity     string   `xml:"SEVERITY_LEVEL"`
	Title        string   `xml:"TITLE"`
	Category     string   `xml:"CATEGORY"`
	Published    string   `xml:"PUBLISHED_DATETIME"`
	LastModified string   `xml:"LAST_SERVICE_MODIFICATION_DATETIME"`
	Patchable    string   `xml:"PATCHABLE"`
	CVEs         []string `xml:"CVE_LIST>CVE>ID"`
}
