package service

// Requests and responses of the gateway, encoded as JSON.

type HostResponse struct {
	ID             int64  `json:"id"`
	IP             string `json:"ip"`
	DNS            string `json:"dns,omitempty"`
	NetBIOS        string `json:"netbios,omitempty"`
	OS             string `json:"os,omitempty"`
	TrackingMethod string `json:"tracking_method,omitempty"`
	LastScan       string `json:"last_scan"`
}

type AssetGroupResponse struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	BusinessImpact    string   `json:"business_impact,omitempty"`
	LastUpdate        string   `json:"last_update,omitempty"`
	ScanIPs           []string `json:"scan_ips"`
	ScanDNS           []string `json:"scan_dns"`
	ScannerAppliances []string `json:"scanner_appliances"`
}

type AssetGroupIPsRequest struct {
	IPs     []string `json:"ips"`
	Replace bool     `json:"replace"`
}

type ScanFilterRequest struct {
	LaunchedAfter string `query:"launched_after"`
	State         string `query:"state"`
	Target        string `query:"target"`
	Type          string `query:"type"`
	UserLogin     string `query:"user_login"`
}

type ScanResponse struct {
	Ref            string   `json:"ref"`
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	Status         string   `json:"status"`
	UserLogin      string   `json:"user_login"`
	LaunchDatetime string   `json:"launch_datetime"`
	Duration       string   `json:"duration,omitempty"`
	Processed      int      `json:"processed"`
	Target         []string `json:"target"`
	AssetGroups    []string `json:"asset_groups"`
	OptionProfile  string   `json:"option_profile,omitempty"`
}

type LaunchScanRequest struct {
	Title       string `json:"title"`
	OptionTitle string `json:"option_title"`
	ScannerName string `json:"scanner_name"`
	AssetGroups string `json:"asset_groups"`
	IP          string `json:"ip"`
}

type ReportTemplateResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	TemplateType string `json:"template_type"`
	User         string `json:"user"`
	LastUpdate   string `json:"last_update"`
	IsGlobal     bool   `json:"is_global"`
	IsDefault    bool   `json:"is_default"`
}

type ReportResponse struct {
	ID                 int64  `json:"id"`
	Title              string `json:"title"`
	Type               string `json:"type"`
	Status             string `json:"status"`
	UserLogin          string `json:"user_login"`
	OutputFormat       string `json:"output_format"`
	Size               string `json:"size,omitempty"`
	LaunchDatetime     string `json:"launch_datetime"`
	ExpirationDatetime string `json:"expiration_datetime,omitempty"`
}

type MapReportResponse struct {
	Ref            string `json:"ref"`
	Title          string `json:"title"`
	Domain         string `json:"domain"`
	Status         string `json:"status"`
	LaunchDatetime string `json:"launch_datetime,omitempty"`
	ReportID       string `json:"report_id,omitempty"`
}

type IPRangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MapReportRequest names the map by ref, or by ref and title.
type MapReportRequest struct {
	MapRef             string           `json:"map_ref"`
	MapTitle           string           `json:"map_title"`
	CompareRef         string           `json:"compare_ref"`
	CompareTitle       string           `json:"compare_title"`
	Domain             string           `json:"domain"`
	IPs                string           `json:"ips"`
	IPRanges           []IPRangeRequest `json:"ip_ranges"`
	TemplateID         int64            `json:"template_id"`
	TemplateTitle      string           `json:"template_title"`
	UseDefaultTemplate bool             `json:"use_default_template"`
	Title              string           `json:"title"`
	OutputFormat       string           `json:"output_format"`
	HideHeader         *bool            `json:"hide_header"`
}

type MapReportLaunchResponse struct {
	ReportID string `json:"report_id"`
}

type AddIPsRequest struct {
	IPs    []string `json:"ips"`
	Module string   `json:"module"`
}
