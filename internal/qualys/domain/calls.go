package domain

// v2 endpoints take a POSTed form; v1 endpoints are bare filenames.
const (
	CallHost           = "/api/2.0/fo/asset/host/"
	CallAssetGroup     = "/api/2.0/fo/asset/group/"
	CallAssetIP        = "/api/2.0/fo/asset/ip/"
	CallScan           = "/api/2.0/fo/scan/"
	CallReport         = "/api/2.0/fo/report/"
	CallKnowledgeBase  = "/api/2.0/fo/knowledge_base/vuln/"
	CallAssetGroupList = "asset_group_list.php"
	CallTemplateList   = "report_template_list.php"
	CallMapReportList  = "map_report_list.php"
)

const (
	ActionList   = "list"
	ActionLaunch = "launch"
	ActionCancel = "cancel"
	ActionPause  = "pause"
	ActionResume = "resume"
	ActionEdit   = "edit"
	ActionAdd    = "add"
	ActionFetch  = "fetch"
)
