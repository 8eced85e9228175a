// Package responses holds recorded Qualys API response bodies.
package responses

const HostList = `<?xml version="1.0" encoding="UTF-8" ?>
<!DOCTYPE HOST_LIST_OUTPUT SYSTEM "https://qualysapi.qualys.com/api/2.0/fo/asset/host/host_list_output.dtd">
<HOST_LIST_OUTPUT>
  <RESPONSE>
    <DATETIME>2018-10-23T10:00:00Z</DATETIME>
    <HOST_LIST>
      <HOST>
        <ID>12345678</ID>
        <IP>127.0.0.1</IP>
        <TRACKING_METHOD>IP</TRACKING_METHOD>
        <DNS><![CDATA[host.example.com]]></DNS>
        <NETBIOS><![CDATA[HOST]]></NETBIOS>
        <OS><![CDATA[Windows 2012]]></OS>
        <LAST_VULN_SCAN_DATETIME>2018-10-22T00:09:09Z</LAST_VULN_SCAN_DATETIME>
      </HOST>
      <HOST>
        <ID>12345679</ID>
        <IP>127.0.0.2</IP>
        <TRACKING_METHOD>IP</TRACKING_METHOD>
        <DNS><![CDATA[fresh.example.com]]></DNS>
        <NETBIOS><![CDATA[FRESH]]></NETBIOS>
        <OS><![CDATA[Linux 3.x]]></OS>
      </HOST>
    </HOST_LIST>
  </RESPONSE>
</HOST_LIST_OUTPUT>`

const HostListEmpty = `<?xml version="1.0" encoding="UTF-8" ?>
<HOST_LIST_OUTPUT>
  <RESPONSE>
    <DATETIME>2018-10-23T10:00:00Z</DATETIME>
  </RESPONSE>
</HOST_LIST_OUTPUT>`

const HostListBadID = `<HOST_LIST_OUTPUT><RESPONSE><HOST_LIST><HOST>
<ID>abc</ID><IP>127.0.0.1</IP></HOST></HOST_LIST></RESPONSE></HOST_LIST_OUTPUT>`

const ScanList = `<?xml version="1.0" encoding="UTF-8" ?>
<SCAN_LIST_OUTPUT>
  <RESPONSE>
    <DATETIME>2018-10-23T10:00:00Z</DATETIME>
    <SCAN_LIST>
      <SCAN>
        <REF>scan/1540162149.12345</REF>
        <TYPE>On-Demand</TYPE>
        <TITLE><![CDATA[Weekly servers]]></TITLE>
        <USER_LOGIN>apiuser</USER_LOGIN>
        <LAUNCH_DATETIME>2018-10-21T22:49:09Z</LAUNCH_DATETIME>
        <DURATION>01:12:40</DURATION>
        <PROCESSED>1</PROCESSED>
        <STATUS>
          <STATE>Running</STATE>
        </STATUS>
        <TARGET><![CDATA[127.0.0.1, 127.0.0.5-127.0.0.9]]></TARGET>
        <ASSET_GROUP_TITLE_LIST>
          <ASSET_GROUP_TITLE><![CDATA[Servers]]></ASSET_GROUP_TITLE>
          <ASSET_GROUP_TITLE><![CDATA[DMZ]]></ASSET_GROUP_TITLE>
        </ASSET_GROUP_TITLE_LIST>
        <OPTION_PROFILE>
          <TITLE><![CDATA[Initial Options]]></TITLE>
        </OPTION_PROFILE>
      </SCAN>
      <SCAN>
        <REF>scan/1540162149.12346</REF>
        <TYPE>Scheduled</TYPE>
        <TITLE><![CDATA[Nightly]]></TITLE>
        <USER_LOGIN>apiuser</USER_LOGIN>
        <LAUNCH_DATETIME>2018-10-20T22:00:00Z</LAUNCH_DATETIME>
        <DURATION>00:30:00</DURATION>
        <PROCESSED>0</PROCESSED>
        <STATUS>
          <STATE>Finished</STATE>
        </STATUS>
        <TARGET><![CDATA[10.0.0.1]]></TARGET>
      </SCAN>
    </SCAN_LIST>
  </RESPONSE>
</SCAN_LIST_OUTPUT>`

// ScanStatus renders a single-scan list answer with the given state.
func ScanStatus(ref, state string) string {
	return `<SCAN_LIST_OUTPUT><RESPONSE><SCAN_LIST><SCAN>
<REF>` + ref + `</REF><TYPE>On-Demand</TYPE><TITLE>Weekly servers</TITLE>
<LAUNCH_DATETIME>2018-10-21T22:49:09Z</LAUNCH_DATETIME>
<STATUS><STATE>` + state + `</STATE></STATUS><TARGET>127.0.0.1</TARGET>
</SCAN></SCAN_LIST></RESPONSE></SCAN_LIST_OUTPUT>`
}

const ScanListBadDate = `<SCAN_LIST_OUTPUT><RESPONSE><SCAN_LIST><SCAN>
<REF>scan/1</REF><LAUNCH_DATETIME>yesterday</LAUNCH_DATETIME>
<STATUS><STATE>Running</STATE></STATUS></SCAN></SCAN_LIST></RESPONSE></SCAN_LIST_OUTPUT>`

const AssetGroupList = `<?xml version="1.0" encoding="UTF-8" ?>
<!DOCTYPE ASSET_GROUP_LIST SYSTEM "https://qualysapi.qualys.com/asset_group_list.dtd">
<ASSET_GROUP_LIST>
  <ASSET_GROUP>
    <ID>1001</ID>
    <TITLE><![CDATA[Servers]]></TITLE>
    <BUSINESS_IMPACT><![CDATA[High]]></BUSINESS_IMPACT>
    <LAST_UPDATE>2018-10-22T00:09:09Z</LAST_UPDATE>
    <SCANIPS>
      <IP>127.0.0.1</IP>
      <IP_RANGE>127.0.0.5-127.0.0.9</IP_RANGE>
      <IP>127.0.0.2</IP>
    </SCANIPS>
    <SCANDNS>
      <DNS>host.example.com</DNS>
    </SCANDNS>
    <SCANNER_APPLIANCES>
      <SCANNER_APPLIANCE>
        <SCANNER_APPLIANCE_NAME><![CDATA[appliance_1]]></SCANNER_APPLIANCE_NAME>
        <SCANNER_APPLIANCE_SN>1234</SCANNER_APPLIANCE_SN>
      </SCANNER_APPLIANCE>
      <SCANNER_APPLIANCE>
        <SCANNER_APPLIANCE_NAME><![CDATA[appliance_2]]></SCANNER_APPLIANCE_NAME>
      </SCANNER_APPLIANCE>
    </SCANNER_APPLIANCES>
  </ASSET_GROUP>
  <ASSET_GROUP>
    <ID>1002</ID>
    <TITLE><![CDATA[Empty]]></TITLE>
    <BUSINESS_IMPACT><![CDATA[Low]]></BUSINESS_IMPACT>
    <LAST_UPDATE>2018-10-20T00:00:00Z</LAST_UPDATE>
  </ASSET_GROUP>
</ASSET_GROUP_LIST>`

// AssetGroupListFiltered is the shape returned when a title filter is sent.
const AssetGroupListFiltered = `<ASSET_GROUP_LIST><RESPONSE>
  <ASSET_GROUP>
    <ID>1002</ID>
    <TITLE><![CDATA[Empty]]></TITLE>
    <SCANIPS><IP>10.0.0.1</IP></SCANIPS>
  </ASSET_GROUP>
</RESPONSE></ASSET_GROUP_LIST>`

const ReportList = `<?xml version="1.0" encoding="UTF-8" ?>
<REPORT_LIST_OUTPUT>
  <RESPONSE>
    <DATETIME>2018-10-23T10:00:00Z</DATETIME>
    <REPORT_LIST>
      <REPORT>
        <ID>4242</ID>
        <TITLE><![CDATA[Monthly]]></TITLE>
        <TYPE>Scan</TYPE>
        <USER_LOGIN>apiuser</USER_LOGIN>
        <LAUNCH_DATETIME>2018-10-22T00:09:09Z</LAUNCH_DATETIME>
        <OUTPUT_FORMAT>PDF</OUTPUT_FORMAT>
        <SIZE>1.2 MB</SIZE>
        <STATUS>
          <STATE>Finished</STATE>
        </STATUS>
        <EXPIRATION_DATETIME>2018-10-29T00:09:09Z</EXPIRATION_DATETIME>
      </REPORT>
      <REPORT>
        <ID>4243</ID>
        <TITLE><![CDATA[Running one]]></TITLE>
        <TYPE>Map</TYPE>
        <USER_LOGIN>apiuser</USER_LOGIN>
        <LAUNCH_DATETIME>2018-10-23T09:00:00Z</LAUNCH_DATETIME>
        <OUTPUT_FORMAT>XML</OUTPUT_FORMAT>
        <SIZE></SIZE>
        <STATUS>Running</STATUS>
      </REPORT>
    </REPORT_LIST>
  </RESPONSE>
</REPORT_LIST_OUTPUT>`

const ReportTemplateList = `<?xml version="1.0" encoding="UTF-8" ?>
<REPORT_TEMPLATE_LIST>
  <REPORT_TEMPLATE>
    <ID>91</ID>
    <TYPE>Auto</TYPE>
    <TEMPLATE_TYPE>Scan</TEMPLATE_TYPE>
    <TITLE><![CDATA[Technical Report]]></TITLE>
    <USER><LOGIN>apiuser</LOGIN></USER>
    <LAST_UPDATE>2018-10-01T00:00:00Z</LAST_UPDATE>
    <GLOBAL>1</GLOBAL>
    <DEFAULT>1</DEFAULT>
  </REPORT_TEMPLATE>
  <REPORT_TEMPLATE>
    <ID>92</ID>
    <TYPE>Auto</TYPE>
    <TEMPLATE_TYPE>Map</TEMPLATE_TYPE>
    <TITLE><![CDATA[Unknown Device Report]]></TITLE>
    <USER><LOGIN>apiuser</LOGIN></USER>
    <LAST_UPDATE>2018-10-02T00:00:00Z</LAST_UPDATE>
    <GLOBAL>1</GLOBAL>
    <DEFAULT>0</DEFAULT>
  </REPORT_TEMPLATE>
  <REPORT_TEMPLATE>
    <ID>93</ID>
    <TYPE>Auto</TYPE>
    <TEMPLATE_TYPE>Map</TEMPLATE_TYPE>
    <TITLE><![CDATA[Map Default]]></TITLE>
    <USER><LOGIN>apiuser</LOGIN></USER>
    <LAST_UPDATE>2018-10-03T00:00:00Z</LAST_UPDATE>
    <GLOBAL>0</GLOBAL>
    <DEFAULT>1</DEFAULT>
  </REPORT_TEMPLATE>
</REPORT_TEMPLATE_LIST>`

const MapReportList = `<?xml version="1.0" encoding="UTF-8" ?>
<MAP_REPORT_LIST>
  <MAP_REPORT ref="map/1540162149.100" date="2018-10-21T22:49:09Z" domain="example.com" status="Finished">
    <TITLE><![CDATA[Office map]]></TITLE>
    <REPORT_ID>5150</REPORT_ID>
  </MAP_REPORT>
  <MAP_REPORT ref="map/1540162149.101" date="2018-10-22T22:49:09Z" domain="none" status="Running">
    <TITLE><![CDATA[Lab map]]></TITLE>
  </MAP_REPORT>
</MAP_REPORT_LIST>`

const KnowledgeBase = `<?xml version="1.0" encoding="UTF-8" ?>
<KNOWLEDGE_BASE_VULN_LIST_OUTPUT>
  <RESPONSE>
    <DATETIME>2018-10-23T10:00:00Z</DATETIME>
    <VULN_LIST>
      <VULN>
        <QID>38170</QID>
        <VULN_TYPE>Vulnerability</VULN_TYPE>
        <SEVERITY_LEVEL>2</SEVERITY_LEVEL>
        <TITLE><![CDATA[SSL Certificate - Subject Common Name Does Not Match Server FQDN]]></TITLE>
        <CATEGORY>General remote services</CATEGORY>
        <LAST_SERVICE_MODIFICATION_DATETIME>2018-09-01T10:00:00Z</LAST_SERVICE_MODIFICATION_DATETIME>
        <PUBLISHED_DATETIME>2010-01-01T10:00:00Z</PUBLISHED_DATETIME>
        <PATCHABLE>0</PATCHABLE>
      </VULN>
      <VULN>
        <QID>90883</QID>
        <VULN_TYPE>Vulnerability</VULN_TYPE>
        <SEVERITY_LEVEL>3</SEVERITY_LEVEL>
        <TITLE><![CDATA[Microsoft Windows Remote Desktop Protocol Server Man-in-the-Middle Weakness]]></TITLE>
        <CATEGORY>Windows</CATEGORY>
        <LAST_SERVICE_MODIFICATION_DATETIME>2018-08-01T10:00:00Z</LAST_SERVICE_MODIFICATION_DATETIME>
        <PUBLISHED_DATETIME>2012-03-01T10:00:00Z</PUBLISHED_DATETIME>
        <PATCHABLE>1</PATCHABLE>
        <CVE_LIST>
          <CVE><ID><![CDATA[CVE-2005-1794]]></ID><URL>http://cve.example/1794</URL></CVE>
        </CVE_LIST>
      </VULN>
    </VULN_LIST>
  </RESPONSE>
</KNOWLEDGE_BASE_VULN_LIST_OUTPUT>`

// SimpleSuccess is the envelope for an accepted mutating call.
const SimpleSuccess = `<?xml version="1.0" encoding="UTF-8" ?>
<SIMPLE_RETURN>
  <RESPONSE>
    <DATETIME>2018-10-23T10:00:00Z</DATETIME>
    <TEXT>Asset Group Updated Successfully</TEXT>
  </RESPONSE>
</SIMPLE_RETURN>`

const SimpleError = `<?xml version="1.0" encoding="UTF-8" ?>
<SIMPLE_RETURN>
  <RESPONSE>
    <DATETIME>2018-10-23T10:00:00Z</DATETIME>
    <CODE>1905</CODE>
    <TEXT>parameter scan_ref has invalid value</TEXT>
  </RESPONSE>
</SIMPLE_RETURN>`

const GenericSuccess = `<?xml version="1.0" encoding="UTF-8" ?>
<GENERIC_RETURN>
  <API name="asset_group_edit.php" username="apiuser" at="2018-10-23T10:00:00Z" />
  <RETURN status="SUCCESS">Asset Group Updated Successfully</RETURN>
</GENERIC_RETURN>`

const MaintenancePage = `<html><head><title>Scheduled maintenance</title></head><body>Back soon</body></html>`

const GenericFailed = `<?xml version="1.0" encoding="UTF-8" ?>
<GENERIC_RETURN>
  <API name="asset_group_list.php" username="apiuser" at="2018-10-23T10:00:00Z" />
  <RETURN status="FAILED" number="999">Internal error. Please contact customer support.</RETURN>
</GENERIC_RETURN>`

const LaunchScan = `<?xml version="1.0" encoding="UTF-8" ?>
<SIMPLE_RETURN>
  <RESPONSE>
    <DATETIME>2018-10-23T10:00:00Z</DATETIME>
    <TEXT>New vm scan launched</TEXT>
    <ITEM_LIST>
      <ITEM><KEY>ID</KEY><VALUE>777</VALUE></ITEM>
      <ITEM><KEY>REFERENCE</KEY><VALUE>scan/1540162149.12345</VALUE></ITEM>
    </ITEM_LIST>
  </RESPONSE>
</SIMPLE_RETURN>`

// LaunchScanUnkeyed carries the reference as the second item without a REFERENCE key.
const LaunchScanUnkeyed = `<SIMPLE_RETURN><RESPONSE><ITEM_LIST>
<ITEM><KEY>ID</KEY><VALUE>777</VALUE></ITEM>
<ITEM><KEY>REF</KEY><VALUE>scan/1540162149.12345</VALUE></ITEM>
</ITEM_LIST></RESPONSE></SIMPLE_RETURN>`

const LaunchReport = `<SIMPLE_RETURN><RESPONSE>
<TEXT>New report launched</TEXT>
<ITEM_LIST><ITEM><KEY>ID</KEY><VALUE>5150</VALUE></ITEM></ITEM_LIST>
</RESPONSE></SIMPLE_RETURN>`
