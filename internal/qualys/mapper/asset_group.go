package mapper

import (
	"strings"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/domain"
)

func AssetGroupWire2Domain(g domain.AssetGroupXML) (domain.AssetGroup, error) {
	id, err := parseID("ASSET_GROUP/ID", g.ID)
	if err != nil {
		return domain.AssetGroup{}, err
	}

	scanIPs := []string{}
	if g.ScanIPs != nil {
		for _, entry := range g.ScanIPs.Entries {
			if v := strings.TrimSpace(entry.Value); v != "" {
				scanIPs = append(scanIPs, v)
			}
		}
	}

	return domain.AssetGroup{
		BusinessImpact:    strings.TrimSpace(g.BusinessImpact),
		ID:                id,
		LastUpdate:        strings.TrimSpace(g.LastUpdate),
		ScanIPs:           scanIPs,
		ScanDNS:           trimAll(g.ScanDNS),
		ScannerAppliances: trimAll(g.ScannerAppliances),
		Title:             strings.TrimSpace(g.Title),
	}, nil
}

// AssetGroupListWire2Domain maps every group; each group gets its own
// member lists.
func AssetGroupListWire2Domain(list domain.AssetGroupList) ([]domain.AssetGroup, error) {
	wire := list.All()
	groups := make([]domain.AssetGroup, 0, len(wire))
	for _, g := range wire {
		group, err := AssetGroupWire2Domain(g)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}
