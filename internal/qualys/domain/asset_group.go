package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/connector/port"
)

// AssetGroup holds copies of its member addresses. The list fields are
// never nil.
type AssetGroup struct {
	BusinessImpact    string
	ID                int64
	LastUpdate        string
	ScanIPs           []string
	ScanDNS           []string
	ScannerAppliances []string
	Title             string
}

func (g AssetGroup) String() string {
	return fmt.Sprintf("qualys_id: %d, title: %s", g.ID, g.Title)
}

// AddAsset adds ip to the group on the server, then appends it locally.
func (g *AssetGroup) AddAsset(ctx context.Context, conn port.Connector, ip string) error {
	if err := g.edit(ctx, conn, "add_ips", ip); err != nil {
		return err
	}
	g.ScanIPs = append(g.ScanIPs, ip)
	return nil
}

// SetAssets replaces the group's addresses on the server, then locally.
func (g *AssetGroup) SetAssets(ctx context.Context, conn port.Connector, ips []string) error {
	if err := g.edit(ctx, conn, "set_ips", strings.Join(ips, ",")); err != nil {
		return err
	}
	g.ScanIPs = append(make([]string, 0, len(ips)), ips...)
	return nil
}

func (g *AssetGroup) edit(ctx context.Context, conn port.Connector, key, value string) error {
	body, err := conn.Request(ctx, CallAssetGroup, port.Params{
		"action": ActionEdit,
		"id":     strconv.FormatInt(g.ID, 10),
		key:      value,
	})
	if err != nil {
		return err
	}
	return CheckResponse(body)
}
