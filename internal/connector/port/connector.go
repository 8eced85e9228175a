package port

import (
	"context"
	"io"
	"net/url"
)

// Params are the form or query parameters of one API call. Empty values are
// sent as-is; callers omit keys they do not want on the wire.
type Params map[string]string

// Encode renders p sorted by key, as url.Values does.
func (p Params) Encode() string {
	values := url.Values{}
	for k, v := range p {
		values.Set(k, v)
	}
	return values.Encode()
}

// Action returns the action verb of the call, empty when absent.
func (p Params) Action() string {
	return p["action"]
}

// Settings are connection-level lookups exposed to the façade.
type Settings struct {
	MapReportTemplate string
}

// Connector executes authenticated calls against the Qualys API.
//
// A call starting with "/" addresses a v2 endpoint; a bare filename such as
// "asset_group_list.php" addresses a legacy v1 endpoint.
type Connector interface {
	Request(ctx context.Context, call string, params Params) ([]byte, error)
	Stream(ctx context.Context, call string, params Params) (io.ReadCloser, error)
	Settings() Settings
}

type freshReadKey struct{}

// WithFreshRead marks reads made with ctx as needing the server's current
// answer; caching connectors skip their lookup but still store the result.
func WithFreshRead(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshReadKey{}, true)
}

func IsFreshRead(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshReadKey{}).(bool)
	return fresh
}
