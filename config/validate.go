package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrMissingQualysHost = errors.New("qualys.host is required")
	ErrMissingCredential = errors.New("qualys.username and qualys.password are required")
	ErrMissingDB         = errors.New("db.host and db.database are required for a persistent cache")
	ErrInvalidCacheSize  = errors.New("cache.size must be positive")
	ErrMissingTLSFiles   = errors.New("server.cert and server.key are required when sslEnabled")
)

// Validate reports every problem in the configuration at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(c.Qualys.Host) == "" {
		result = multierror.Append(result, ErrMissingQualysHost)
	}
	if c.Qualys.Username == "" || c.Qualys.Password == "" {
		result = multierror.Append(result, ErrMissingCredential)
	}
	if strings.Contains(c.Qualys.Host, "://") {
		result = multierror.Append(result, fmt.Errorf("qualys.host %q must not include a scheme", c.Qualys.Host))
	}

	if c.Cache.Enabled {
		if c.Cache.Size < 0 {
			result = multierror.Append(result, ErrInvalidCacheSize)
		}
		if c.Cache.Persistent && (c.DB.Host == "" || c.DB.Database == "") {
			result = multierror.Append(result, ErrMissingDB)
		}
	}

	if c.Server.SslEnabled && (c.Server.Cert == "" || c.Server.Key == "") {
		result = multierror.Append(result, ErrMissingTLSFiles)
	}

	return result.ErrorOrNil()
}
