package config

import (
	"os"
	"strings"

	"sigs.k8s.io/yaml"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/encrypt"
)

const (
	defaultTimeoutSeconds    = 300
	defaultRequestedWith     = "qualys-client"
	defaultMapReportTemplate = "Unknown Device Report"
	defaultCacheSize         = 128
	defaultCacheTTLMinutes   = 60

	// SecretKeyEnv names the variable holding the passphrase for encrypted passwords.
	SecretKeyEnv = "QUALYS_SECRET_KEY"
)

func ReadConfig(configPath string) (Config, error) {
	var config Config
	all, err := os.ReadFile(configPath)
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(all, &config); err != nil {
		return config, err
	}
	config.applyDefaults()

	if err := config.decryptSecrets(os.Getenv(SecretKeyEnv)); err != nil {
		return config, err
	}
	return config, config.Validate()
}

func MustReadConfig(configPath string) Config {
	config, err := ReadConfig(configPath)
	if err != nil {
		panic(err)
	}
	return config
}

func (c *Config) applyDefaults() {
	if c.Qualys.TimeoutSeconds == 0 {
		c.Qualys.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Qualys.RequestedWith == "" {
		c.Qualys.RequestedWith = defaultRequestedWith
	}
	if c.Qualys.MapReportTemplate == "" {
		c.Qualys.MapReportTemplate = defaultMapReportTemplate
	}
	if c.Cache.Size == 0 {
		c.Cache.Size = defaultCacheSize
	}
	if c.Cache.TTLMinutes == 0 {
		c.Cache.TTLMinutes = defaultCacheTTLMinutes
	}
	if len(c.Cache.Calls) == 0 {
		c.Cache.Calls = []string{"report_template_list.php", "map_report_list.php"}
	}
}

func (c *Config) decryptSecrets(passphrase string) error {
	if !strings.HasPrefix(c.Qualys.Password, encrypt.Prefix) {
		return nil
	}
	plain, err := encrypt.DecryptSecret(strings.TrimPrefix(c.Qualys.Password, encrypt.Prefix), passphrase)
	if err != nil {
		return err
	}
	c.Qualys.Password = plain
	return nil
}
