package commands

import (
	"strings"

	"registry-harvester/lib/configutil"
	"registry-harvester/services/harvest"

	"dario.cat/mergo"
)

type Config struct {
	// the registry application root, e.g.
	// https://cms.example.edu/campus/registry
	BaseUrl string `json:"base_url"`
	// the sandbox environment serves an invalid certificate; leave this
	// off anywhere else
	InsecureTls bool `json:"insecure_tls"`
	// a local sqlite path or a libsql:// DSN
	Database string `json:"database"`
	// hard cap on roster pages per run
	MaxPages int `json:"max_pages"`
	// overrides merged over the default reconciliation policy
	Policy harvest.Policy `json:"policy"`
}

func readConfig(path string) (Config, harvest.Policy, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil {
		return Config{}, harvest.Policy{}, err
	}

	policy := harvest.DefaultPolicy()
	err = mergo.Merge(&policy, cfg.Policy, mergo.WithOverride)
	if err != nil {
		return Config{}, harvest.Policy{}, err
	}
	return cfg, policy, nil
}

func (c Config) loginUrl() string {
	return strings.TrimRight(c.BaseUrl, "/") + "/login.php"
}
