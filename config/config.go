package config

import (
	"defilend/core"

	configUtil "github.com/fox-one/pkg/config"
)

const (
	envPrefix = "DEFILEND"

	defaultDecimals    = 9
	defaultLockTTL     = 10
	defaultAuditorSpec = "@every 1m"
	defaultEndpoint    = "http://localhost:9000/api"
	defaultLocation    = "UTC"
)

// Load load config file, env vars prefixed with DEFILEND_ override it
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv(envPrefix)
	if configFile != "" {
		if err := configUtil.LoadYaml(configFile, config); err != nil {
			return err
		}
	}

	withDefaults(config)
	return nil
}

func withDefaults(cfg *core.Config) {
	if cfg.App.Decimals <= 0 {
		cfg.App.Decimals = defaultDecimals
	}

	if cfg.App.Location == "" {
		cfg.App.Location = defaultLocation
	}

	if cfg.Redis.LockTTL <= 0 {
		cfg.Redis.LockTTL = defaultLockTTL
	}

	if cfg.API.Endpoint == "" {
		cfg.API.Endpoint = defaultEndpoint
	}

	if cfg.Auditor.Spec == "" {
		cfg.Auditor.Spec = defaultAuditorSpec
	}

	if cfg.DB.Dialect == "" {
		cfg.DB.Dialect = "postgres"
	}
}
