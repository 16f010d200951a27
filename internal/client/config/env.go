package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix is prepended to every variable name read by parseEnv.
const EnvPrefix = "MIDPOINT"

// parseEnv overlays cfg with MIDPOINT_* variables. Unset variables leave the
// current value alone since no field carries a default tag.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		panic(err)
	}
}
