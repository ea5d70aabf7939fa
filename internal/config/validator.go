package config

import (
	"net/url"
	"strings"

	"github.com/vyrodovalexey/devproxy/internal/observability"
	"github.com/vyrodovalexey/devproxy/internal/util"
)

// ValidateConfig checks the structural validity of a configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return util.NewConfigError("", "config is nil", nil)
	}
	if cfg.Server.Listen == "" {
		return util.NewConfigError("server.listen", "listen address is empty", nil)
	}
	return nil
}

// ValidEntries filters the proxy entries down to the usable ones.
// Unusable entries are dropped with a warning so that a single bad
// entry never reaches the rule engine or aborts startup:
//
//   - the key must end with a path separator
//   - the target must be present and parse as an absolute URL
func ValidEntries(entries ProxyEntries, logger observability.Logger) ProxyEntries {
	valid := make(ProxyEntries, 0, len(entries))

	for _, entry := range entries {
		if entry.Key == "" {
			logger.Warn("dropping proxy entry with empty key")
			continue
		}

		if !strings.HasSuffix(entry.Key, "/") {
			logger.Warn("dropping proxy entry: key must end with a path separator",
				observability.String("key", entry.Key),
			)
			continue
		}

		if entry.Target == "" {
			logger.Warn("dropping proxy entry: no target configured",
				observability.String("key", entry.Key),
			)
			continue
		}

		target, err := url.Parse(entry.Target)
		if err != nil || !target.IsAbs() || target.Host == "" {
			logger.Warn("dropping proxy entry: target is not an absolute URL",
				observability.String("key", entry.Key),
				observability.String("target", entry.Target),
			)
			continue
		}

		valid = append(valid, entry)
	}

	return valid
}
