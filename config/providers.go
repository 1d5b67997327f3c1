package config

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/secagent/session"
)

// ParseProviders decodes a JSON object mapping provider names to their launch
// settings. The result is sorted by name. An empty string means no provider.
func ParseProviders(data string) ([]session.ProviderConfig, error) {
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}

	var raw map[string]session.ProviderConfig
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to parse MCP servers config")
	}

	providers := make([]session.ProviderConfig, 0, len(raw))
	for name, cfg := range raw {
		cfg.Name = name
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		providers = append(providers, cfg)
	}

	sort.Slice(providers, func(i, j int) bool {
		return providers[i].Name < providers[j].Name
	})
	return providers, nil
}
