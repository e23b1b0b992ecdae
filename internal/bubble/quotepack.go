package bubble

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// QuotePack is an on-disk quote list. Packs let users swap reaction
// texts without touching the catalog through the API.
type QuotePack struct {
	Name   string   `yaml:"name,omitempty"`
	Quotes []string `yaml:"quotes"`
}

// LoadQuotePack reads a YAML quote pack from path. Blank entries are
// dropped; a pack that yields no usable quotes is an error.
func LoadQuotePack(path string) (*QuotePack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var pack QuotePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	quotes := make([]string, 0, len(pack.Quotes))
	for _, q := range pack.Quotes {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		quotes = append(quotes, q)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("quote pack %s has no quotes", path)
	}
	pack.Quotes = quotes

	return &pack, nil
}
