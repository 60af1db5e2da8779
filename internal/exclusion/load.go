package exclusion

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type file struct {
	KeepApart [][]string `yaml:"keep_apart"`
}

// Load reads keep-apart groups from a YAML file. An empty path yields no groups.
func Load(path string) (Groups, error) {
	if path == "" {
		return Groups{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read exclusion groups: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (Groups, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("cannot parse exclusion groups: %w", err)
	}

	groups := make(Groups, 0, len(f.KeepApart))

	for i, group := range f.KeepApart {
		if len(group) < 2 {
			return nil, fmt.Errorf("keep_apart[%d]: a group needs at least two workers", i)
		}

		for _, id := range group {
			if strings.TrimSpace(id) == "" {
				return nil, fmt.Errorf("keep_apart[%d]: empty worker id", i)
			}
		}

		groups = append(groups, group)
	}

	return groups, nil
}
