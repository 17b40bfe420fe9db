package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"invoicing-roi-api/internal/model"
	"invoicing-roi-api/internal/roi"
)

type scenarioFile struct {
	Scenario []model.Scenario `toml:"scenario"`
}

// LoadScenarios reads a scenario set from a TOML file of [[scenario]]
// tables. An empty path returns the default set.
func LoadScenarios(path string) ([]model.Scenario, error) {
	if path == "" {
		return roi.DefaultScenarios(), nil
	}

	var file scenarioFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("reading scenarios %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("scenarios %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	for i := range file.Scenario {
		file.Scenario[i].Name = strings.TrimSpace(file.Scenario[i].Name)
	}
	if err := roi.ValidateScenarios(file.Scenario); err != nil {
		return nil, fmt.Errorf("scenarios %s: %w", path, err)
	}
	return file.Scenario, nil
}
