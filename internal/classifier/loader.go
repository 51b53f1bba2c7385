package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader decodes a model file in one particular format.
type Loader interface {
	Name() string
	Load(data []byte) (*Model, error)
}

type jsonLoader struct{}

func (jsonLoader) Name() string { return "json" }

func (jsonLoader) Load(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

type yamlLoader struct{}

func (yamlLoader) Name() string { return "yaml" }

func (yamlLoader) Load(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DefaultLoaders порядок важен: JSON является подмножеством YAML
func DefaultLoaders() []Loader {
	return []Loader{jsonLoader{}, yamlLoader{}}
}

// LoadModel tries each loader in order and returns the first valid model.
// If all of them fail the errors are joined.
func LoadModel(path string, loaders ...Loader) (*Model, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read model file: %w", err)
	}
	if len(loaders) == 0 {
		loaders = DefaultLoaders()
	}

	var errs []error
	for _, l := range loaders {
		m, err := l.Load(data)
		if err == nil {
			err = m.Validate()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l.Name(), err))
			continue
		}
		return m, l.Name(), nil
	}
	return nil, "", fmt.Errorf("no loader could read %s: %w", path, errors.Join(errs...))
}
