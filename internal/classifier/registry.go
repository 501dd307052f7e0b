package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Registry is the ordered list of class labels, index-aligned with the
// model's output vector. Immutable after load.
type Registry struct {
	labels []string
}

// NewRegistry builds a registry from an explicit label ordering.
func NewRegistry(labels []string) *Registry {
	return &Registry{labels: append([]string(nil), labels...)}
}

// LoadRegistry resolves the class labels. A side-car JSON file wins; failing
// that, subdirectories of the dataset root are used in lexicographic order —
// the same ordering convention the training pipeline applies when it builds
// the model's output layer. When neither source exists the registry is empty
// and every classification decodes to the unknown label.
func LoadRegistry(classNamesPath, datasetDir string) (*Registry, error) {
	if _, err := os.Stat(classNamesPath); err == nil {
		raw, err := os.ReadFile(classNamesPath)
		if err != nil {
			return nil, fmt.Errorf("read class names: %w", err)
		}
		var labels []string
		if err := json.Unmarshal(raw, &labels); err != nil {
			return nil, fmt.Errorf("parse class names: %w", err)
		}
		return NewRegistry(labels), nil
	}

	entries, err := os.ReadDir(datasetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return &Registry{}, nil
		}
		return nil, fmt.Errorf("read dataset dir: %w", err)
	}

	var labels []string
	for _, e := range entries {
		if e.IsDir() {
			labels = append(labels, e.Name())
		}
	}
	sort.Strings(labels)
	return &Registry{labels: labels}, nil
}

// Labels returns a copy of the ordered label list.
func (r *Registry) Labels() []string {
	return append([]string(nil), r.labels...)
}

// Len is the class count.
func (r *Registry) Len() int {
	return len(r.labels)
}

// Label returns the label at index i, or false when i is out of range.
func (r *Registry) Label(i int) (string, bool) {
	if i < 0 || i >= len(r.labels) {
		return "", false
	}
	return r.labels[i], true
}
