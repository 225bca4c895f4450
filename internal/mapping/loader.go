package mapping

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a MappingFile.
func Parse(data []byte) (*MappingFile, error) {
	var mf MappingFile

	err := yaml.Unmarshal(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *MappingFile) {
	if mf.Version == "" {
		mf.Version = "1"
	}

	for i := range mf.Records {
		rm := &mf.Records[i]
		if rm.Source == "" {
			rm.Source = strings.ToLower(rm.TypeName())
		}
	}
}

// Marshal serializes a MappingFile to YAML.
func Marshal(mf *MappingFile) ([]byte, error) {
	return yaml.Marshal(mf)
}

// WriteFile writes a MappingFile to the given path.
func WriteFile(mf *MappingFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}

// NormalizeRecordMapping orders columns by index so that generated code and
// written files are deterministic.
func NormalizeRecordMapping(rm *RecordMapping) {
	slices.SortStableFunc(rm.Columns, func(a, b ColumnMapping) int { return a.Index - b.Index })
}

// NormalizeMappingFile normalizes all record mappings in a file.
func NormalizeMappingFile(mf *MappingFile) {
	for i := range mf.Records {
		NormalizeRecordMapping(&mf.Records[i])
	}
}
