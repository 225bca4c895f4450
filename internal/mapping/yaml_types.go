package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// columnMappingFields mirrors ColumnMapping without its YAML methods.
type columnMappingFields ColumnMapping

// UnmarshalYAML implements custom YAML unmarshaling for ColumnMapping.
// Accepts:
//   - Full form: {index: 1, field: HP, default: 100}
//   - Short form: {1: HP} or {1: HP = 100}
func (c *ColumnMapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected column mapping, got %v", node.Line, node.Kind)
	}

	if len(node.Content) == 2 && node.Content[0].ShortTag() == "!!int" {
		parsed, err := parseShortColumn(node.Content[0].Value, node.Content[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}

		*c = parsed

		return nil
	}

	var fields columnMappingFields

	err := node.Decode(&fields)
	if err != nil {
		return err
	}

	*c = ColumnMapping(fields)

	return nil
}

// MarshalYAML implements custom YAML marshaling for ColumnMapping.
// Always outputs the full form.
func (c ColumnMapping) MarshalYAML() (any, error) {
	return columnMappingFields(c), nil
}

// parseShortColumn parses the "<index>: <field>[ = <default>]" form.
func parseShortColumn(indexText string, value *yaml.Node) (ColumnMapping, error) {
	index, err := strconv.Atoi(indexText)
	if err != nil {
		return ColumnMapping{}, fmt.Errorf("invalid column index %q: %w", indexText, err)
	}

	var str string

	err = value.Decode(&str)
	if err != nil {
		return ColumnMapping{}, fmt.Errorf("column %d: %w", index, err)
	}

	field, def, hasDefault := strings.Cut(str, "=")

	c := ColumnMapping{
		Index: index,
		Field: strings.TrimSpace(field),
	}

	if hasDefault {
		d := strings.TrimSpace(def)
		c.Default = &d
	}

	return c, nil
}
