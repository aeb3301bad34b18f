package export

import (
	"os"

	"github.com/joemooney/jmt/pkg/model"
	"github.com/joemooney/jmt/pkg/persistence"
)

// ExportJSON renders d as an indented JSON document, using the same
// field shape persistence uses for `.jmt` files so external tooling
// (web previews, diffing, test fixtures) sees one consistent schema
// regardless of which export format it asked for.
func ExportJSON(d *model.Diagram) ([]byte, error) {
	return persistence.ToJSON(d, true)
}

// ExportJSONCompact is ExportJSON without indentation, for contexts
// that care about payload size over readability.
func ExportJSONCompact(d *model.Diagram) ([]byte, error) {
	return persistence.ToJSON(d, false)
}

// SaveJSONToFile renders d as indented JSON and writes it to filepath
// with 0644 permissions.
func SaveJSONToFile(d *model.Diagram, filepath string) error {
	data, err := ExportJSON(d)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// SaveJSONCompactToFile is SaveJSONToFile without indentation.
func SaveJSONCompactToFile(d *model.Diagram, filepath string) error {
	data, err := ExportJSONCompact(d)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
