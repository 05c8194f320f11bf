package formatter

import (
	"io"

	"gopkg.in/yaml.v3"
)

// RenderYAML writes rows as a YAML sequence.
func RenderYAML(w io.Writer, rows []Row) error {
	recs, err := records(rows)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(recs); err != nil {
		return err
	}
	return enc.Close()
}
