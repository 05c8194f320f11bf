package formatter

import (
	"encoding/json"
	"io"
)

// RenderJSON writes rows as an indented JSON array.
func RenderJSON(w io.Writer, rows []Row) error {
	recs, err := records(rows)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}
