package output

import (
	"encoding/json"
	"io"
)

// RenderJSON writes any report shape as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
