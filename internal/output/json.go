package output

import (
	"io"

	json "github.com/goccy/go-json"
)

// PrintJSON writes data as indented JSON followed by a newline.
func PrintJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

// PrintJSONLine writes data as one line of compact JSON.
func PrintJSONLine(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}
