package export

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// WriteDocument encodes doc as indented JSON.
func WriteDocument(w io.Writer, doc Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func writeJSON(path string, doc Document) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDocument(file, doc); err != nil {
		file.Close()
		return fmt.Errorf("encode json: %w", err)
	}
	return file.Close()
}
