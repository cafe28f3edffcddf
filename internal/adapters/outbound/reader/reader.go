// Package reader loads evaluator result files from disk.
package reader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/guardlens/guardlens/internal/domain/value"
)

// FileReader implements domain.ResultReader. Files ending in .yaml or .yml
// are decoded as YAML streams, everything else as concatenated JSON
// documents.
type FileReader struct{}

// New creates a FileReader.
func New() *FileReader { return &FileReader{} }

// Read returns every document in the file at path. An empty file stands for
// an evaluator run with nothing to report and yields one empty document.
func (r *FileReader) Read(path string) ([]value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	docs, err := Decode(data, isYAML(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return docs, nil
}

// Decode parses result text that did not come from a file.
func Decode(data []byte, yamlInput bool) ([]value.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []value.Value{value.FromObject(nil)}, nil
	}
	if yamlInput {
		return value.ParseYAML(data)
	}
	return value.ParseJSONStream(data)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
