package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSON writes the Summary as indented JSON, either to a writer or to a file.
type JSON struct {
	w    io.Writer
	path string
}

func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

// NewJSONFile writes to path, replacing any existing file.
func NewJSONFile(path string) *JSON {
	return &JSON{path: path}
}

func (j *JSON) Name() string { return "json" }

func (j *JSON) Present(_ context.Context, doc *Document) error {
	data, err := json.MarshalIndent(NewSummary(doc), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if j.path == "" {
		_, err = j.w.Write(data)
		return err
	}
	if err := os.WriteFile(j.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", j.path, err)
	}
	return nil
}
