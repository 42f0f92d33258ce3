package dataset

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// WriteFile serializes a dataset to an indented JSON file, the format
// every comparison tool consumes.
func WriteFile(path string, d Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		f.Close()
		return fmt.Errorf("encoding dataset: %w", err)
	}
	return f.Close()
}

// ReadFile loads a dataset from a JSON file.
func ReadFile(path string) (Dataset, error) {
	var d Dataset
	f, err := os.Open(path)
	if err != nil {
		return d, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&d); err != nil {
		return d, fmt.Errorf("decoding dataset %s: %w", path, err)
	}
	return d, nil
}
