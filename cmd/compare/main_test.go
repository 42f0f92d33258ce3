package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/scenario"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	now := time.Unix(1700000000, 0).UTC()

	files := []struct {
		name string
		data dataset.Dataset
	}{
		{
			name: "baseline.json",
			data: scenario.GenerateBaseline(scenario.NewRand(42), now),
		},
		{
			name: "contended.json",
			data: scenario.GenerateContended(scenario.NewRand(43), now),
		},
		{
			name: "threaded.json",
			data: scenario.GenerateMultithreaded(scenario.NewRand(44), now),
		},
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := dataset.WriteFile(path, f.data); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	output = filepath.Join(dir, "comparison.png")
	quiet = true
	t.Cleanup(func() {
		output, deviationBars, quiet = "", false, false
	})

	if err := run(rootCmd, paths); err != nil {
		t.Fatal(err)
	}

	png, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("expected a PNG image")
	}
}
