package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/project"
	"github.com/enersim/simprof/internal/scenario"
	"github.com/enersim/simprof/internal/testutil"
)

func resetFlags(t *testing.T) {
	t.Helper()
	seed, output, quiet, bucketURL = 0, "", false, ""
	t.Cleanup(func() {
		seed, output, quiet, bucketURL = 0, "", false, ""
	})
}

func TestScenarioCommandWritesFile(t *testing.T) {
	resetFlags(t)
	seed = 42
	quiet = true
	output = filepath.Join(t.TempDir(), "base.json")

	cmd := scenarioCommands()[0]
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatal(err)
	}

	d, err := dataset.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if d.Scenario != scenario.Baseline {
		t.Fatalf("unexpected scenario: %s", d.Scenario)
	}
	if len(d.Functions) == 0 {
		t.Fatal("expected functions in the dataset")
	}
	if d.Summary.TotalSimulationTime <= 0 {
		t.Fatalf("unexpected total simulation time: %f", d.Summary.TotalSimulationTime)
	}
}

func TestMatrixSweep(t *testing.T) {
	resetFlags(t)
	seed = 42
	quiet = true
	dir := t.TempDir()

	cmd := matrixCmd()
	if err := cmd.Flags().Set("dir", dir); err != nil {
		t.Fatal(err)
	}
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatal(err)
	}

	p, err := project.Read(filepath.Join(dir, projectFilename))
	if err != nil {
		t.Fatal(err)
	}
	if missing := p.MissingCells(); len(missing) != 0 {
		t.Fatalf("expected a complete matrix, missing cells: %v", missing)
	}
	for _, cell := range p.Cells() {
		filename, ok := p.CellFile(cell)
		if !ok {
			t.Fatalf("missing project entry for cell %+v", cell)
		}
		if _, err := os.Stat(filepath.Join(dir, filename)); err != nil {
			t.Fatal(err)
		}
	}

	d, err := dataset.ReadFile(filepath.Join(dir, dataset.MatrixFilename(4, 8)))
	if err != nil {
		t.Fatal(err)
	}
	if d.Metadata.SystemConditions.TotalThreads != 32 {
		t.Fatalf("unexpected thread count: %d", d.Metadata.SystemConditions.TotalThreads)
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "plain",
			path: "energyplus_profiling_data.json",
			want: "energyplus_profiling_data",
		},
		{
			name: "nested",
			path: "out/run/baseline.json",
			want: "baseline",
		},
		{
			name: "no extension",
			path: "baseline",
			want: "baseline",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if diff := testutil.Diff(stem(test.path), test.want); diff != "" {
				t.Fatalf("Result mismatch: got - want +\n%s", diff)
			}
		})
	}
}
