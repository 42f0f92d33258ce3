package compare

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"gocloud.dev/blob/fileblob"

	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/errorutil"
	"github.com/enersim/simprof/internal/storageprovider"
	"github.com/enersim/simprof/internal/storageutil"
	"github.com/enersim/simprof/internal/testutil"
)

func makeDataset(times map[string]float64) dataset.Dataset {
	functions := make(map[string]dataset.FunctionMetrics, len(times))
	for name, t := range times {
		functions[name] = dataset.FunctionMetrics{TotalTime: t, CallCount: 1}
	}
	return dataset.Dataset{Functions: functions}
}

func TestCommonFunctions(t *testing.T) {
	tests := []struct {
		name         string
		baseline     dataset.Dataset
		measurements []Measurement
		want         []string
		err          error
	}{
		{
			name:     "full overlap",
			baseline: makeDataset(map[string]float64{"SimulateHVAC": 45.2, "GetInput": 15.7}),
			measurements: []Measurement{
				{Name: "contended", Dataset: makeDataset(map[string]float64{"GetInput": 33, "SimulateHVAC": 126})},
			},
			want: []string{"GetInput", "SimulateHVAC"},
		},
		{
			name:     "partial overlap",
			baseline: makeDataset(map[string]float64{"SimulateHVAC": 45.2, "GetInput": 15.7, "POLYF": 0.008}),
			measurements: []Measurement{
				{Name: "a", Dataset: makeDataset(map[string]float64{"SimulateHVAC": 126, "POLYF": 0.02})},
				{Name: "b", Dataset: makeDataset(map[string]float64{"SimulateHVAC": 80, "GetInput": 20})},
			},
			want: []string{"SimulateHVAC"},
		},
		{
			name:     "no overlap",
			baseline: makeDataset(map[string]float64{"SimulateHVAC": 45.2}),
			measurements: []Measurement{
				{Name: "a", Dataset: makeDataset(map[string]float64{"GetInput": 15.7})},
			},
			err: errorutil.ErrNoCommonFunctions,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			names, err := CommonFunctions(test.baseline, test.measurements)
			if !errors.Is(err, test.err) {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := testutil.Diff(names, test.want); diff != "" {
				t.Fatalf("Result mismatch: got - want +\n%s", diff)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	baseline := makeDataset(map[string]float64{
		"SimulateHVAC": 10,
		"GetInput":     0,
		"POLYF":        2,
	})
	measurements := []Measurement{
		{Name: "contended", Dataset: makeDataset(map[string]float64{
			"SimulateHVAC": 25,
			"GetInput":     3,
			"POLYF":        1,
		})},
	}

	comparisons, functions, err := Compare(baseline, measurements)
	if err != nil {
		t.Fatal(err)
	}
	if diff := testutil.Diff(functions, []string{"GetInput", "POLYF", "SimulateHVAC"}); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}

	want := []Comparison{
		{
			Name: "contended",
			Entries: []Entry{
				// A zero baseline time maps to a neutral ratio.
				{Function: "GetInput", BaselineTime: 0, MeasurementTime: 3, Ratio: 1.0},
				{Function: "POLYF", BaselineTime: 2, MeasurementTime: 1, Ratio: 0.5},
				{Function: "SimulateHVAC", BaselineTime: 10, MeasurementTime: 25, Ratio: 2.5},
			},
			OverallRatio: 29.0 / 12.0,
		},
	}
	if diff := testutil.Diff(comparisons, want); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		ratio float64
		want  Verdict
	}{
		{0.5, VerdictImprovement},
		{0.949, VerdictImprovement},
		{0.95, VerdictNeutral},
		{1.0, VerdictNeutral},
		{1.05, VerdictNeutral},
		{1.051, VerdictDegradation},
		{3.2, VerdictDegradation},
	}
	for _, test := range tests {
		if got := Classify(test.ratio); got != test.want {
			t.Fatalf("verdict mismatch for %f: got %q, want %q", test.ratio, got, test.want)
		}
	}
}

func TestStats(t *testing.T) {
	c := Comparison{Entries: []Entry{
		{Ratio: 1.0},
		{Ratio: 0.5},
		{Ratio: 2.0},
		{Ratio: 1.5},
	}}
	want := Stats{
		Min:  0.5,
		Max:  2.0,
		Mean: 1.25,
		P75:  1.5,
		P95:  2.0,
	}
	if diff := testutil.Diff(c.Stats(), want); diff != "" {
		t.Fatalf("Result mismatch: got - want +\n%s", diff)
	}
}

func TestGatherMeasurements(t *testing.T) {
	dir, err := os.MkdirTemp("", "simprof-compare-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	bucket, err := fileblob.OpenBucket(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer bucket.Close()
	store := &storageprovider.Blob{Bucket: bucket}

	ctx := context.Background()
	stored := map[string]dataset.Dataset{
		"datasets/baseline/one": makeDataset(map[string]float64{"SimulateHVAC": 45.2}),
		"datasets/contended/two": makeDataset(map[string]float64{"SimulateHVAC": 126.5}),
	}
	for key, d := range stored {
		if err := storageutil.CompressedWrite(ctx, store, key, d); err != nil {
			t.Fatal(err)
		}
	}

	jobs := make(chan storageutil.ReadJob)
	defer close(jobs)
	for i := 0; i < 2; i++ {
		go func() {
			for job := range jobs {
				job.Read()
			}
		}()
	}

	refs := []DatasetRef{
		{Name: "two", Key: "datasets/contended/two"},
		{Name: "one", Key: "datasets/baseline/one"},
	}
	measurements, err := GatherMeasurements(ctx, store, refs, jobs)
	if err != nil {
		t.Fatal(err)
	}
	if len(measurements) != 2 {
		t.Fatalf("expected 2 measurements, got %d", len(measurements))
	}
	if measurements[0].Name != "one" || measurements[1].Name != "two" {
		t.Fatalf("measurements must be ordered by name: %v", []string{measurements[0].Name, measurements[1].Name})
	}

	_, err = GatherMeasurements(ctx, store, []DatasetRef{{Name: "missing", Key: "nope"}}, jobs)
	if !errors.Is(err, storageutil.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got: %v", err)
	}

	deadline, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	_, err = GatherMeasurements(deadline, store, refs, jobs)
	if err != nil {
		t.Fatal(err)
	}
}
