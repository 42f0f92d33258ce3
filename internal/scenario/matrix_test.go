package scenario

import (
	"math"
	"testing"
	"time"

	"github.com/enersim/simprof/internal/baseline"
	"github.com/enersim/simprof/internal/mathutil"
	"github.com/enersim/simprof/internal/testutil"
)

func TestCalculateFactors(t *testing.T) {
	tests := []struct {
		name           string
		concurrentSims int
		threadsPerSim  int
		want           Factors
	}{
		{
			name:           "single simulation single thread",
			concurrentSims: 1,
			threadsPerSim:  1,
			want: Factors{
				MemoryContention:     1,
				IOContention:         1,
				CacheContention:      1,
				CPUEfficiency:        1,
				ContextSwitchPenalty: 1,
				TotalThreads:         1,
			},
		},
		{
			name:           "four simulations two threads",
			concurrentSims: 4,
			threadsPerSim:  2,
			want: Factors{
				MemoryContention:     1.45,
				IOContention:         1.75,
				CacheContention:      1.24,
				CPUEfficiency:        1.494,
				ContextSwitchPenalty: 1.014,
				TotalThreads:         8,
			},
		},
		{
			name:           "saturated host",
			concurrentSims: 64,
			threadsPerSim:  32,
			want: Factors{
				MemoryContention:     10.45,
				IOContention:         16.75,
				CacheContention:      6.04,
				CPUEfficiency:        1.61,
				ContextSwitchPenalty: 5.094,
				TotalThreads:         2048,
			},
		},
	}

	roundFactors := func(f Factors) Factors {
		f.MemoryContention = mathutil.Round(f.MemoryContention, 3)
		f.IOContention = mathutil.Round(f.IOContention, 3)
		f.CacheContention = mathutil.Round(f.CacheContention, 3)
		f.CPUEfficiency = mathutil.Round(f.CPUEfficiency, 3)
		f.ContextSwitchPenalty = mathutil.Round(f.ContextSwitchPenalty, 3)
		return f
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			factors := roundFactors(CalculateFactors(test.concurrentSims, test.threadsPerSim))
			if diff := testutil.Diff(factors, test.want); diff != "" {
				t.Fatalf("Result mismatch: got - want +\n%s", diff)
			}
		})
	}
}

func TestApplyClassEffectsFloor(t *testing.T) {
	// A huge CPU efficiency would push the adjusted time close to zero.
	factors := Factors{
		MemoryContention:     1,
		IOContention:         1,
		CacheContention:      1,
		CPUEfficiency:        100,
		ContextSwitchPenalty: 1,
	}
	adjusted := applyClassEffects(baseline.ClassParallelizable, 10, factors)
	if adjusted != 1 {
		t.Fatalf("expected the 10%% floor, got: %f", adjusted)
	}
}

func TestSchedulerScenario(t *testing.T) {
	tests := []struct {
		totalThreads int
		want         string
	}{
		{1, "Low contention"},
		{4, "Low contention"},
		{16, "Moderate contention"},
		{64, "High contention"},
		{2048, "Severe contention"},
	}
	for _, test := range tests {
		if got := schedulerScenario(test.totalThreads); got != test.want {
			t.Fatalf("scenario mismatch for %d threads: got %q, want %q", test.totalThreads, got, test.want)
		}
	}
}

func TestContentionLevel(t *testing.T) {
	tests := []struct {
		name           string
		concurrentSims int
		threadsPerSim  int
		want           string
	}{
		{"idle", 1, 1, "Low"},
		{"light", 3, 1, "Moderate"},
		{"busy", 6, 2, "High"},
		{"saturated", 16, 8, "Severe"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			factors := CalculateFactors(test.concurrentSims, test.threadsPerSim)
			if got := contentionLevel(factors); got != test.want {
				t.Fatalf("level mismatch: got %q, want %q", got, test.want)
			}
		})
	}
}

func TestGenerateMatrixCell(t *testing.T) {
	now := time.Now().UTC()
	d := GenerateMatrixCell(NewRand(42), now, 4, 8)

	if len(d.Functions) != len(baseline.Functions) {
		t.Fatalf("expected %d functions, got %d", len(baseline.Functions), len(d.Functions))
	}
	for _, fp := range baseline.Functions {
		fm, ok := d.Functions[fp.Name]
		if !ok {
			t.Fatalf("missing function %q", fp.Name)
		}
		if fm.CallCount != fp.MatrixCalls {
			t.Fatalf("%s: call count mismatch: got %d, want %d", fp.Name, fm.CallCount, fp.MatrixCalls)
		}
		if fm.TotalTime <= 0 {
			t.Fatalf("%s: non-positive total time", fp.Name)
		}
	}

	sc := d.Metadata.SystemConditions
	if sc == nil || d.Metadata.PerformanceFactors == nil {
		t.Fatal("matrix metadata must carry system conditions and performance factors")
	}
	if sc.TotalThreads != 32 {
		t.Fatalf("expected 32 total threads, got %d", sc.TotalThreads)
	}
	if sc.SchedulerScenario != "High contention" {
		t.Fatalf("unexpected scheduler scenario: %q", sc.SchedulerScenario)
	}

	wantRatio := d.Summary.TotalSimulationTime / baseline.TotalSimulationTime
	if math.Abs(d.Summary.PerformanceRatio-wantRatio) > 0.01 {
		t.Fatalf("performance ratio mismatch: got %f, want %f", d.Summary.PerformanceRatio, wantRatio)
	}

	var pct float64
	for _, fm := range d.Functions {
		pct += fm.PercentageOfTotal
	}
	if math.Abs(pct-100) > 0.5 {
		t.Fatalf("percentages should sum to ~100, got %f", pct)
	}
}

func TestGenerateMatrixCellDeterministic(t *testing.T) {
	now := time.Now().UTC()
	first := GenerateMatrixCell(NewRand(7), now, 2, 4)
	second := GenerateMatrixCell(NewRand(7), now, 2, 4)
	if diff := testutil.Diff(first, second); diff != "" {
		t.Fatalf("same seed should fabricate the same dataset: got - want +\n%s", diff)
	}
}
