package scenario

import (
	"math"
	"testing"
	"time"

	"github.com/enersim/simprof/internal/baseline"
	"github.com/enersim/simprof/internal/testutil"
)

func TestGenerateBaseline(t *testing.T) {
	now := time.Now().UTC()
	d := GenerateBaseline(NewRand(1), now)

	if len(d.Functions) != len(baseline.Functions) {
		t.Fatalf("expected %d functions, got %d", len(baseline.Functions), len(d.Functions))
	}

	var pct float64
	for name, fm := range d.Functions {
		if fm.CallCount < 1 {
			t.Fatalf("%s: call count must be at least 1", name)
		}
		if fm.TotalTime <= 0 {
			t.Fatalf("%s: non-positive total time", name)
		}
		if fm.MinTime > fm.MaxTime {
			t.Fatalf("%s: min time above max time", name)
		}
		if fm.ContentionMetrics != nil || fm.ThreadingMetrics != nil || fm.HybridMetrics != nil {
			t.Fatalf("%s: baseline runs carry no scenario metrics", name)
		}
		pct += fm.PercentageOfTotal
	}
	if math.Abs(pct-100) > 0.5 {
		t.Fatalf("percentages should sum to ~100, got %f", pct)
	}

	if len(d.Summary.TopTimeConsumers) != 5 {
		t.Fatalf("expected 5 top consumers, got %d", len(d.Summary.TopTimeConsumers))
	}
	for i := 1; i < len(d.Summary.TopTimeConsumers); i++ {
		if d.Summary.TopTimeConsumers[i].Time > d.Summary.TopTimeConsumers[i-1].Time {
			t.Fatal("top consumers must be ordered by descending time")
		}
	}
	if len(d.Summary.MostCalledFunctions) != 5 {
		t.Fatalf("expected 5 most called functions, got %d", len(d.Summary.MostCalledFunctions))
	}
}

func TestGenerateBaselineDeterministic(t *testing.T) {
	now := time.Now().UTC()
	first := GenerateBaseline(NewRand(99), now)
	second := GenerateBaseline(NewRand(99), now)
	if diff := testutil.Diff(first, second); diff != "" {
		t.Fatalf("same seed should fabricate the same dataset: got - want +\n%s", diff)
	}
}

func TestGenerateContended(t *testing.T) {
	now := time.Now().UTC()
	d := GenerateContended(NewRand(2), now)

	if d.Summary.TotalSimulationTime <= d.Summary.BaselineSimulationTime {
		t.Fatal("contention should slow the run down")
	}
	if d.Summary.OverallDegradationPercent <= 0 {
		t.Fatalf("expected positive degradation, got %f", d.Summary.OverallDegradationPercent)
	}

	for _, fp := range baseline.Functions {
		fm := d.Functions[fp.Name]
		cm := fm.ContentionMetrics
		if cm == nil {
			t.Fatalf("%s: missing contention metrics", fp.Name)
		}
		wantDegradation := (fp.Contention.Factor - 1) * 100
		if math.Abs(cm.DegradationPercent-wantDegradation) > 0.1 {
			t.Fatalf("%s: degradation mismatch: got %f, want %f", fp.Name, cm.DegradationPercent, wantDegradation)
		}
	}

	if len(d.Summary.MostImpactedByContention) != 5 {
		t.Fatalf("expected 5 most impacted entries, got %d", len(d.Summary.MostImpactedByContention))
	}
	impacted := d.Summary.MostImpactedByContention
	for i := 1; i < len(impacted); i++ {
		if impacted[i].DegradationPercent > impacted[i-1].DegradationPercent {
			t.Fatal("most impacted entries must be ordered by descending degradation")
		}
	}

	if d.Metadata.SystemConditions == nil || d.Metadata.SystemConditions.MemoryPressure != "High" {
		t.Fatal("contended runs must report high memory pressure")
	}
}

func TestGenerateMultithreaded(t *testing.T) {
	now := time.Now().UTC()
	d := GenerateMultithreaded(NewRand(3), now)

	if d.Summary.TotalSimulationTime >= d.Summary.BaselineSimulationTime {
		t.Fatal("threading should speed the run up")
	}
	if d.Summary.OverallSpeedupFactor <= 1 {
		t.Fatalf("expected a speedup factor above 1, got %f", d.Summary.OverallSpeedupFactor)
	}

	for _, fp := range baseline.Functions {
		tm := d.Functions[fp.Name].ThreadingMetrics
		if tm == nil {
			t.Fatalf("%s: missing threading metrics", fp.Name)
		}
		wantSpeedup := 1 + (fp.Threading.Improvement-1)*fp.Threading.Efficiency
		if math.Abs(tm.ActualSpeedup-wantSpeedup) > 0.01 {
			t.Fatalf("%s: speedup mismatch: got %f, want %f", fp.Name, tm.ActualSpeedup, wantSpeedup)
		}
	}

	if len(d.Summary.MostImprovedByThreading) != 5 {
		t.Fatalf("expected 5 most improved entries, got %d", len(d.Summary.MostImprovedByThreading))
	}
}

func TestGenerateHybrid(t *testing.T) {
	now := time.Now().UTC()
	d := GenerateHybrid(NewRand(4), now)

	for _, fp := range baseline.Functions {
		hm := d.Functions[fp.Name].HybridMetrics
		if hm == nil {
			t.Fatalf("%s: missing hybrid metrics", fp.Name)
		}
		if hm.NetEffect != fp.Hybrid.NetEffect {
			t.Fatalf("%s: net effect mismatch: got %q, want %q", fp.Name, hm.NetEffect, fp.Hybrid.NetEffect)
		}
		// Threading gains minus contention losses must reproduce the net change.
		net := hm.TimeLostToContention - hm.TimeSavedFromThreading
		if math.Abs(net-hm.NetTimeChange) > 0.01 {
			t.Fatalf("%s: inconsistent net time change: %f != %f", fp.Name, net, hm.NetTimeChange)
		}
	}

	if d.Summary.ThreadingAnalysis == nil {
		t.Fatal("hybrid summary must carry a threading analysis")
	}
	if len(d.Summary.BiggestNetGainers) == 0 || len(d.Summary.BiggestNetLosers) == 0 {
		t.Fatal("hybrid runs should have both net gainers and net losers")
	}
	for _, entry := range d.Summary.BiggestNetGainers {
		if entry.TimeSaved < 0 {
			t.Fatalf("%s: negative time saved", entry.Function)
		}
	}
	for _, entry := range d.Summary.BiggestNetLosers {
		if entry.TimeAdded <= 0 {
			t.Fatalf("%s: net losers must have added time", entry.Function)
		}
	}
	for _, entry := range d.Summary.TopTimeConsumers {
		if entry.NetChangePercent == nil {
			t.Fatalf("%s: top consumers must report their net change", entry.Function)
		}
	}
}
