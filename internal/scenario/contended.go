package scenario

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/enersim/simprof/internal/baseline"
	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/mathutil"
	"github.com/enersim/simprof/internal/timeutil"
)

// GenerateContended fabricates a run squeezed by other applications:
// heavy swap activity, degraded cache hit ratio and inconsistent
// resource availability.
func GenerateContended(r *rand.Rand, now time.Time) dataset.Dataset {
	functions := make(map[string]dataset.FunctionMetrics, len(baseline.Functions))
	for _, fp := range baseline.Functions {
		functions[fp.Name] = contendedMetrics(r, fp)
	}

	totalTime := dataset.TotalTime(functions)
	dataset.SetPercentages(functions, totalTime)

	var baselineTotal float64
	for _, fp := range baseline.Functions {
		baselineTotal += fp.TotalTime
	}

	md := dataset.NewMetadata()
	md.TotalSimulationTime = totalTime
	md.SystemConditions = &dataset.SystemConditions{
		MemoryPressure: "High",
		ConcurrentApplications: []string{
			"Chrome (2.1GB)", "Docker (1.8GB)", "IntelliJ IDEA (1.2GB)", "Slack (450MB)",
		},
		AvailableMemory:       "1.2GB of 16GB",
		SwapActivity:          "Heavy (2.3GB active)",
		CacheHitRatio:         "64%",
		PageFaultsPerSecond:   1250,
		ContextSwitchesPerSec: 8900,
	}

	return dataset.Dataset{
		Scenario:  Contended,
		Metadata:  md,
		Timestamp: timeutil.Time(now),
		Functions: functions,
		Summary:   contendedSummary(functions, totalTime, baselineTotal),
	}
}

func contendedMetrics(r *rand.Rand, fp baseline.FunctionProfile) dataset.FunctionMetrics {
	contendedTime := fp.TotalTime * fp.Contention.Factor
	contendedStd := fp.StdDev * fp.Contention.Variability

	actualCalls := jitterCalls(r, fp.CallCount, 0.92, 1.03)

	avgPerCall := contendedTime / float64(actualCalls)
	var stdPerCall float64
	if actualCalls > 1 {
		stdPerCall = contendedStd / float64(actualCalls)
	}
	minTime, maxTime := sampleCallTimes(r, actualCalls, avgPerCall, stdPerCall, contentionOutlier)

	totalTime := math.Max(0.001, contendedTime+normal(r, 0, contendedStd*0.15))

	return dataset.FunctionMetrics{
		TotalTime:      mathutil.Round(totalTime, 6),
		CallCount:      actualCalls,
		AvgTimePerCall: mathutil.Round(totalTime/float64(actualCalls), 6),
		MinTime:        mathutil.Round(minTime, 6),
		MaxTime:        mathutil.Round(maxTime, 6),
		StdDeviation:   mathutil.Round(stdPerCall, 6),
		ContentionMetrics: &dataset.ContentionMetrics{
			BaselineTime:        mathutil.Round(fp.TotalTime, 6),
			ContentionFactor:    mathutil.Round(fp.Contention.Factor, 2),
			DegradationPercent:  mathutil.Round((fp.Contention.Factor-1)*100, 1),
			VariabilityIncrease: mathutil.Round(fp.Contention.Variability, 2),
		},
	}
}

// contentionOutlier stretches a call duration the way swap events and
// cache misses do under memory pressure.
func contentionOutlier(r *rand.Rand, t float64) float64 {
	if r.Float64() < 0.05 {
		return t * uniform(r, 5, 15)
	}
	if r.Float64() < 0.15 {
		return t * uniform(r, 2, 4)
	}
	return t
}

func contendedSummary(functions map[string]dataset.FunctionMetrics, totalTime, baselineTotal float64) dataset.Summary {
	s := dataset.Summary{
		TotalSimulationTime:       mathutil.Round(totalTime, 3),
		BaselineSimulationTime:    mathutil.Round(baselineTotal, 3),
		OverallDegradationPercent: mathutil.Round((totalTime-baselineTotal)/baselineTotal*100, 1),
		AdditionalContentionTime:  mathutil.Round(totalTime-baselineTotal, 3),
		TotalFunctionCalls:        dataset.TotalCalls(functions),
		TopTimeConsumers:          dataset.TopTimeConsumers(functions),
		MostCalledFunctions:       dataset.MostCalled(functions),
	}
	for i, entry := range s.TopTimeConsumers {
		s.TopTimeConsumers[i].DegradationPercent = functions[entry.Function].ContentionMetrics.DegradationPercent
	}
	s.MostImpactedByContention = mostImpacted(functions)
	return s
}

func mostImpacted(functions map[string]dataset.FunctionMetrics) []dataset.ImpactedEntry {
	names := dataset.SortedByTime(functions)
	entries := make([]dataset.ImpactedEntry, 0, len(names))
	for _, name := range names {
		cm := functions[name].ContentionMetrics
		entries = append(entries, dataset.ImpactedEntry{
			Function:           name,
			DegradationPercent: cm.DegradationPercent,
			TimeIncrease:       mathutil.Round(functions[name].TotalTime-cm.BaselineTime, 3),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DegradationPercent > entries[j].DegradationPercent
	})
	if len(entries) > 5 {
		entries = entries[:5]
	}
	return entries
}
