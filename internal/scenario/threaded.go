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

// GenerateMultithreaded fabricates a run with selective parallelization
// on an otherwise idle host. Zone and surface calculations gain the
// most, sequential setup and reporting barely move.
func GenerateMultithreaded(r *rand.Rand, now time.Time) dataset.Dataset {
	functions := make(map[string]dataset.FunctionMetrics, len(baseline.Functions))
	for _, fp := range baseline.Functions {
		functions[fp.Name] = threadedMetrics(r, fp)
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
		CPUCores:               8,
		ThreadsAvailable:       16,
		MemoryPressure:         "Low",
		AvailableMemory:        "14.2GB of 16GB",
		CacheHitRatio:          "91%",
		MultithreadingStrategy: "Selective parallelization",
		ParallelZones:          12,
		ParallelSurfaces:       24,
		ThreadPoolSize:         6,
	}

	return dataset.Dataset{
		Scenario:  Multithreaded,
		Metadata:  md,
		Timestamp: timeutil.Time(now),
		Functions: functions,
		Summary:   threadedSummary(functions, totalTime, baselineTotal),
	}
}

func threadedMetrics(r *rand.Rand, fp baseline.FunctionProfile) dataset.FunctionMetrics {
	actualImprovement := 1 + (fp.Threading.Improvement-1)*fp.Threading.Efficiency
	improvedTime := fp.TotalTime / actualImprovement
	improvedStd := fp.StdDev * 0.85

	actualCalls := jitterCalls(r, fp.CallCount, 0.98, 1.02)

	avgPerCall := improvedTime / float64(actualCalls)
	var stdPerCall float64
	if actualCalls > 1 {
		stdPerCall = improvedStd / float64(actualCalls)
	}
	minTime, maxTime := sampleCallTimes(r, actualCalls, avgPerCall, stdPerCall, nil)

	totalTime := math.Max(0.001, improvedTime+normal(r, 0, improvedStd*0.1))

	return dataset.FunctionMetrics{
		TotalTime:      mathutil.Round(totalTime, 6),
		CallCount:      actualCalls,
		AvgTimePerCall: mathutil.Round(totalTime/float64(actualCalls), 6),
		MinTime:        mathutil.Round(minTime, 6),
		MaxTime:        mathutil.Round(maxTime, 6),
		StdDeviation:   mathutil.Round(stdPerCall, 6),
		ThreadingMetrics: &dataset.ThreadingMetrics{
			BaselineTime:       mathutil.Round(fp.TotalTime, 6),
			ImprovementFactor:  mathutil.Round(fp.Threading.Improvement, 2),
			ThreadEfficiency:   mathutil.Round(fp.Threading.Efficiency, 2),
			ActualSpeedup:      mathutil.Round(actualImprovement, 2),
			ImprovementPercent: mathutil.Round((actualImprovement-1)*100, 1),
			TimeSaved:          mathutil.Round(fp.TotalTime-totalTime, 6),
		},
	}
}

func threadedSummary(functions map[string]dataset.FunctionMetrics, totalTime, baselineTotal float64) dataset.Summary {
	s := dataset.Summary{
		TotalSimulationTime:       mathutil.Round(totalTime, 3),
		BaselineSimulationTime:    mathutil.Round(baselineTotal, 3),
		OverallImprovementPercent: mathutil.Round((baselineTotal-totalTime)/baselineTotal*100, 1),
		TimeSavedThroughThreading: mathutil.Round(baselineTotal-totalTime, 3),
		OverallSpeedupFactor:      mathutil.Round(baselineTotal/totalTime, 2),
		TotalFunctionCalls:        dataset.TotalCalls(functions),
		TopTimeConsumers:          dataset.TopTimeConsumers(functions),
		MostCalledFunctions:       dataset.MostCalled(functions),
	}
	for i, entry := range s.TopTimeConsumers {
		s.TopTimeConsumers[i].ImprovementPercent = functions[entry.Function].ThreadingMetrics.ImprovementPercent
	}
	s.MostImprovedByThreading = mostImproved(functions)
	return s
}

func mostImproved(functions map[string]dataset.FunctionMetrics) []dataset.ImprovedEntry {
	names := dataset.SortedByTime(functions)
	entries := make([]dataset.ImprovedEntry, 0, len(names))
	for _, name := range names {
		tm := functions[name].ThreadingMetrics
		entries = append(entries, dataset.ImprovedEntry{
			Function:           name,
			TimeSaved:          tm.TimeSaved,
			SpeedupFactor:      tm.ActualSpeedup,
			ImprovementPercent: tm.ImprovementPercent,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TimeSaved > entries[j].TimeSaved
	})
	if len(entries) > 5 {
		entries = entries[:5]
	}
	return entries
}
