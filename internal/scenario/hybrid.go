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

const hybridEffDegradation = "25%"

// GenerateHybrid fabricates a run where threading gains and memory
// contention apply at the same time. Threading efficiency is degraded
// by the memory pressure, and the net outcome varies by function.
func GenerateHybrid(r *rand.Rand, now time.Time) dataset.Dataset {
	functions := make(map[string]dataset.FunctionMetrics, len(baseline.Functions))
	for _, fp := range baseline.Functions {
		functions[fp.Name] = hybridMetrics(r, fp)
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
		CPUCores:         8,
		ThreadsAvailable: 16,
		ThreadPoolSize:   6,
		MemoryPressure:   "High",
		AvailableMemory:  "2.1GB of 16GB",
		CacheHitRatio:    "71%",
		SwapActivity:     "Moderate (1.4GB active)",
		ConcurrentApplications: []string{
			"Chrome (1.8GB)", "Docker (1.2GB)", "Visual Studio (950MB)", "Teams (380MB)",
		},
		PageFaultsPerSecond:     850,
		ContextSwitchesPerSec:   12500,
		ThreadingEffDegradation: hybridEffDegradation,
		Scenario:                "Multithreaded with Memory Contention",
	}

	return dataset.Dataset{
		Scenario:  Hybrid,
		Metadata:  md,
		Timestamp: timeutil.Time(now),
		Functions: functions,
		Summary:   hybridSummary(functions, totalTime, baselineTotal),
	}
}

func hybridMetrics(r *rand.Rand, fp baseline.FunctionProfile) dataset.FunctionMetrics {
	effectiveImprovement := 1 + (fp.Hybrid.Improvement-1)*fp.Hybrid.Efficiency
	threadedTime := fp.TotalTime / effectiveImprovement
	finalTime := threadedTime * fp.Hybrid.Contention
	netRatio := finalTime / fp.TotalTime
	hybridStd := fp.StdDev * 1.4

	actualCalls := jitterCalls(r, fp.CallCount, 0.96, 1.04)

	avgPerCall := finalTime / float64(actualCalls)
	var stdPerCall float64
	if actualCalls > 1 {
		stdPerCall = hybridStd / float64(actualCalls)
	}
	minTime, maxTime := sampleCallTimes(r, actualCalls, avgPerCall, stdPerCall, hybridOutlier)

	totalTime := math.Max(0.001, finalTime+normal(r, 0, hybridStd*0.12))

	return dataset.FunctionMetrics{
		TotalTime:      mathutil.Round(totalTime, 6),
		CallCount:      actualCalls,
		AvgTimePerCall: mathutil.Round(totalTime/float64(actualCalls), 6),
		MinTime:        mathutil.Round(minTime, 6),
		MaxTime:        mathutil.Round(maxTime, 6),
		StdDeviation:   mathutil.Round(stdPerCall, 6),
		HybridMetrics: &dataset.HybridMetrics{
			BaselineTime:           mathutil.Round(fp.TotalTime, 6),
			ThreadImprovement:      mathutil.Round(fp.Hybrid.Improvement, 2),
			ThreadEfficiency:       mathutil.Round(fp.Hybrid.Efficiency, 2),
			ContentionFactor:       mathutil.Round(fp.Hybrid.Contention, 2),
			EffectiveImprovement:   mathutil.Round(effectiveImprovement, 2),
			NetPerformanceRatio:    mathutil.Round(netRatio, 2),
			NetEffect:              fp.Hybrid.NetEffect,
			TimeSavedFromThreading: mathutil.Round(fp.TotalTime-threadedTime, 6),
			TimeLostToContention:   mathutil.Round(finalTime-threadedTime, 6),
			NetTimeChange:          mathutil.Round(finalTime-fp.TotalTime, 6),
		},
	}
}

// hybridOutlier models memory pressure spikes, thread synchronization
// stalls and cache miss penalties, in decreasing order of severity.
func hybridOutlier(r *rand.Rand, t float64) float64 {
	if r.Float64() < 0.03 {
		return t * uniform(r, 8, 20)
	}
	if r.Float64() < 0.08 {
		return t * uniform(r, 2, 5)
	}
	if r.Float64() < 0.12 {
		return t * uniform(r, 1.5, 3)
	}
	return t
}

func hybridSummary(functions map[string]dataset.FunctionMetrics, totalTime, baselineTotal float64) dataset.Summary {
	var savedThreading, lostContention float64
	for _, fm := range functions {
		savedThreading += fm.HybridMetrics.TimeSavedFromThreading
		lostContention += fm.HybridMetrics.TimeLostToContention
	}
	netChange := totalTime - baselineTotal

	s := dataset.Summary{
		TotalSimulationTime:         mathutil.Round(totalTime, 3),
		BaselineSimulationTime:      mathutil.Round(baselineTotal, 3),
		NetPerformanceChangePercent: mathutil.Round(netChange/baselineTotal*100, 1),
		OverallPerformanceRatio:     mathutil.Round(totalTime/baselineTotal, 2),
		TotalFunctionCalls:          dataset.TotalCalls(functions),
		ThreadingAnalysis: &dataset.ThreadingAnalysis{
			TimeSavedFromThreading:  mathutil.Round(savedThreading, 3),
			TimeLostToContention:    mathutil.Round(lostContention, 3),
			NetTimeChange:           mathutil.Round(netChange, 3),
			ThreadingEffDegradation: hybridEffDegradation,
		},
		TopTimeConsumers:    dataset.TopTimeConsumers(functions),
		MostCalledFunctions: dataset.MostCalled(functions),
	}
	for i, entry := range s.TopTimeConsumers {
		hm := functions[entry.Function].HybridMetrics
		netChangePercent := mathutil.Round((hm.NetPerformanceRatio-1)*100, 1)
		s.TopTimeConsumers[i].NetEffect = hm.NetEffect
		s.TopTimeConsumers[i].NetChangePercent = &netChangePercent
	}
	s.BiggestNetGainers, s.BiggestNetLosers = netMovers(functions)
	return s
}

// netMovers splits functions into runs that came out ahead of their
// baseline and runs that fell behind it.
func netMovers(functions map[string]dataset.FunctionMetrics) ([]dataset.NetGainerEntry, []dataset.NetLoserEntry) {
	type mover struct {
		name string
		hm   *dataset.HybridMetrics
	}
	var gainers, losers []mover
	for _, name := range dataset.SortedByTime(functions) {
		hm := functions[name].HybridMetrics
		switch {
		case hm.NetPerformanceRatio < 1.0:
			gainers = append(gainers, mover{name, hm})
		case hm.NetPerformanceRatio > 1.0:
			losers = append(losers, mover{name, hm})
		}
	}
	sort.SliceStable(gainers, func(i, j int) bool {
		return gainers[i].hm.NetTimeChange < gainers[j].hm.NetTimeChange
	})
	sort.SliceStable(losers, func(i, j int) bool {
		return losers[i].hm.NetTimeChange > losers[j].hm.NetTimeChange
	})
	if len(gainers) > 5 {
		gainers = gainers[:5]
	}
	if len(losers) > 5 {
		losers = losers[:5]
	}

	gainerEntries := make([]dataset.NetGainerEntry, 0, len(gainers))
	for _, m := range gainers {
		gainerEntries = append(gainerEntries, dataset.NetGainerEntry{
			Function:           m.name,
			TimeSaved:          math.Abs(m.hm.NetTimeChange),
			ImprovementPercent: mathutil.Round((1-m.hm.NetPerformanceRatio)*100, 1),
		})
	}
	loserEntries := make([]dataset.NetLoserEntry, 0, len(losers))
	for _, m := range losers {
		loserEntries = append(loserEntries, dataset.NetLoserEntry{
			Function:           m.name,
			TimeAdded:          m.hm.NetTimeChange,
			DegradationPercent: mathutil.Round((m.hm.NetPerformanceRatio-1)*100, 1),
		})
	}
	return gainerEntries, loserEntries
}
