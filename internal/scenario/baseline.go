package scenario

import (
	"math"
	"math/rand"
	"time"

	"github.com/enersim/simprof/internal/baseline"
	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/mathutil"
	"github.com/enersim/simprof/internal/timeutil"
)

const (
	Baseline      = "baseline"
	Contended     = "contended"
	Multithreaded = "multithreaded"
	Hybrid        = "hybrid"
	Matrix        = "matrix"
)

// GenerateBaseline fabricates a single-threaded, uncontended annual run.
func GenerateBaseline(r *rand.Rand, now time.Time) dataset.Dataset {
	functions := make(map[string]dataset.FunctionMetrics, len(baseline.Functions))
	for _, fp := range baseline.Functions {
		functions[fp.Name] = baselineMetrics(r, fp)
	}

	totalTime := dataset.TotalTime(functions)
	dataset.SetPercentages(functions, totalTime)

	md := dataset.NewMetadata()
	md.TotalSimulationTime = totalTime

	return dataset.Dataset{
		Scenario:  Baseline,
		Metadata:  md,
		Timestamp: timeutil.Time(now),
		Functions: functions,
		Summary: dataset.Summary{
			TotalSimulationTime: mathutil.Round(totalTime, 3),
			TotalFunctionCalls:  dataset.TotalCalls(functions),
			TopTimeConsumers:    dataset.TopTimeConsumers(functions),
			MostCalledFunctions: dataset.MostCalled(functions),
		},
	}
}

func baselineMetrics(r *rand.Rand, fp baseline.FunctionProfile) dataset.FunctionMetrics {
	actualCalls := jitterCalls(r, fp.CallCount, 0.95, 1.05)

	avgPerCall := fp.TotalTime / float64(actualCalls)
	var stdPerCall float64
	if actualCalls > 1 {
		stdPerCall = fp.StdDev / float64(actualCalls)
	}
	minTime, maxTime := sampleCallTimes(r, actualCalls, avgPerCall, stdPerCall, nil)

	totalTime := math.Max(0.001, fp.TotalTime+normal(r, 0, fp.StdDev*0.1))

	return dataset.FunctionMetrics{
		TotalTime:      mathutil.Round(totalTime, 6),
		CallCount:      actualCalls,
		AvgTimePerCall: mathutil.Round(totalTime/float64(actualCalls), 6),
		MinTime:        mathutil.Round(minTime, 6),
		MaxTime:        mathutil.Round(maxTime, 6),
		StdDeviation:   mathutil.Round(stdPerCall, 6),
	}
}

// sampleCallTimes draws individual call durations to derive the min and
// max for a function. outlier, when set, stretches a drawn duration the
// way swap events or synchronization stalls would.
func sampleCallTimes(
	r *rand.Rand,
	calls uint64,
	avgPerCall, stdPerCall float64,
	outlier func(*rand.Rand, float64) float64,
) (minTime, maxTime float64) {
	n := int(calls)
	if n > sampleWindow {
		n = sampleWindow
	}
	for i := 0; i < n; i++ {
		t := math.Max(0.001, normal(r, avgPerCall, stdPerCall))
		if outlier != nil {
			t = outlier(r, t)
		}
		if i == 0 || t < minTime {
			minTime = t
		}
		if i == 0 || t > maxTime {
			maxTime = t
		}
	}
	if n == 0 {
		return avgPerCall, avgPerCall
	}
	return minTime, maxTime
}
