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

// Default sweep axes for the concurrency matrix.
var (
	DefaultThreadCounts   = []int{1, 2, 4, 8, 16, 32}
	DefaultConcurrentSims = []int{1, 2, 4, 8, 16, 32, 64}
)

// Factors are the concurrency penalties and gains applied to one cell
// of the matrix.
type Factors struct {
	MemoryContention     float64
	IOContention         float64
	CacheContention      float64
	CPUEfficiency        float64
	ContextSwitchPenalty float64
	TotalThreads         int
}

// CalculateFactors derives the performance factors for a cell.
// Contention grows linearly with the number of concurrent simulations;
// CPU efficiency follows an Amdahl's law approximation with a 70%
// parallel fraction, taxed 3% per extra thread for thread management.
func CalculateFactors(concurrentSims, threadsPerSim int) Factors {
	f := Factors{
		MemoryContention: 1 + float64(concurrentSims-1)*0.15,
		IOContention:     1 + float64(concurrentSims-1)*0.25,
		CacheContention:  1 + float64(concurrentSims-1)*0.08,
		CPUEfficiency:    1,
		TotalThreads:     concurrentSims * threadsPerSim,
	}
	if threadsPerSim > 1 {
		const parallelFraction = 0.7
		f.CPUEfficiency = 1 / (1 - parallelFraction + parallelFraction/float64(threadsPerSim))
		threadOverhead := 1 + float64(threadsPerSim-1)*0.03
		f.CPUEfficiency /= threadOverhead
	}
	f.ContextSwitchPenalty = 1 + float64(f.TotalThreads-1)*0.002
	return f
}

// applyClassEffects adjusts a function's base time for the cell's
// factors according to its workload class. The result never drops below
// 10% of the base time.
func applyClassEffects(class baseline.Class, baseTime float64, f Factors) float64 {
	adjusted := baseTime * f.ContextSwitchPenalty

	switch class {
	case baseline.ClassIOIntensive:
		adjusted *= f.IOContention
		adjusted *= f.MemoryContention * 0.8
		if f.CPUEfficiency > 1 {
			adjusted /= 1 + (f.CPUEfficiency-1)*0.1
		}
	case baseline.ClassCPUIntensive:
		adjusted *= f.CacheContention
		adjusted /= f.CPUEfficiency
		adjusted *= f.MemoryContention * 0.6
	case baseline.ClassParallelizable:
		adjusted /= f.CPUEfficiency * 1.1
		adjusted *= f.CacheContention * 0.8
		adjusted *= f.MemoryContention * 0.5
	case baseline.ClassMemoryIntensive:
		adjusted *= f.MemoryContention * 1.2
		adjusted *= f.CacheContention
		adjusted /= f.CPUEfficiency * 0.8
	case baseline.ClassMathFunction:
		adjusted *= f.CacheContention * 1.1
		if f.CPUEfficiency > 1 {
			adjusted /= 1 + (f.CPUEfficiency-1)*0.3
		}
	default:
		adjusted *= f.MemoryContention * 0.7
		adjusted *= f.CacheContention * 0.9
		adjusted /= f.CPUEfficiency * 0.7
	}

	return math.Max(adjusted, baseTime*0.1)
}

// GenerateMatrixCell fabricates the dataset for one cell of the
// concurrency matrix.
func GenerateMatrixCell(r *rand.Rand, now time.Time, concurrentSims, threadsPerSim int) dataset.Dataset {
	factors := CalculateFactors(concurrentSims, threadsPerSim)

	functions := make(map[string]dataset.FunctionMetrics, len(baseline.Functions))
	var totalTime float64
	for _, fp := range baseline.Functions {
		fm := matrixMetrics(r, fp, factors)
		functions[fp.Name] = fm
		totalTime += fm.TotalTime
	}
	dataset.SetPercentages(functions, totalTime)

	md := dataset.NewMetadata()
	md.TotalSimulationTime = mathutil.Round(totalTime, 6)
	md.SystemConditions = matrixSystemConditions(concurrentSims, threadsPerSim, factors)
	md.PerformanceFactors = &dataset.PerformanceFactors{
		MemoryContentionFactor: mathutil.Round(factors.MemoryContention, 3),
		IOContentionFactor:     mathutil.Round(factors.IOContention, 3),
		CacheContentionFactor:  mathutil.Round(factors.CacheContention, 3),
		CPUEfficiencyFactor:    mathutil.Round(factors.CPUEfficiency, 3),
		ContextSwitchPenalty:   mathutil.Round(factors.ContextSwitchPenalty, 3),
	}

	return dataset.Dataset{
		Scenario:  Matrix,
		Metadata:  md,
		Timestamp: timeutil.Time(now),
		Functions: functions,
		Summary: dataset.Summary{
			TotalSimulationTime:    mathutil.Round(totalTime, 3),
			BaselineSimulationTime: baseline.TotalSimulationTime,
			PerformanceRatio:       mathutil.Round(totalTime/baseline.TotalSimulationTime, 3),
			TotalFunctionCalls:     dataset.TotalCalls(functions),
			ConcurrentSimulations:  concurrentSims,
			ThreadsPerSimulation:   threadsPerSim,
			TotalThreads:           factors.TotalThreads,
			TopTimeConsumers:       dataset.TopTimeConsumers(functions),
			MostCalledFunctions:    dataset.MostCalled(functions),
		},
	}
}

func matrixMetrics(r *rand.Rand, fp baseline.FunctionProfile, factors Factors) dataset.FunctionMetrics {
	adjusted := applyClassEffects(fp.Class, fp.TotalTime, factors)
	finalTime := adjusted * uniform(r, 0.95, 1.05)

	var avgPerCall float64
	if fp.MatrixCalls > 0 {
		avgPerCall = finalTime / float64(fp.MatrixCalls)
	}

	return dataset.FunctionMetrics{
		TotalTime:      mathutil.Round(finalTime, 6),
		CallCount:      fp.MatrixCalls,
		AvgTimePerCall: mathutil.Round(avgPerCall, 6),
		MinTime:        mathutil.Round(avgPerCall*uniform(r, 0.1, 0.3), 6),
		MaxTime:        mathutil.Round(avgPerCall*uniform(r, 3, 8), 6),
		StdDeviation:   mathutil.Round(avgPerCall*uniform(r, 0.2, 0.4), 6),
	}
}

func matrixSystemConditions(concurrentSims, threadsPerSim int, factors Factors) *dataset.SystemConditions {
	const baseMemoryGB = 2.1
	memoryOverhead := 1 + float64(concurrentSims-1)*0.3
	estimatedMemory := baseMemoryGB * float64(concurrentSims) * memoryOverhead

	return &dataset.SystemConditions{
		ConcurrentSimulations:  concurrentSims,
		ThreadsPerSimulation:   threadsPerSim,
		TotalThreads:           factors.TotalThreads,
		EstimatedMemoryUsageGB: mathutil.Round(estimatedMemory, 1),
		CPUUtilizationPercent:  math.Min(95, float64(factors.TotalThreads)*12),
		SchedulerScenario:      schedulerScenario(factors.TotalThreads),
		ResourceContention:     contentionLevel(factors),
	}
}

func schedulerScenario(totalThreads int) string {
	switch {
	case totalThreads <= 4:
		return "Low contention"
	case totalThreads <= 16:
		return "Moderate contention"
	case totalThreads <= 64:
		return "High contention"
	default:
		return "Severe contention"
	}
}

func contentionLevel(f Factors) string {
	avg := (f.MemoryContention + f.IOContention + f.CacheContention + f.ContextSwitchPenalty) / 4
	switch {
	case avg < 1.2:
		return "Low"
	case avg < 1.5:
		return "Moderate"
	case avg < 2.0:
		return "High"
	default:
		return "Severe"
	}
}
