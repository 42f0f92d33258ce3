package dataset

import (
	"sort"

	"github.com/enersim/simprof/internal/mathutil"
)

type (
	// Summary aggregates a run's functions. Scenario-specific fields are
	// only set by the generator that computes them.
	Summary struct {
		TotalSimulationTime    float64 `json:"total_simulation_time"`
		BaselineSimulationTime float64 `json:"baseline_simulation_time,omitempty"`
		TotalFunctionCalls     uint64  `json:"total_function_calls"`

		// Concurrency matrix cells.
		PerformanceRatio      float64 `json:"performance_ratio,omitempty"`
		ConcurrentSimulations int     `json:"concurrent_simulations,omitempty"`
		ThreadsPerSimulation  int     `json:"threads_per_simulation,omitempty"`
		TotalThreads          int     `json:"total_threads,omitempty"`

		// Memory-contended runs.
		OverallDegradationPercent float64         `json:"overall_performance_degradation_percent,omitempty"`
		AdditionalContentionTime  float64         `json:"additional_time_due_to_contention,omitempty"`
		MostImpactedByContention  []ImpactedEntry `json:"most_impacted_by_contention,omitempty"`

		// Multithreaded runs.
		OverallImprovementPercent float64         `json:"overall_performance_improvement_percent,omitempty"`
		TimeSavedThroughThreading float64         `json:"time_saved_through_threading,omitempty"`
		OverallSpeedupFactor      float64         `json:"overall_speedup_factor,omitempty"`
		MostImprovedByThreading   []ImprovedEntry `json:"most_improved_by_threading,omitempty"`

		// Hybrid runs.
		NetPerformanceChangePercent float64            `json:"net_performance_change_percent,omitempty"`
		OverallPerformanceRatio     float64            `json:"overall_performance_ratio,omitempty"`
		ThreadingAnalysis           *ThreadingAnalysis `json:"threading_analysis,omitempty"`
		BiggestNetGainers           []NetGainerEntry   `json:"biggest_net_gainers,omitempty"`
		BiggestNetLosers            []NetLoserEntry    `json:"biggest_net_losers,omitempty"`

		TopTimeConsumers    []ConsumerEntry `json:"top_5_time_consumers"`
		MostCalledFunctions []CalledEntry   `json:"most_called_functions,omitempty"`
	}

	ConsumerEntry struct {
		Function   string `json:"function"`
		Time       float64 `json:"time"`
		Percentage float64 `json:"percentage"`

		DegradationPercent float64  `json:"degradation_percent,omitempty"`
		ImprovementPercent float64  `json:"improvement_percent,omitempty"`
		NetEffect          string   `json:"net_effect,omitempty"`
		NetChangePercent   *float64 `json:"net_change_percent,omitempty"`
	}

	CalledEntry struct {
		Function string  `json:"function"`
		Calls    uint64  `json:"calls"`
		AvgTime  float64 `json:"avg_time"`
	}

	ImpactedEntry struct {
		Function           string  `json:"function"`
		DegradationPercent float64 `json:"degradation_percent"`
		TimeIncrease       float64 `json:"time_increase"`
	}

	ImprovedEntry struct {
		Function           string  `json:"function"`
		TimeSaved          float64 `json:"time_saved"`
		SpeedupFactor      float64 `json:"speedup_factor"`
		ImprovementPercent float64 `json:"improvement_percent"`
	}

	NetGainerEntry struct {
		Function           string  `json:"function"`
		TimeSaved          float64 `json:"time_saved"`
		ImprovementPercent float64 `json:"improvement_percent"`
	}

	NetLoserEntry struct {
		Function           string  `json:"function"`
		TimeAdded          float64 `json:"time_added"`
		DegradationPercent float64 `json:"degradation_percent"`
	}

	ThreadingAnalysis struct {
		TimeSavedFromThreading  float64 `json:"time_saved_from_threading"`
		TimeLostToContention    float64 `json:"time_lost_to_contention"`
		NetTimeChange           float64 `json:"net_time_change"`
		ThreadingEffDegradation string  `json:"threading_efficiency_degradation,omitempty"`
	}
)

const topEntries = 5

// TotalTime sums total_time across all functions.
func TotalTime(functions map[string]FunctionMetrics) float64 {
	var total float64
	for _, fm := range functions {
		total += fm.TotalTime
	}
	return total
}

// TotalCalls sums call_count across all functions.
func TotalCalls(functions map[string]FunctionMetrics) uint64 {
	var total uint64
	for _, fm := range functions {
		total += fm.CallCount
	}
	return total
}

// SetPercentages recomputes each function's share of the total run time
// so that the shares sum to ~100.
func SetPercentages(functions map[string]FunctionMetrics, totalTime float64) {
	for name, fm := range functions {
		fm.PercentageOfTotal = mathutil.Round((fm.TotalTime/totalTime)*100, 2)
		functions[name] = fm
	}
}

// SortedByTime returns function names ordered by descending total_time.
func SortedByTime(functions map[string]FunctionMetrics) []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if functions[names[i]].TotalTime != functions[names[j]].TotalTime {
			return functions[names[i]].TotalTime > functions[names[j]].TotalTime
		}
		return names[i] < names[j]
	})
	return names
}

// SortedByCalls returns function names ordered by descending call_count.
func SortedByCalls(functions map[string]FunctionMetrics) []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if functions[names[i]].CallCount != functions[names[j]].CallCount {
			return functions[names[i]].CallCount > functions[names[j]].CallCount
		}
		return names[i] < names[j]
	})
	return names
}

// TopTimeConsumers returns the highest total_time functions.
func TopTimeConsumers(functions map[string]FunctionMetrics) []ConsumerEntry {
	names := SortedByTime(functions)
	if len(names) > topEntries {
		names = names[:topEntries]
	}
	entries := make([]ConsumerEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, ConsumerEntry{
			Function:   name,
			Time:       functions[name].TotalTime,
			Percentage: functions[name].PercentageOfTotal,
		})
	}
	return entries
}

// MostCalled returns the most frequently called functions.
func MostCalled(functions map[string]FunctionMetrics) []CalledEntry {
	names := SortedByCalls(functions)
	if len(names) > topEntries {
		names = names[:topEntries]
	}
	entries := make([]CalledEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, CalledEntry{
			Function: name,
			Calls:    functions[name].CallCount,
			AvgTime:  functions[name].AvgTimePerCall,
		})
	}
	return entries
}
