package dataset

import (
	"fmt"

	"github.com/enersim/simprof/internal/timeutil"
)

type (
	// Dataset is a complete fabricated profiling run: per-function timings
	// with metadata describing the conditions they were generated under.
	Dataset struct {
		ID        string                     `json:"id,omitempty"`
		Scenario  string                     `json:"scenario,omitempty"`
		Metadata  Metadata                   `json:"metadata"`
		Timestamp timeutil.Time              `json:"timestamp"`
		Functions map[string]FunctionMetrics `json:"functions"`
		Summary   Summary                    `json:"summary"`
	}

	Metadata struct {
		BuildingType        string              `json:"building_type"`
		ClimateZone         string              `json:"climate_zone"`
		SimulationPeriod    string              `json:"simulation_period"`
		Timestep            string              `json:"timestep"`
		TotalSimulationTime float64             `json:"total_simulation_time"`
		SystemConditions    *SystemConditions   `json:"system_conditions,omitempty"`
		PerformanceFactors  *PerformanceFactors `json:"performance_factors,omitempty"`
	}

	// SystemConditions describe the fictional host the run executed on.
	// Which fields are set depends on the scenario.
	SystemConditions struct {
		ConcurrentSimulations  int     `json:"concurrent_simulations,omitempty"`
		ThreadsPerSimulation   int     `json:"threads_per_simulation,omitempty"`
		TotalThreads           int     `json:"total_threads,omitempty"`
		EstimatedMemoryUsageGB float64 `json:"estimated_memory_usage_gb,omitempty"`
		CPUUtilizationPercent  float64 `json:"cpu_utilization_percent,omitempty"`
		SchedulerScenario      string  `json:"scheduler_scenario,omitempty"`
		ResourceContention     string  `json:"resource_contention_level,omitempty"`

		MemoryPressure          string   `json:"memory_pressure,omitempty"`
		ConcurrentApplications  []string `json:"concurrent_applications,omitempty"`
		AvailableMemory         string   `json:"available_memory,omitempty"`
		SwapActivity            string   `json:"swap_activity,omitempty"`
		CacheHitRatio           string   `json:"cache_hit_ratio,omitempty"`
		PageFaultsPerSecond     int      `json:"page_faults_per_second,omitempty"`
		ContextSwitchesPerSec   int      `json:"context_switches_per_second,omitempty"`
		CPUCores                int      `json:"cpu_cores,omitempty"`
		ThreadsAvailable        int      `json:"threads_available,omitempty"`
		ThreadPoolSize          int      `json:"thread_pool_size,omitempty"`
		MultithreadingStrategy  string   `json:"multithreading_strategy,omitempty"`
		ParallelZones           int      `json:"parallel_zones,omitempty"`
		ParallelSurfaces        int      `json:"parallel_surfaces,omitempty"`
		ThreadingEffDegradation string   `json:"threading_efficiency_degradation,omitempty"`
		Scenario                string   `json:"scenario,omitempty"`
	}

	// PerformanceFactors are the concurrency-matrix multipliers the run was
	// fabricated with.
	PerformanceFactors struct {
		MemoryContentionFactor float64 `json:"memory_contention_factor"`
		IOContentionFactor     float64 `json:"io_contention_factor"`
		CacheContentionFactor  float64 `json:"cache_contention_factor"`
		CPUEfficiencyFactor    float64 `json:"cpu_efficiency_factor"`
		ContextSwitchPenalty   float64 `json:"context_switch_penalty"`
	}

	FunctionMetrics struct {
		TotalTime         float64 `json:"total_time"`
		CallCount         uint64  `json:"call_count"`
		AvgTimePerCall    float64 `json:"avg_time_per_call"`
		MinTime           float64 `json:"min_time"`
		MaxTime           float64 `json:"max_time"`
		StdDeviation      float64 `json:"std_deviation"`
		PercentageOfTotal float64 `json:"percentage_of_total"`

		ContentionMetrics *ContentionMetrics `json:"contention_metrics,omitempty"`
		ThreadingMetrics  *ThreadingMetrics  `json:"threading_metrics,omitempty"`
		HybridMetrics     *HybridMetrics     `json:"hybrid_metrics,omitempty"`
	}

	ContentionMetrics struct {
		BaselineTime           float64 `json:"baseline_time"`
		ContentionFactor       float64 `json:"contention_factor"`
		DegradationPercent     float64 `json:"performance_degradation_percent"`
		VariabilityIncrease    float64 `json:"variability_increase_factor"`
	}

	ThreadingMetrics struct {
		BaselineTime       float64 `json:"baseline_time"`
		ImprovementFactor  float64 `json:"improvement_factor"`
		ThreadEfficiency   float64 `json:"thread_efficiency"`
		ActualSpeedup      float64 `json:"actual_speedup"`
		ImprovementPercent float64 `json:"performance_improvement_percent"`
		TimeSaved          float64 `json:"time_saved"`
	}

	HybridMetrics struct {
		BaselineTime           float64 `json:"baseline_time"`
		ThreadImprovement      float64 `json:"thread_improvement_factor"`
		ThreadEfficiency       float64 `json:"thread_efficiency"`
		ContentionFactor       float64 `json:"contention_factor"`
		EffectiveImprovement   float64 `json:"effective_thread_improvement"`
		NetPerformanceRatio    float64 `json:"net_performance_ratio"`
		NetEffect              string  `json:"net_effect"`
		TimeSavedFromThreading float64 `json:"time_saved_from_threading"`
		TimeLostToContention   float64 `json:"time_lost_to_contention"`
		NetTimeChange          float64 `json:"net_time_change"`
	}
)

// NewMetadata returns the reference building metadata shared by every
// fabricated run.
func NewMetadata() Metadata {
	return Metadata{
		BuildingType:     "Commercial Office",
		ClimateZone:      "4A",
		SimulationPeriod: "Annual",
		Timestep:         "4 per hour",
	}
}

// StoragePath returns the object key a dataset is stored under.
func StoragePath(scenario, id string) string {
	return fmt.Sprintf("%s/%s", scenario, id)
}

// MatrixStoragePath returns the object key for one cell of the
// concurrency matrix.
func MatrixStoragePath(concurrentSims, threadsPerSim int) string {
	return fmt.Sprintf("matrix/%02dsims/%02dthreads", concurrentSims, threadsPerSim)
}

// MatrixFilename returns the conventional on-disk name for one cell of
// the concurrency matrix.
func MatrixFilename(concurrentSims, threadsPerSim int) string {
	return fmt.Sprintf("energyplus_concurrent_%02dsims_%02dthreads.json", concurrentSims, threadsPerSim)
}
