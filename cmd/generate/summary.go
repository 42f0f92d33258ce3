package main

import (
	"fmt"
	"strings"

	"github.com/enersim/simprof/internal/dataset"
)

// printSummary writes a human-readable digest of a fabricated run to
// stdout, including whichever scenario-specific sections the dataset
// carries.
func printSummary(d dataset.Dataset) {
	summary := d.Summary

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Printf("EnergyPlus Performance Profile - %s\n", strings.ToUpper(d.Scenario))
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Building Type: %s\n", d.Metadata.BuildingType)
	fmt.Printf("Climate Zone: %s\n", d.Metadata.ClimateZone)
	if sc := d.Metadata.SystemConditions; sc != nil {
		if sc.MemoryPressure != "" {
			fmt.Printf("Memory Pressure: %s\n", sc.MemoryPressure)
			fmt.Printf("Available Memory: %s\n", sc.AvailableMemory)
			fmt.Printf("Cache Hit Ratio: %s\n", sc.CacheHitRatio)
		}
		if sc.CPUCores > 0 {
			fmt.Printf("CPU Cores: %d\n", sc.CPUCores)
			fmt.Printf("Thread Pool Size: %d\n", sc.ThreadPoolSize)
		}
		if sc.ThreadingEffDegradation != "" {
			fmt.Printf("Threading Efficiency Degradation: %s\n", sc.ThreadingEffDegradation)
		}
	}
	fmt.Println()
	fmt.Printf("Total Simulation Time: %.2f seconds\n", summary.TotalSimulationTime)
	if summary.BaselineSimulationTime > 0 {
		fmt.Printf("Baseline Time (single-threaded, no contention): %.2f seconds\n", summary.BaselineSimulationTime)
	}
	fmt.Printf("Total Function Calls: %d\n", summary.TotalFunctionCalls)

	switch {
	case summary.OverallDegradationPercent != 0:
		fmt.Printf("Overall Performance Degradation: %.1f%%\n", summary.OverallDegradationPercent)
		fmt.Printf("Additional Time Due to Contention: %.2f seconds\n", summary.AdditionalContentionTime)
	case summary.OverallSpeedupFactor != 0:
		fmt.Printf("Overall Performance Improvement: %.1f%%\n", summary.OverallImprovementPercent)
		fmt.Printf("Time Saved Through Threading: %.2f seconds\n", summary.TimeSavedThroughThreading)
		fmt.Printf("Overall Speedup Factor: %.2fx\n", summary.OverallSpeedupFactor)
	case summary.ThreadingAnalysis != nil:
		fmt.Printf("Net Performance Change: %+.1f%%\n", summary.NetPerformanceChangePercent)
		fmt.Printf("Overall Performance Ratio: %.2fx\n", summary.OverallPerformanceRatio)
		fmt.Println()
		fmt.Println("COMPETING EFFECTS ANALYSIS:")
		fmt.Printf("  Time Saved from Threading: %.2f seconds\n", summary.ThreadingAnalysis.TimeSavedFromThreading)
		fmt.Printf("  Time Lost to Memory Contention: %.2f seconds\n", summary.ThreadingAnalysis.TimeLostToContention)
		fmt.Printf("  Net Time Change: %+.2f seconds\n", summary.ThreadingAnalysis.NetTimeChange)
	}

	fmt.Println("\nTop 5 Time-Consuming Functions:")
	fmt.Println(strings.Repeat("-", 75))
	for i, entry := range summary.TopTimeConsumers {
		line := fmt.Sprintf("%d. %-35s %8.2fs (%5.1f%%)", i+1, entry.Function, entry.Time, entry.Percentage)
		switch {
		case entry.DegradationPercent != 0:
			line += fmt.Sprintf(" +%.1f%% degradation", entry.DegradationPercent)
		case entry.ImprovementPercent != 0:
			line += fmt.Sprintf(" %.1f%% improvement", entry.ImprovementPercent)
		case entry.NetChangePercent != nil:
			line += fmt.Sprintf(" %+5.1f%% [%s]", *entry.NetChangePercent, entry.NetEffect)
		}
		fmt.Println(line)
	}

	if len(summary.BiggestNetGainers) > 0 {
		fmt.Println("\nBiggest Net Gainers (Threading > Contention):")
		fmt.Println(strings.Repeat("-", 60))
		for i, entry := range summary.BiggestNetGainers {
			fmt.Printf("%d. %-35s %.2fs saved (%.1f%%)\n", i+1, entry.Function, entry.TimeSaved, entry.ImprovementPercent)
		}
	}
	if len(summary.BiggestNetLosers) > 0 {
		fmt.Println("\nBiggest Net Losers (Contention > Threading):")
		fmt.Println(strings.Repeat("-", 60))
		for i, entry := range summary.BiggestNetLosers {
			fmt.Printf("%d. %-35s %.2fs added (%.1f%%)\n", i+1, entry.Function, entry.TimeAdded, entry.DegradationPercent)
		}
	}

	if len(summary.MostCalledFunctions) > 0 {
		fmt.Println("\nMost Called Functions:")
		fmt.Println(strings.Repeat("-", 60))
		for i, entry := range summary.MostCalledFunctions {
			fmt.Printf("%d. %-35s %10d calls (%.6fs avg)\n", i+1, entry.Function, entry.Calls, entry.AvgTime)
		}
	}
	fmt.Println()
}
