// Package compare computes per-function performance ratios between a
// baseline profiling dataset and one or more measurement datasets.
package compare

import (
	"sort"

	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/errorutil"
	"github.com/enersim/simprof/internal/mathutil"
	"github.com/enersim/simprof/internal/quantile"
)

type (
	// Measurement is a named dataset compared against the baseline.
	Measurement struct {
		Name    string          `json:"name"`
		Dataset dataset.Dataset `json:"dataset"`
	}

	// Entry is one function's ratio within a comparison. A ratio above
	// 1.0 means the measurement is slower than the baseline.
	Entry struct {
		Function        string  `json:"function"`
		BaselineTime    float64 `json:"baseline_time"`
		MeasurementTime float64 `json:"measurement_time"`
		Ratio           float64 `json:"ratio"`
	}

	// Comparison holds one measurement's ratios over the functions
	// common to every dataset in the comparison.
	Comparison struct {
		Name         string  `json:"name"`
		Entries      []Entry `json:"entries"`
		OverallRatio float64 `json:"overall_ratio"`
	}

	// Stats summarize the distribution of ratios in a comparison.
	Stats struct {
		Min  float64 `json:"min"`
		Max  float64 `json:"max"`
		Mean float64 `json:"mean"`
		P75  float64 `json:"p75"`
		P95  float64 `json:"p95"`
	}

	Verdict string
)

const (
	// Verdicts use a 5% dead band around the baseline so jitter is not
	// reported as a change.
	VerdictImprovement Verdict = "improvement"
	VerdictDegradation Verdict = "degradation"
	VerdictNeutral     Verdict = "neutral"
)

// Classify buckets a ratio against the 5% dead band.
func Classify(ratio float64) Verdict {
	switch {
	case ratio < 0.95:
		return VerdictImprovement
	case ratio > 1.05:
		return VerdictDegradation
	default:
		return VerdictNeutral
	}
}

// CommonFunctions returns the functions present in the baseline and in
// every measurement, in alphabetical order. It errors when the
// intersection is empty.
func CommonFunctions(baseline dataset.Dataset, measurements []Measurement) ([]string, error) {
	common := make(map[string]struct{}, len(baseline.Functions))
	for name := range baseline.Functions {
		common[name] = struct{}{}
	}
	for _, m := range measurements {
		for name := range common {
			if _, ok := m.Dataset.Functions[name]; !ok {
				delete(common, name)
			}
		}
	}
	if len(common) == 0 {
		return nil, errorutil.ErrNoCommonFunctions
	}

	names := make([]string, 0, len(common))
	for name := range common {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Compare calculates each measurement's ratios against the baseline
// over their common functions.
func Compare(baseline dataset.Dataset, measurements []Measurement) ([]Comparison, []string, error) {
	functions, err := CommonFunctions(baseline, measurements)
	if err != nil {
		return nil, nil, err
	}

	comparisons := make([]Comparison, 0, len(measurements))
	for _, m := range measurements {
		c := Comparison{
			Name:    m.Name,
			Entries: make([]Entry, 0, len(functions)),
		}
		var totalBaseline, totalMeasurement float64
		for _, name := range functions {
			baselineTime := baseline.Functions[name].TotalTime
			measurementTime := m.Dataset.Functions[name].TotalTime
			ratio := 1.0
			if baselineTime > 0 {
				ratio = measurementTime / baselineTime
			}
			c.Entries = append(c.Entries, Entry{
				Function:        name,
				BaselineTime:    baselineTime,
				MeasurementTime: measurementTime,
				Ratio:           ratio,
			})
			totalBaseline += baselineTime
			totalMeasurement += measurementTime
		}
		c.OverallRatio = 1.0
		if totalBaseline > 0 {
			c.OverallRatio = totalMeasurement / totalBaseline
		}
		comparisons = append(comparisons, c)
	}
	return comparisons, functions, nil
}

// Ratios returns the comparison's ratios in entry order.
func (c Comparison) Ratios() []float64 {
	ratios := make([]float64, 0, len(c.Entries))
	for _, e := range c.Entries {
		ratios = append(ratios, e.Ratio)
	}
	return ratios
}

// Stats summarizes the comparison's ratio distribution.
func (c Comparison) Stats() Stats {
	ratios := c.Ratios()
	if len(ratios) == 0 {
		return Stats{}
	}
	sort.Float64s(ratios)

	mean, _ := quantile.Mean(ratios)
	return Stats{
		Min:  ratios[0],
		Max:  ratios[len(ratios)-1],
		Mean: mathutil.Round(mean, 6),
		P75:  quantile.PercentileSorted(ratios, 0.75),
		P95:  quantile.PercentileSorted(ratios, 0.95),
	}
}
