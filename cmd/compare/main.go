package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/enersim/simprof/internal/chart"
	"github.com/enersim/simprof/internal/compare"
	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/logutil"
)

var (
	output        string
	deviationBars bool
	quiet         bool

	rootCmd = &cobra.Command{
		Use:   "compare <baseline.json> <measurement.json> [measurement.json...]",
		Short: "Compare profiling datasets against a baseline",
		Long: `Compares one or more fabricated profiling datasets against a baseline
run and renders a grid of per-function ratio charts as a PNG.`,
		Args: cobra.MinimumNArgs(2),
		RunE: run,
	}
)

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output PNG, defaults to <baseline>_multi_comparison.png")
	rootCmd.Flags().BoolVar(&deviationBars, "deviation-bars", false, "draw bars from the baseline instead of from zero")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the comparison summary")
}

func run(cmd *cobra.Command, args []string) error {
	baselinePath := args[0]
	baseline, err := dataset.ReadFile(baselinePath)
	if err != nil {
		return err
	}

	measurements := make([]compare.Measurement, 0, len(args)-1)
	for _, path := range args[1:] {
		d, err := dataset.ReadFile(path)
		if err != nil {
			return err
		}
		measurements = append(measurements, compare.Measurement{
			Name:    stem(path),
			Dataset: d,
		})
	}

	comparisons, functions, err := compare.Compare(baseline, measurements)
	if err != nil {
		return err
	}

	if !quiet {
		printComparisons(comparisons, len(functions))
	}

	path := output
	if path == "" {
		path = stem(baselinePath) + "_multi_comparison.png"
	}
	if err := chart.RenderGridFile(path, comparisons, chart.Options{DeviationBars: deviationBars}); err != nil {
		return err
	}
	fmt.Printf("Comparison chart written to %s\n", path)
	return nil
}

func printComparisons(comparisons []compare.Comparison, functionCount int) {
	fmt.Printf("\nCompared %d common functions across %d measurements\n\n", functionCount, len(comparisons))
	for _, c := range comparisons {
		stats := c.Stats()
		fmt.Printf("%s: overall ratio %.3f (%s)\n", c.Name, c.OverallRatio, compare.Classify(c.OverallRatio))
		fmt.Printf("  per-function ratios: min %.3f, mean %.3f, p75 %.3f, p95 %.3f, max %.3f\n",
			stats.Min, stats.Mean, stats.P75, stats.P95, stats.Max)
	}
	fmt.Println()
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func main() {
	logutil.ConfigureLogger()

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
