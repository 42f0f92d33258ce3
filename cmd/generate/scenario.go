package main

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/enersim/simprof/internal/dataset"
	"github.com/enersim/simprof/internal/scenario"
)

type scenarioSpec struct {
	name     string
	short    string
	filename string
	generate func(*rand.Rand, time.Time) dataset.Dataset
}

var scenarioSpecs = []scenarioSpec{
	{
		name:     scenario.Baseline,
		short:    "Fabricate a single-threaded, uncontended annual run",
		filename: "energyplus_profiling_data.json",
		generate: scenario.GenerateBaseline,
	},
	{
		name:     scenario.Contended,
		short:    "Fabricate a run degraded by memory contention",
		filename: "energyplus_profiling_contended.json",
		generate: scenario.GenerateContended,
	},
	{
		name:     scenario.Multithreaded,
		short:    "Fabricate a run improved by selective multithreading",
		filename: "energyplus_profiling_multithreaded.json",
		generate: scenario.GenerateMultithreaded,
	},
	{
		name:     scenario.Hybrid,
		short:    "Fabricate a multithreaded run under memory contention",
		filename: "energyplus_profiling_hybrid.json",
		generate: scenario.GenerateHybrid,
	},
}

func scenarioCommands() []*cobra.Command {
	commands := make([]*cobra.Command, 0, len(scenarioSpecs))
	for _, spec := range scenarioSpecs {
		spec := spec
		commands = append(commands, &cobra.Command{
			Use:   spec.name,
			Short: spec.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				d := spec.generate(scenario.NewRand(effectiveSeed()), time.Now().UTC())

				path := output
				if path == "" {
					path = spec.filename
				}
				if err := dataset.WriteFile(path, d); err != nil {
					return err
				}
				key := dataset.StoragePath(d.Scenario, stem(path))
				if err := uploadDataset(cmd.Context(), key, d); err != nil {
					return err
				}
				if !quiet {
					printSummary(d)
				}
				fmt.Printf("Dataset written to %s\n", path)
				return nil
			},
		})
	}
	return commands
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
