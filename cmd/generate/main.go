package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/enersim/simprof/internal/logutil"
)

var (
	seed   int64
	output string
	quiet  bool

	rootCmd = &cobra.Command{
		Use:   "generate",
		Short: "Fabricate EnergyPlus profiling datasets",
		Long: `Fabricates fictional EnergyPlus profiling datasets: a baseline run,
degraded and improved variants of it, and full concurrency matrix sweeps.`,
	}
)

func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed, 0 derives one from the clock")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress the dataset summary")
	rootCmd.PersistentFlags().StringVar(&bucketURL, "bucket", "", "optional bucket URL to mirror datasets into")

	for _, cmd := range scenarioCommands() {
		cmd.Flags().StringVarP(&output, "output", "o", "", "output file, defaults to a scenario-specific name")
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(matrixCmd())
}

// effectiveSeed resolves the seed flag, deriving one from the clock
// when unset so repeated runs differ.
func effectiveSeed() int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func main() {
	logutil.ConfigureLogger()

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
