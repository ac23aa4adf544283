package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/f-sartori-v/mobauto2-decomp/core/state"
	"github.com/f-sartori-v/mobauto2-decomp/infra/logger"
)

var (
	genShuttles int
	genDemand   int
	genHorizon  int
	genOut      string
	genSeed     int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write fake subproblem.json and demand.json inputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if genShuttles < 0 || genDemand < 0 {
			return fmt.Errorf("shuttles and demand must not be negative")
		}
		seed := genSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		if err := os.MkdirAll(genOut, 0o755); err != nil {
			return err
		}
		if err := writeJSON(filepath.Join(genOut, "subproblem.json"), state.GenerateSubproblem(rng, genShuttles)); err != nil {
			return err
		}
		if err := writeJSON(filepath.Join(genOut, "demand.json"), state.GenerateDemand(rng, genDemand, genHorizon)); err != nil {
			return err
		}
		logger.New("generate").Infof("wrote %d shuttles and %d requests to %s (seed %d)", genShuttles, genDemand, genOut, seed)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&genShuttles, "shuttles", 2, "number of shuttles")
	generateCmd.Flags().IntVar(&genDemand, "demand", 16, "number of requests")
	generateCmd.Flags().IntVar(&genHorizon, "horizon", 120, "latest request time in minutes")
	generateCmd.Flags().StringVar(&genOut, "out", ".", "output directory")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed, time based when 0")
	rootCmd.AddCommand(generateCmd)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
