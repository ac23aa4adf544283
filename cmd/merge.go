package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/f-sartori-v/mobauto2-decomp/core/state"
)

var (
	mergeSrc state.Sources
	mergeOut string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Combine base, subproblem and demand inputs into one document",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := state.Merge(mergeSrc)
		if err != nil {
			return err
		}
		if mergeOut == "" {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}
		return os.WriteFile(mergeOut, append(data, '\n'), 0o644)
	},
}

func init() {
	mergeCmd.Flags().StringVar(&mergeSrc.Base, "base", "base.yaml", "base parameters")
	mergeCmd.Flags().StringVar(&mergeSrc.Subproblem, "subproblem", "subproblem.json", "per-shuttle state")
	mergeCmd.Flags().StringVar(&mergeSrc.Demand, "demand", "demand.json", "passenger requests")
	mergeCmd.Flags().StringVarP(&mergeOut, "out", "o", "", "output file, stdout when empty")
	rootCmd.AddCommand(mergeCmd)
}
