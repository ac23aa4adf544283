package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/f-sartori-v/mobauto2-decomp/core/metrics"
	"github.com/f-sartori-v/mobauto2-decomp/core/milp"
	"github.com/f-sartori-v/mobauto2-decomp/core/runlog"
	"github.com/f-sartori-v/mobauto2-decomp/core/state"
	"github.com/f-sartori-v/mobauto2-decomp/core/subproblem"
	"github.com/f-sartori-v/mobauto2-decomp/infra/logger"
	_ "github.com/f-sartori-v/mobauto2-decomp/infra/metrics"
	"github.com/f-sartori-v/mobauto2-decomp/infra/mqtt"
	_ "github.com/f-sartori-v/mobauto2-decomp/infra/solver/simplex"
	_ "github.com/f-sartori-v/mobauto2-decomp/infra/solver/stub"
)

var solveJSON bool

var solveCmd = &cobra.Command{
	Use:   "solve <merged.json>",
	Short: "Solve the subproblem described by a merged document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	log := logger.New("solve")
	path := args[0]

	st, err := state.NewLoader(logger.New("state")).Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	w, err := subproblem.NewWindow(st)
	if err != nil {
		return err
	}

	eng, err := milp.NewEngine(appCfg.Solver)
	if err != nil {
		return fmt.Errorf("solver %s: %w", appCfg.Solver.Type, err)
	}
	defer closeLogged(log, "solver", eng)

	sink, err := metrics.NewSolveSink(appCfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	defer func() {
		if f, ok := sink.(metrics.Flusher); ok {
			if err := f.Flush(); err != nil {
				log.Warnf("flush metrics: %v", err)
			}
		}
		if c, ok := sink.(io.Closer); ok {
			closeLogged(log, "metrics", c)
		}
	}()

	store, err := runlog.Open(appCfg.RunLog)
	if err != nil {
		return fmt.Errorf("run log: %w", err)
	}
	defer closeLogged(log, "run log", store)

	opts := []subproblem.Option{
		subproblem.WithSink(sink),
		subproblem.WithStore(store),
		subproblem.WithEngineName(appCfg.Solver.Type),
		subproblem.WithSource(path),
	}
	if appCfg.MQTT.Enabled() {
		pub, err := mqtt.NewResultPublisher(appCfg.MQTT)
		if err != nil {
			log.Warnf("mqtt publisher disabled: %v", err)
		} else {
			defer closeLogged(log, "mqtt", pub)
			opts = append(opts, subproblem.WithPublisher(pub))
		}
	}

	rep, err := subproblem.NewRunner(eng, log, opts...).Run(cmd.Context(), w)
	if err != nil {
		return fmt.Errorf("subproblem %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	if solveJSON {
		data, err := rep.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	return rep.Render(out)
}

func closeLogged(log logger.Logger, what string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warnf("close %s: %v", what, err)
	}
}
