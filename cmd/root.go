// cmd/root.go
package cmd

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/opentci/tci-core/pk"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "tci",
	Short: "Target-controlled infusion dosing simulator",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve a scenario's infusion schedule and print the resulting trajectory summary",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		file, err := os.Open(configPath)
		if err != nil {
			logrus.Fatalf("opening scenario config: %v", err)
		}
		defer file.Close()

		cfg, err := pk.LoadConfig(file)
		if err != nil {
			logAndExit(err)
		}

		scheduler, err := cfg.BuildScheduler()
		if err != nil {
			logAndExit(err)
		}

		logrus.Infof("solving %d target(s) over a %.0fs horizon", scheduler.Targets.Len(), scheduler.Pump.EndTime)

		infusions, traj := scheduler.Run()
		for _, w := range scheduler.Warnings.Warnings() {
			logrus.Warnf("[target %d] %s: %s", w.TargetIndex, w.Kind, w.Message)
		}

		summary := pk.Summarize(traj, infusions.Len(), len(scheduler.Warnings.Warnings()))
		summary.Print()
		logrus.Info("done")
	},
}

// logAndExit reports a fatal scheduling error, distinguishing the two
// caller-facing error types (§7) in the log line.
func logAndExit(err error) {
	var modelErr *pk.InvalidModelError
	var inputErr *pk.InvalidInputError
	switch {
	case errors.As(err, &modelErr):
		logrus.Fatalf("invalid drug model: %v", err)
	case errors.As(err, &inputErr):
		logrus.Fatalf("invalid scenario input: %v", err)
	default:
		logrus.Fatalf("failed to load scenario: %v", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a scenario YAML file (model, pump, infusions, targets)")
	runCmd.MarkFlagRequired("config")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
}
