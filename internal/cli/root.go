package cli

import (
	"fmt"

	"github.com/dshills/triage/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitValid        = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var flagDebug bool

// logger is replaced in PersistentPreRunE once --debug is known.
var (
	logger    = zap.NewNop()
	newLogger = logging.New
)

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Validate static-analysis findings with an LLM",
	Long: "Triage sends SAST findings and the source they point at to an OpenAI chat model " +
		"and labels each file Valid or False positive, with deterministic exit codes for CI gating.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(flagDebug)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print triage version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "triage version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging to stderr")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}
