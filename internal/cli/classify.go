package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/triage/internal/verdict"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Classify model reply text as Valid or False positive",
	Long:  "Classify a saved model reply read from a file, or stdin when no file is given. Makes no network calls.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			fail(cmd, ExitUsageError, fmt.Errorf("reading reply: %w", err))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), verdict.Classify(string(data)))
		return nil
	},
}
