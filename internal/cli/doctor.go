package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/triage/internal/config"
	"github.com/dshills/triage/internal/providers"
	"github.com/spf13/cobra"
)

// doctorTimeout bounds the connectivity check.
const doctorTimeout = 30 * time.Second

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check OpenAI credentials and endpoint reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Checking openai (model %s)...\n", cfg.Model)

		client, err := newCompleter(cfg)
		if err != nil {
			fail(cmd, codeFor(err), fmt.Errorf("FAIL: %w", err))
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), doctorTimeout)
		defer cancel()

		_, err = client.Complete(ctx, providers.CompletionRequest{
			Model:  cfg.Model,
			Prompt: "Respond with exactly: ok",
		})
		if err != nil {
			fail(cmd, codeFor(err), fmt.Errorf("FAIL: %w", err))
			return nil
		}

		fmt.Fprintf(out, "OK: openai is configured and responding\n")
		return nil
	},
}

func init() {
	doctorCmd.Flags().StringVar(&flagModel, "model", "", "Model to test against")
}
