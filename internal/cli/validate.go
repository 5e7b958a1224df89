package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dshills/triage/internal/config"
	"github.com/dshills/triage/internal/findings"
	"github.com/dshills/triage/internal/output"
	"github.com/dshills/triage/internal/providers"
	"github.com/dshills/triage/internal/redact"
	"github.com/dshills/triage/internal/verdict"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Shared validation flags
var (
	flagModel         string
	flagLanguage      string
	flagAllSeverities bool
	flagFormat        string
	flagOut           string
	flagConcurrency   int
	flagFailOnValid   bool
	flagRedact        bool
	flagTimeout       int
	flagRoot          string
)

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagModel, "model", "", "Chat model (default gpt-3.5-turbo)")
	cmd.Flags().StringVar(&flagLanguage, "language", "", "Language tag: Rust, Solidity-Ethereum, or auto")
	cmd.Flags().BoolVar(&flagAllSeverities, "all-severities", false, "Validate every finding, not only Critical and High")
	cmd.Flags().IntVar(&flagTimeout, "timeout", 0, "Overall timeout in seconds (0 = none)")
	cmd.Flags().BoolVar(&flagFailOnValid, "fail-on-valid", false, "Exit 1 when any finding is judged Valid")
	cmd.Flags().BoolVar(&flagRedact, "redact", false, "Redact secrets from source before sending")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagLanguage != "" {
		m["language"] = flagLanguage
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagConcurrency > 0 {
		m["concurrency"] = strconv.Itoa(flagConcurrency)
	}
	if flagTimeout > 0 {
		m["timeoutSeconds"] = strconv.Itoa(flagTimeout)
	}
	if flagAllSeverities {
		m["validateAllSeverities"] = "true"
	}
	if flagFailOnValid {
		m["failOnValid"] = "true"
	}
	if flagRedact {
		m["privacy.redactSecrets"] = "true"
	}
	return m
}

// newCompleter builds the OpenAI client from the environment key and the
// effective config.
func newCompleter(cfg config.Config) (*providers.OpenAI, error) {
	creds, err := providers.CredentialsFromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.OrgID != "" {
		creds.OrgID = cfg.OrgID
	}
	if cfg.ProjectID != "" {
		creds.ProjectID = cfg.ProjectID
	}
	return providers.NewOpenAI(creds,
		providers.WithBaseURL(cfg.BaseURL),
		providers.WithLogger(logger))
}

func newValidator(cfg config.Config) (*verdict.Validator, error) {
	client, err := newCompleter(cfg)
	if err != nil {
		return nil, err
	}
	return verdict.New(client, verdict.WithModel(cfg.Model), verdict.WithLogger(logger)), nil
}

// commandContext applies timeoutSeconds when set. The HTTP client itself has
// no timeout.
func commandContext(cfg config.Config) (context.Context, context.CancelFunc) {
	if cfg.TimeoutSeconds > 0 {
		return context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSeconds)*time.Second)
	}
	return context.WithCancel(context.Background())
}

// codeFor maps an error to its exit code.
func codeFor(err error) int {
	switch {
	case providers.IsAuthError(err):
		return ExitAuthError
	case errors.Is(err, verdict.ErrUnsupportedLanguage):
		return ExitUsageError
	default:
		return ExitRuntimeError
	}
}

// fail prints err and records code as the exit code.
func fail(cmd *cobra.Command, code int, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	exitCode = code
}

func writeReport(cmd *cobra.Command, report *verdict.Report, format string) error {
	if flagOut != "" {
		return output.WriteReport(report, format, flagOut)
	}
	w, err := output.GetWriter(format)
	if err != nil {
		return err
	}
	return w.Write(cmd.OutOrStdout(), report)
}

// redactInputs rewrites input content in place. It returns the number of
// files blanked by path policy and the number of secrets replaced in the rest.
func redactInputs(inputs []verdict.FileInput, globs []string) (files, secrets int) {
	for i := range inputs {
		if redact.ShouldRedactPath(inputs[i].Path, globs) {
			inputs[i].Content = redact.Content(inputs[i].Content, inputs[i].Path, globs)
			files++
			continue
		}
		var n int
		inputs[i].Content, n = redact.SecretsCount(inputs[i].Content)
		secrets += n
	}
	return files, secrets
}

var validateCmd = &cobra.Command{
	Use:   "validate <findings-file>",
	Short: "Validate every file in a findings file (YAML or JSON)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		if _, err := output.GetWriter(cfg.Format); err != nil {
			return err
		}

		set, err := findings.Load(args[0])
		if err != nil {
			fail(cmd, ExitUsageError, err)
			return nil
		}
		inputs, err := set.Inputs(flagRoot, cfg.Language, nil)
		if err != nil {
			fail(cmd, ExitUsageError, err)
			return nil
		}
		logger.Debug("loaded findings",
			zap.String("file", args[0]),
			zap.Int("files", len(set.Files)),
			zap.Int("findings", set.Count()))

		if cfg.Privacy.RedactSecrets {
			files, secrets := redactInputs(inputs, cfg.Privacy.RedactPaths)
			logger.Info("redacted source",
				zap.Int("filesBlanked", files),
				zap.Int("secrets", secrets))
		}

		v, err := newValidator(cfg)
		if err != nil {
			fail(cmd, codeFor(err), err)
			return nil
		}

		ctx, cancel := commandContext(cfg)
		defer cancel()

		start := time.Now()
		results := v.ValidateFiles(ctx, inputs, verdict.BatchOptions{
			Concurrency: cfg.Concurrency,
			ValidateAll: cfg.ValidateAllSeverities,
		})
		report := verdict.BuildReport(results, v.Model(), start)

		if err := writeReport(cmd, report, cfg.Format); err != nil {
			fail(cmd, ExitRuntimeError, fmt.Errorf("writing output: %w", err))
			return nil
		}

		switch {
		case report.Summary.Errors > 0:
			exitCode = ExitRuntimeError
		case cfg.FailOnValid && report.HasValid():
			exitCode = ExitValid
		}
		return nil
	},
}

func init() {
	addModelFlags(validateCmd)
	validateCmd.Flags().StringVar(&flagRoot, "root", "", "Directory that relative source paths are resolved against")
	validateCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown, sarif)")
	validateCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	validateCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Maximum parallel requests (default 4)")
}
