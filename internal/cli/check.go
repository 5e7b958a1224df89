package cli

import (
	"fmt"

	"github.com/dshills/triage/internal/config"
	"github.com/dshills/triage/internal/findings"
	"github.com/dshills/triage/internal/redact"
	"github.com/dshills/triage/internal/verdict"
	"github.com/spf13/cobra"
)

var flagFindings []string

// sourceInput reads path and parses --finding values into a single input.
// The language is resolved and checked before anything is sent.
func sourceInput(path string, cfg config.Config) (verdict.FileInput, error) {
	fs := make([]verdict.Finding, 0, len(flagFindings))
	for _, s := range flagFindings {
		f, err := findings.ParseFlag(s)
		if err != nil {
			return verdict.FileInput{}, err
		}
		fs = append(fs, f)
	}

	language := findings.ResolveLanguage(path, "", cfg.Language)
	if !verdict.Supported(language) {
		return verdict.FileInput{}, fmt.Errorf("%w: %q (supported: %v)", verdict.ErrUnsupportedLanguage, language, verdict.Languages())
	}

	content, err := findings.ReadFile(path)
	if err != nil {
		return verdict.FileInput{}, fmt.Errorf("reading source: %w", err)
	}
	if cfg.Privacy.RedactSecrets {
		content = redact.Content(content, path, cfg.Privacy.RedactPaths)
	}

	return verdict.FileInput{Path: path, Language: language, Content: content, Findings: fs}, nil
}

var checkCmd = &cobra.Command{
	Use:   "check <source-file>",
	Short: "Validate findings for a single source file",
	Long: "Validate findings for a single source file. Each --finding is line:id:severity. " +
		"Prints Valid or False positive.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		in, err := sourceInput(args[0], cfg)
		if err != nil {
			fail(cmd, ExitUsageError, err)
			return nil
		}

		v, err := newValidator(cfg)
		if err != nil {
			fail(cmd, codeFor(err), err)
			return nil
		}

		ctx, cancel := commandContext(cfg)
		defer cancel()

		result, _, err := v.Validate(ctx, in.Findings, in.Content, in.Language, cfg.ValidateAllSeverities)
		if err != nil {
			fail(cmd, codeFor(err), err)
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), result)
		if cfg.FailOnValid && result == verdict.Valid {
			exitCode = ExitValid
		}
		return nil
	},
}

var promptCmd = &cobra.Command{
	Use:   "prompt <source-file>",
	Short: "Print the prompt that check would send, without sending it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		in, err := sourceInput(args[0], cfg)
		if err != nil {
			fail(cmd, ExitUsageError, err)
			return nil
		}

		prompt, err := verdict.BuildPrompt(in.Findings, in.Content, in.Language, cfg.ValidateAllSeverities)
		if err != nil {
			fail(cmd, ExitUsageError, err)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), prompt)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{checkCmd, promptCmd} {
		addModelFlags(cmd)
		cmd.Flags().StringArrayVar(&flagFindings, "finding", nil, "Finding as line:id:severity[:extra], severity Critical|High|Medium|Low; id may not contain ':' (repeatable)")
	}
}
