package verdict

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency limits parallel model calls in ValidateFiles.
const DefaultConcurrency = 4

// BatchOptions controls ValidateFiles.
type BatchOptions struct {
	Concurrency int
	ValidateAll bool
}

// ValidateFiles validates each input independently with bounded concurrency.
// Results are in input order. A failure on one file is recorded on its
// result and does not stop the others. Files whose findings are all filtered
// out by severity are skipped without a request.
func (v *Validator) ValidateFiles(ctx context.Context, inputs []FileInput, opts BatchOptions) []FileResult {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]FileResult, len(inputs))
	var g errgroup.Group
	g.SetLimit(limit)

	for i, in := range inputs {
		results[i] = FileResult{
			Path:     in.Path,
			Language: in.Language,
			Findings: selected(in.Findings, opts.ValidateAll),
		}

		if !Supported(in.Language) {
			results[i].Error = fmt.Errorf("%w: %q", ErrUnsupportedLanguage, in.Language).Error()
			v.logger.Warn("skipping file", zap.String("path", in.Path), zap.String("language", in.Language))
			continue
		}
		if len(results[i].Findings) == 0 {
			results[i].Skipped = true
			continue
		}
		if err := ctx.Err(); err != nil {
			results[i].Error = err.Error()
			continue
		}

		i, in := i, in
		g.Go(func() error {
			start := time.Now()
			result, explanation, err := v.Validate(ctx, in.Findings, in.Content, in.Language, opts.ValidateAll)
			results[i].LLMMs = time.Since(start).Milliseconds()
			if err != nil {
				results[i].Error = err.Error()
				v.logger.Warn("validation failed", zap.String("path", in.Path), zap.Error(err))
				return nil
			}
			results[i].Verdict = result
			results[i].Explanation = explanation
			v.logger.Info("file validated", zap.String("path", in.Path), zap.String("verdict", result))
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func selected(findings []Finding, validateAll bool) []Finding {
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if f.Selected(validateAll) {
			out = append(out, f)
		}
	}
	return out
}
