package verdict

import (
	"context"
	"fmt"

	"github.com/dshills/triage/internal/providers"
	"go.uber.org/zap"
)

// Validator asks a chat model whether static-analysis findings are real.
// It holds no per-call state and is safe for concurrent use.
type Validator struct {
	client providers.Completer
	model  string
	logger *zap.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithModel overrides DefaultModel. An empty model is ignored.
func WithModel(model string) Option {
	return func(v *Validator) {
		if model != "" {
			v.model = model
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// New creates a Validator backed by client.
func New(client providers.Completer, opts ...Option) *Validator {
	v := &Validator{
		client: client,
		model:  DefaultModel,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Model returns the chat model in use.
func (v *Validator) Model() string { return v.model }

// Validate sends the file and its selected findings to the model and
// classifies the reply. The explanation is always empty. An unsupported
// language fails with ErrUnsupportedLanguage before any request is made.
func (v *Validator) Validate(ctx context.Context, findings []Finding, content, language string, validateAll bool) (string, string, error) {
	prompt, err := BuildPrompt(findings, content, language, validateAll)
	if err != nil {
		return "", "", err
	}

	v.logger.Debug("validating findings",
		zap.String("language", language),
		zap.Int("findings", countSelected(findings, validateAll)),
		zap.String("model", v.model))

	text, err := v.client.Complete(ctx, providers.CompletionRequest{
		Model:  v.model,
		Prompt: prompt,
	})
	if err != nil {
		return "", "", fmt.Errorf("%s completion: %w", v.client.Name(), err)
	}

	result := Classify(text)
	v.logger.Debug("classified reply",
		zap.String("verdict", result),
		zap.Int("replyBytes", len(text)))

	return result, "", nil
}

// Validate judges findings with an OpenAI client and the default model. The
// client talks to the public endpoint unless opts say otherwise.
func Validate(ctx context.Context, creds providers.Credentials, findings []Finding, content, language string, validateAll bool, opts ...providers.OpenAIOption) (string, string, error) {
	if !Supported(language) {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	client, err := providers.NewOpenAI(creds, opts...)
	if err != nil {
		return "", "", err
	}
	return New(client).Validate(ctx, findings, content, language, validateAll)
}

func countSelected(findings []Finding, validateAll bool) int {
	n := 0
	for _, f := range findings {
		if f.Selected(validateAll) {
			n++
		}
	}
	return n
}
