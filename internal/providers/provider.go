package providers

import (
	"context"
	"fmt"
	"os"
)

// CompletionRequest contains the data sent to a chat completion endpoint.
type CompletionRequest struct {
	Model  string
	Prompt string
}

// Completer is the chat completion abstraction used by the validator.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}

// Credentials authenticate requests to the completion endpoint.
// OrgID and ProjectID are optional; empty values are not sent.
type Credentials struct {
	APIKey    string
	OrgID     string
	ProjectID string
}

// CredentialsFromEnv reads OPENAI_API_KEY, OPENAI_ORG_ID and OPENAI_PROJECT_ID.
func CredentialsFromEnv() (Credentials, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return Credentials{}, fmt.Errorf("%w: OPENAI_API_KEY environment variable is not set", ErrMissingAPIKey)
	}
	return Credentials{
		APIKey:    key,
		OrgID:     os.Getenv("OPENAI_ORG_ID"),
		ProjectID: os.Getenv("OPENAI_PROJECT_ID"),
	}, nil
}
