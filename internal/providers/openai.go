package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAI implements the Completer interface for OpenAI's chat completions API.
type OpenAI struct {
	creds   Credentials
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// OpenAIOption configures an OpenAI client.
type OpenAIOption func(*OpenAI)

// WithBaseURL points the client at a different chat completions URL.
// An empty url keeps the current one.
func WithBaseURL(url string) OpenAIOption {
	return func(o *OpenAI) {
		if url != "" {
			o.baseURL = url
		}
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) OpenAIOption {
	return func(o *OpenAI) {
		if c != nil {
			o.client = c
		}
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *zap.Logger) OpenAIOption {
	return func(o *OpenAI) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewOpenAI creates a new OpenAI client for the public endpoint. Use
// WithBaseURL to point it elsewhere.
func NewOpenAI(creds Credentials, opts ...OpenAIOption) (*OpenAI, error) {
	if creds.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	o := &OpenAI{
		creds:   creds,
		baseURL: defaultOpenAIURL,
		client:  &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

func (o *OpenAI) Name() string { return "openai" }

// Complete sends a single-message chat request and returns the content of
// the first choice, or "" when the response carries no choices.
func (o *OpenAI) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body := openaiRequest{
		Model: req.Model,
		Messages: []openaiMessage{
			{Role: "user", Content: req.Prompt},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", &SerializationError{Op: "encoding request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("creating request: %w", err)}
	}
	o.setHeaders(httpReq)

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("sending request: %w", err)}
	}
	defer httpResp.Body.Close()

	o.logger.Debug("chat completion response",
		zap.String("model", req.Model),
		zap.Int("status", httpResp.StatusCode))

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		return "", &TransportError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}

	var result openaiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &SerializationError{Op: "decoding response", Err: err}
	}

	if err := result.check(); err != nil {
		return "", &SerializationError{Op: "decoding response", Err: err}
	}

	if len(*result.Choices) == 0 {
		return "", nil
	}
	return *(*result.Choices)[0].Message.Content, nil
}

func (o *OpenAI) setHeaders(r *http.Request) {
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", "Bearer "+o.creds.APIKey)
	if o.creds.OrgID != "" {
		r.Header.Set("OpenAI-Organization", o.creds.OrgID)
	}
	if o.creds.ProjectID != "" {
		r.Header.Set("OpenAI-Project", o.creds.ProjectID)
	}
}

type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response fields are pointers so that absent and null values can be told
// apart from empty ones.
type openaiResponse struct {
	Choices *[]openaiChoice `json:"choices"`
}

type openaiChoice struct {
	Message *openaiReply `json:"message"`
}

type openaiReply struct {
	Content *string `json:"content"`
}

// check rejects bodies that decode but lack the required fields. An empty
// choices array is allowed.
func (r *openaiResponse) check() error {
	if r.Choices == nil {
		return errors.New("missing choices")
	}
	for i, c := range *r.Choices {
		if c.Message == nil {
			return fmt.Errorf("choice %d: missing message", i)
		}
		if c.Message.Content == nil {
			return fmt.Errorf("choice %d: missing message content", i)
		}
	}
	return nil
}
