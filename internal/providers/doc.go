// Package providers talks to the chat completion endpoint that judges
// static-analysis findings.
//
// Only OpenAI's chat completions API is supported. Each call to
// [OpenAI.Complete] is a single POST with one user message and is never
// retried. The HTTP client has no timeout; bound calls with the context.
//
// Failures surface as [*TransportError] (network failure or non-2xx status)
// or [*SerializationError] (body could not be encoded or decoded). A missing
// key is [ErrMissingAPIKey]; [IsAuthError] also matches 401 and 403 replies. Tests
// redirect calls to httptest servers with [WithBaseURL] and [WithHTTPClient].
package providers
