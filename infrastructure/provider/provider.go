// Package provider implements embedding providers: a remote
// OpenAI-compatible endpoint and a local ONNX model. The rest of the
// system treats a provider as an opaque text-to-vector function.
package provider

import (
	"context"
	"fmt"
)

// Embedder generates embedding vectors for batches of text.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, req EmbeddingRequest) (EmbeddingResponse, error)
	// Close releases any resources held by the provider.
	Close() error
}

// EmbeddingRequest is a batch of texts to embed.
type EmbeddingRequest struct {
	texts []string
}

// NewEmbeddingRequest creates an EmbeddingRequest.
func NewEmbeddingRequest(texts []string) EmbeddingRequest {
	return EmbeddingRequest{texts: texts}
}

// Texts returns the texts to embed.
func (r EmbeddingRequest) Texts() []string { return r.texts }

// EmbeddingResponse holds the vectors for one request.
type EmbeddingResponse struct {
	embeddings [][]float64
	usage      Usage
}

// NewEmbeddingResponse creates an EmbeddingResponse.
func NewEmbeddingResponse(embeddings [][]float64, usage Usage) EmbeddingResponse {
	return EmbeddingResponse{embeddings: embeddings, usage: usage}
}

// Embeddings returns one vector per requested text, in request order.
func (r EmbeddingResponse) Embeddings() [][]float64 { return r.embeddings }

// Usage returns the token usage reported by the provider.
func (r EmbeddingResponse) Usage() Usage { return r.usage }

// Usage reports token consumption for a provider call.
type Usage struct {
	promptTokens     int
	completionTokens int
	totalTokens      int
}

// NewUsage creates a Usage.
func NewUsage(prompt, completion, total int) Usage {
	return Usage{promptTokens: prompt, completionTokens: completion, totalTokens: total}
}

// PromptTokens returns the prompt token count.
func (u Usage) PromptTokens() int { return u.promptTokens }

// CompletionTokens returns the completion token count.
func (u Usage) CompletionTokens() int { return u.completionTokens }

// TotalTokens returns the total token count.
func (u Usage) TotalTokens() int { return u.totalTokens }

// ProviderError wraps a provider failure with the operation and the
// upstream HTTP status, when one exists.
type ProviderError struct {
	operation  string
	statusCode int
	message    string
	cause      error
}

// NewProviderError creates a ProviderError.
func NewProviderError(operation string, statusCode int, message string, cause error) *ProviderError {
	return &ProviderError{
		operation:  operation,
		statusCode: statusCode,
		message:    message,
		cause:      cause,
	}
}

// Error implements error.
func (e *ProviderError) Error() string {
	if e.statusCode > 0 {
		return fmt.Sprintf("provider %s failed (HTTP %d): %s", e.operation, e.statusCode, e.message)
	}
	return fmt.Sprintf("provider %s failed: %s", e.operation, e.message)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error { return e.cause }

// StatusCode returns the upstream HTTP status, or 0 if none applies.
func (e *ProviderError) StatusCode() int { return e.statusCode }

// Operation returns the failed operation name.
func (e *ProviderError) Operation() string { return e.operation }
