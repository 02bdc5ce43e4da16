// Package llm provides a unified interface over the generative model APIs
// used to read documents.
package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"time"
)

// ErrNoContent is returned when a provider answers without any usable content.
var ErrNoContent = errors.New("no content in model response")

// Role represents the role of a message sender. Only user messages are
// sent; the prompt travels with the document.
type Role string

const RoleUser Role = "user"

// Attachment is an inline file sent alongside a user message.
type Attachment struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Base64 returns the standard base64 encoding of the attachment bytes.
func (a Attachment) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}

// DataURL returns the attachment as a data: URL.
func (a Attachment) DataURL() string {
	return "data:" + a.MIMEType + ";base64," + a.Base64()
}

// IsImage reports whether the attachment is an image type.
func (a Attachment) IsImage() bool {
	switch a.MIMEType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

// Message represents a chat message.
type Message struct {
	Role    Role
	Content string
	// Attachments are only sent on user messages.
	Attachments []Attachment
}

// Request represents a completion request to the model.
type Request struct {
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSONSchema  map[string]any // For structured output
	StrictMode  bool           // Use strict JSON schema validation (only for supported models)
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response represents the result of a model call.
type Response struct {
	Content      string
	FinishReason string
	Usage        Usage
	Model        string
	Duration     time.Duration
}

// Provider is the core interface that all model backends implement.
type Provider interface {
	// Execute sends a completion request and returns the response.
	Execute(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider identifier (e.g., "gemini", "anthropic").
	Name() string

	// Model returns the configured model name.
	Model() string
}

// ProviderConfig holds common configuration for providers.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// MaxRetries is passed to the SDK client. Zero disables retries.
	MaxRetries int
	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration
}
