// Package llm sends a PDF payload and an instruction to a hosted generative
// model and returns the model's text.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ErrEmptyResponse indicates the model answered without any text.
var ErrEmptyResponse = errors.New("model returned no text")

// Request is a single generate call: one inline file plus one instruction.
type Request struct {
	Model       string
	MIMEType    string
	Data        string // base64 payload, no data URL prefix
	Instruction string
}

// Client is implemented by every model backend.
type Client interface {
	GenerateContent(ctx context.Context, req Request) (string, error)
}

// New returns the client for the named provider.
func New(provider string, creds Credentials, baseURL string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderGemini:
		return NewGeminiClient(creds, baseURL), nil
	case ProviderOpenAI:
		return NewOpenAIClient(creds, baseURL), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %s", provider)
	}
}
