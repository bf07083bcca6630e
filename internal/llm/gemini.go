package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient calls the Gemini API generateContent endpoint.
type GeminiClient struct {
	creds   Credentials
	baseURL string
}

// NewGeminiClient creates a Gemini client. An empty baseURL uses the SDK default.
func NewGeminiClient(creds Credentials, baseURL string) *GeminiClient {
	return &GeminiClient{creds: creds, baseURL: baseURL}
}

// GenerateContent sends the inline file and instruction as one user turn.
func (g *GeminiClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	key, err := g.creds.APIKey()
	if err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return "", fmt.Errorf("decoding payload: %w", err)
	}

	cfg := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("creating gemini client: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(data, req.MIMEType),
		genai.NewPartFromText(req.Instruction),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := client.Models.GenerateContent(ctx, req.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
