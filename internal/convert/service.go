// Package convert runs one conversion: encode the selected PDF, ask the model
// for markdown, render it to HTML.
package convert

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdf-extractor/backend/internal/llm"
	"github.com/pdf-extractor/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// DefaultInstruction is the fixed extraction prompt.
const DefaultInstruction = "Extract all text and tables from this PDF. Preserve structure (headings, lists, tables) as Markdown."

// FileReader loads the bytes of a selected file.
type FileReader interface {
	ReadAll(id string) ([]byte, error)
}

// MarkdownRenderer converts markdown to HTML.
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}

// Options configures a Service.
type Options struct {
	Model       string
	Instruction string
	Cache       *ResultCache
}

// Service performs conversions. It holds no per-conversion state.
type Service struct {
	files       FileReader
	client      llm.Client
	renderer    MarkdownRenderer
	model       string
	instruction string
	cache       *ResultCache
}

// NewService creates a conversion service.
func NewService(files FileReader, client llm.Client, renderer MarkdownRenderer, opts Options) *Service {
	if strings.TrimSpace(opts.Model) == "" {
		opts.Model = DefaultModel
	}
	if strings.TrimSpace(opts.Instruction) == "" {
		opts.Instruction = DefaultInstruction
	}
	return &Service{
		files:       files,
		client:      client,
		renderer:    renderer,
		model:       opts.Model,
		instruction: opts.Instruction,
		cache:       opts.Cache,
	}
}

// Model returns the configured model id.
func (s *Service) Model() string { return s.model }

// Convert turns the selected file into a ConversionResult. Any failure is
// returned as a single error; no partial result is produced.
func (s *Service) Convert(ctx context.Context, file *models.SelectedFile) (*models.ConversionResult, error) {
	start := time.Now()

	data, err := s.files.ReadAll(file.ID)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file.Name, err)
	}

	key := KeyFrom(s.model, s.instruction, data)
	markdown, cached := s.cache.Get(key)
	if !cached {
		payload, err := EncodePayload(file.MediaType, data)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", file.Name, err)
		}

		markdown, err = s.client.GenerateContent(ctx, llm.Request{
			Model:       s.model,
			MIMEType:    file.MediaType,
			Data:        payload,
			Instruction: s.instruction,
		})
		if err != nil {
			return nil, err
		}
	}

	html, err := s.renderer.Render(markdown)
	if err != nil {
		return nil, err
	}

	if !cached {
		s.cache.Add(key, markdown)
	}

	elapsed := time.Since(start)
	log.Debug().
		Str("file", file.Name).
		Str("model", s.model).
		Bool("cached", cached).
		Int("markdownBytes", len(markdown)).
		Dur("elapsed", elapsed).
		Msg("conversion finished")

	return &models.ConversionResult{
		Markdown:    markdown,
		HTML:        html,
		SourceName:  file.Name,
		Model:       s.model,
		Cached:      cached,
		ConvertedAt: time.Now(),
		DurationMs:  elapsed.Milliseconds(),
	}, nil
}
