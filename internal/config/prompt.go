package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PromptProfile overrides the model and instruction from a YAML file:
//
//	model: gemini-1.5-pro
//	instruction: |
//	  Extract all text and tables ...
type PromptProfile struct {
	Model       string `yaml:"model"`
	Instruction string `yaml:"instruction"`
}

// LoadPromptProfile reads a profile from disk.
func LoadPromptProfile(path string) (*PromptProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParsePromptProfile(f)
}

// ParsePromptProfile parses a profile from an io.Reader.
func ParsePromptProfile(r io.Reader) (*PromptProfile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var p PromptProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing prompt profile: %w", err)
	}
	p.Model = strings.TrimSpace(p.Model)
	p.Instruction = strings.TrimSpace(p.Instruction)
	return &p, nil
}

// ApplyPromptProfile loads Conversion.PromptFile, if set, and copies its
// non-empty fields over the configured model and instruction. PDFX_MODEL
// still takes precedence over the profile's model.
func (c *AppConfig) ApplyPromptProfile() error {
	if c.Conversion.PromptFile == "" {
		return nil
	}

	p, err := LoadPromptProfile(c.Conversion.PromptFile)
	if err != nil {
		return fmt.Errorf("loading prompt profile: %w", err)
	}
	if p.Model != "" {
		c.Conversion.Model = p.Model
	}
	if p.Instruction != "" {
		c.Conversion.Instruction = p.Instruction
	}
	c.applyConversionOverrides()
	return nil
}
