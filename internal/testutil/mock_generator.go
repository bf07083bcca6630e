package testutil

import (
	"context"
	"sync"

	"github.com/pdf-extractor/backend/internal/llm"
)

// MockGenerator implements llm.Client with a canned response.
type MockGenerator struct {
	mu       sync.Mutex
	Response string
	Err      error
	Requests []llm.Request

	// Block, when non-nil, is received from before answering so tests can
	// observe the in-flight state.
	Block chan struct{}
	// Started is signalled once a call has begun, when non-nil.
	Started chan struct{}
}

// NewMockGenerator returns a generator that answers with response.
func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{Response: response}
}

func (m *MockGenerator) GenerateContent(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	started, block := m.Started, m.Block
	m.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Calls returns the number of requests received.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// LastRequest returns the most recent request.
func (m *MockGenerator) LastRequest() llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return llm.Request{}
	}
	return m.Requests[len(m.Requests)-1]
}

var _ llm.Client = (*MockGenerator)(nil)
