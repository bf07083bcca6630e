// mock_storage.go - Mock storage implementation for testing
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pdf-extractor/backend/internal/models"
	"github.com/pdf-extractor/backend/internal/storage"
)

// MockStorage implements storage.Store for testing
type MockStorage struct {
	files    map[string]*models.SelectedFile
	fileData map[string][]byte
	mu       sync.RWMutex

	// ReadErr, when set, is returned by ReadAll
	ReadErr error
}

// NewMockStorage creates a new mock storage with default implementations
func NewMockStorage() *MockStorage {
	return &MockStorage{
		files:    make(map[string]*models.SelectedFile),
		fileData: make(map[string][]byte),
	}
}

func (m *MockStorage) Save(name, mediaType string, r io.Reader) (*models.SelectedFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := generateTestID()
	file := &models.SelectedFile{
		ID:         id,
		Name:       name,
		MediaType:  mediaType,
		Size:       int64(len(data)),
		UploadedAt: time.Now(),
	}
	m.files[id] = file
	m.fileData[id] = data
	return file, nil
}

func (m *MockStorage) ReadAll(id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.fileData[id]
	if !ok {
		return nil, errors.New("file not found")
	}
	return bytes.Clone(data), nil
}

func (m *MockStorage) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.files[id]; !exists {
		return errors.New("file not found")
	}

	delete(m.files, id)
	delete(m.fileData, id)
	return nil
}

func (m *MockStorage) GetFilePath(id string) (string, error) {
	return "/mock/path/" + id, nil
}

// Ensure MockStorage implements storage.Store
var _ storage.Store = (*MockStorage)(nil)

// Test Helper Methods

// AddFile adds a file directly to the mock
func (m *MockStorage) AddFile(id string, name string, data []byte) *models.SelectedFile {
	m.mu.Lock()
	defer m.mu.Unlock()

	file := &models.SelectedFile{
		ID:         id,
		Name:       name,
		MediaType:  models.MediaTypePDF,
		Size:       int64(len(data)),
		UploadedAt: time.Now(),
	}
	m.files[id] = file
	m.fileData[id] = data
	return file
}

// HasFile reports whether id is still stored
func (m *MockStorage) HasFile(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[id]
	return ok
}

// GetFileCount returns the number of stored files
func (m *MockStorage) GetFileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// generateTestID generates a simple test ID
var testIDCounter int
var testIDMutex sync.Mutex

func generateTestID() string {
	testIDMutex.Lock()
	defer testIDMutex.Unlock()
	testIDCounter++
	return fmt.Sprintf("test-id-%d", testIDCounter)
}
