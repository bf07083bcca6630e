// manager_test.go - Tests for storage layer
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pdf-extractor/backend/internal/models"
)

func createTestStore(t *testing.T) *LocalStore {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestNewLocalStore(t *testing.T) {
	t.Run("creates upload directory", func(t *testing.T) {
		uploadDir := filepath.Join(t.TempDir(), "uploads")

		store, err := NewLocalStore(uploadDir)
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}
		if store.uploadDir != uploadDir {
			t.Errorf("Expected uploadDir %s, got %s", uploadDir, store.uploadDir)
		}
		if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
			t.Error("Expected upload directory to be created")
		}
	})
}

func TestLocalStore_Save(t *testing.T) {
	t.Run("saves file from reader", func(t *testing.T) {
		store := createTestStore(t)
		content := "%PDF-1.4 body"

		info, err := store.Save("scan.pdf", models.MediaTypePDF, strings.NewReader(content))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		if info.ID == "" {
			t.Error("Expected ID to be set")
		}
		if info.Name != "scan.pdf" {
			t.Errorf("Expected name 'scan.pdf', got %v", info.Name)
		}
		if info.MediaType != models.MediaTypePDF {
			t.Errorf("Expected media type %s, got %s", models.MediaTypePDF, info.MediaType)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Expected size %d, got %d", len(content), info.Size)
		}
		if info.UploadedAt.IsZero() {
			t.Error("Expected UploadedAt to be set")
		}
	})

	t.Run("creates physical file", func(t *testing.T) {
		store := createTestStore(t)

		info, err := store.Save("scan.pdf", models.MediaTypePDF, strings.NewReader("bytes"))
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		path := filepath.Join(store.uploadDir, info.ID)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Error("Expected physical file to exist")
		}
	})
}

func TestLocalStore_ReadAll(t *testing.T) {
	t.Run("returns stored bytes", func(t *testing.T) {
		store := createTestStore(t)
		info, _ := store.Save("scan.pdf", models.MediaTypePDF, strings.NewReader("hello pdf"))

		data, err := store.ReadAll(info.ID)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(data) != "hello pdf" {
			t.Errorf("Expected 'hello pdf', got %q", string(data))
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		store := createTestStore(t)

		if _, err := store.ReadAll("missing"); err == nil {
			t.Error("Expected error for non-existent file")
		}
	})
}

func TestLocalStore_Delete(t *testing.T) {
	t.Run("deletes existing file", func(t *testing.T) {
		store := createTestStore(t)
		info, _ := store.Save("a.pdf", models.MediaTypePDF, strings.NewReader("x"))
		path := filepath.Join(store.uploadDir, info.ID)

		if err := store.Delete(info.ID); err != nil {
			t.Fatalf("Failed to delete file: %v", err)
		}
		if _, err := store.GetFilePath(info.ID); err == nil {
			t.Error("Expected file metadata to be removed")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("Expected physical file to be removed")
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		store := createTestStore(t)

		if err := store.Delete("non-existent-id"); err == nil {
			t.Error("Expected error for non-existent file")
		}
	})
}

func TestLocalStore_GetFilePath(t *testing.T) {
	t.Run("returns error for non-existent file", func(t *testing.T) {
		store := createTestStore(t)

		if _, err := store.GetFilePath("non-existent-id"); err == nil {
			t.Error("Expected error for non-existent file")
		}
	})

	store := createTestStore(t)
	info, _ := store.Save("a.pdf", models.MediaTypePDF, strings.NewReader("x"))

	path, err := store.GetFilePath(info.ID)
	if err != nil {
		t.Fatalf("Failed to get path: %v", err)
	}
	if path != filepath.Join(store.uploadDir, info.ID) {
		t.Errorf("Unexpected path %s", path)
	}
}

func TestLocalStore_ConcurrentAccess(t *testing.T) {
	store := createTestStore(t)

	var wg sync.WaitGroup
	ids := make(chan string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			info, err := store.Save("file.pdf", models.MediaTypePDF, strings.NewReader("Content "+string(rune('0'+n))))
			if err != nil {
				t.Errorf("Failed to save file: %v", err)
				return
			}
			ids <- info.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		seen[id] = true
	}
	if len(seen) != 10 {
		t.Errorf("Expected 10 distinct files, got %d", len(seen))
	}
}

// mockReader is a reader that can simulate errors
type mockReader struct {
	data      []byte
	readCount int
	failAfter int
}

func (m *mockReader) Read(p []byte) (n int, err error) {
	if m.readCount >= m.failAfter {
		return 0, io.ErrUnexpectedEOF
	}
	m.readCount++
	n = copy(p, m.data)
	return n, nil
}

func TestLocalStore_ErrorHandling(t *testing.T) {
	t.Run("handles read error during save", func(t *testing.T) {
		store := createTestStore(t)

		_, err := store.Save("test.pdf", models.MediaTypePDF, &mockReader{data: []byte("data")})
		if err == nil {
			t.Error("Expected error when reader fails")
		}
		entries, _ := os.ReadDir(store.uploadDir)
		if len(entries) != 0 {
			t.Errorf("Expected partial file to be removed, found %d entries", len(entries))
		}
	})
}
