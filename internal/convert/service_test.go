package convert

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/pdf-extractor/backend/internal/render"
	"github.com/pdf-extractor/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRenderer struct{}

func (failingRenderer) Render(string) (string, error) { return "", errors.New("render failed") }

func TestService_Convert(t *testing.T) {
	store := testutil.NewMockStorage()
	file := store.AddFile("f1", "scan.pdf", []byte("%PDF-1.4 scan"))
	gen := testutil.NewMockGenerator("# Title\n\nHello")

	svc := NewService(store, gen, render.NewRenderer(), Options{})
	result, err := svc.Convert(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, "# Title\n\nHello", result.Markdown)
	assert.Contains(t, result.HTML, "<h1>Title</h1>")
	assert.Contains(t, result.HTML, "<p>Hello</p>")
	assert.Equal(t, "scan.pdf", result.SourceName)
	assert.Equal(t, DefaultModel, result.Model)
	assert.False(t, result.Cached)

	req := gen.LastRequest()
	assert.Equal(t, DefaultModel, req.Model)
	assert.Equal(t, "application/pdf", req.MIMEType)
	assert.Equal(t, DefaultInstruction, req.Instruction)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 scan")), req.Data)
}

func TestService_ConvertOptions(t *testing.T) {
	store := testutil.NewMockStorage()
	file := store.AddFile("f1", "scan.pdf", []byte("x"))
	gen := testutil.NewMockGenerator("text")

	svc := NewService(store, gen, render.NewRenderer(), Options{Model: "custom-model", Instruction: "Only tables."})
	_, err := svc.Convert(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, "custom-model", svc.Model())
	assert.Equal(t, "custom-model", gen.LastRequest().Model)
	assert.Equal(t, "Only tables.", gen.LastRequest().Instruction)
}

func TestService_ConvertFailures(t *testing.T) {
	t.Run("remote error", func(t *testing.T) {
		store := testutil.NewMockStorage()
		file := store.AddFile("f1", "scan.pdf", []byte("x"))
		gen := testutil.NewMockGenerator("")
		gen.Err = errors.New("quota exceeded")

		result, err := NewService(store, gen, render.NewRenderer(), Options{}).Convert(context.Background(), file)
		assert.Nil(t, result)
		assert.EqualError(t, err, "quota exceeded")
	})

	t.Run("read error", func(t *testing.T) {
		store := testutil.NewMockStorage()
		file := store.AddFile("f1", "scan.pdf", []byte("x"))
		store.ReadErr = errors.New("disk gone")
		gen := testutil.NewMockGenerator("text")

		result, err := NewService(store, gen, render.NewRenderer(), Options{}).Convert(context.Background(), file)
		assert.Nil(t, result)
		assert.Error(t, err)
		assert.Equal(t, 0, gen.Calls())
	})

	t.Run("render error", func(t *testing.T) {
		store := testutil.NewMockStorage()
		file := store.AddFile("f1", "scan.pdf", []byte("x"))
		gen := testutil.NewMockGenerator("text")

		result, err := NewService(store, gen, failingRenderer{}, Options{}).Convert(context.Background(), file)
		assert.Nil(t, result)
		assert.Error(t, err)
	})
}

func TestService_ConvertCache(t *testing.T) {
	store := testutil.NewMockStorage()
	file := store.AddFile("f1", "scan.pdf", []byte("same bytes"))
	gen := testutil.NewMockGenerator("# Cached")

	cache, err := NewResultCache(4)
	require.NoError(t, err)
	svc := NewService(store, gen, render.NewRenderer(), Options{Cache: cache})

	first, err := svc.Convert(context.Background(), file)
	require.NoError(t, err)
	second, err := svc.Convert(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.Calls())
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Markdown, second.Markdown)
	assert.Equal(t, 1, cache.Len())
}

func TestResultCache_Disabled(t *testing.T) {
	cache, err := NewResultCache(0)
	require.NoError(t, err)
	assert.Nil(t, cache)

	cache.Add("k", "v")
	_, ok := cache.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestKeyFrom(t *testing.T) {
	a := KeyFrom("m", "i", []byte("data"))
	assert.Equal(t, a, KeyFrom("m", "i", []byte("data")))
	assert.NotEqual(t, a, KeyFrom("m2", "i", []byte("data")))
	assert.NotEqual(t, a, KeyFrom("m", "i2", []byte("data")))
	assert.NotEqual(t, a, KeyFrom("m", "i", []byte("data2")))
}
