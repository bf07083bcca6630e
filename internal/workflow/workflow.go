// Package workflow holds the state of one browser's conversion workflow:
// the selected PDF, the last conversion result and the conversion state.
//
// A workflow allows one conversion in flight. While it is loading, Begin
// refuses further conversions; the deferred finish step restores the
// convert capability exactly once, on success, failure or panic.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pdf-extractor/backend/internal/models"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoFile = errors.New("no file selected")
	ErrBusy   = errors.New("conversion already in progress")
)

// Converter performs the remote conversion of a selected file.
type Converter interface {
	Convert(ctx context.Context, file *models.SelectedFile) (*models.ConversionResult, error)
}

// FileRemover deletes spooled file bytes.
type FileRemover interface {
	Delete(id string) error
}

// Listener receives a snapshot after every state change.
type Listener func(models.Snapshot)

// Workflow is the per-session application state.
type Workflow struct {
	id    string
	files FileRemover

	mu        sync.RWMutex
	state     models.WorkflowState
	file      *models.SelectedFile
	inFlight  *models.SelectedFile
	result    *models.ConversionResult
	errMsg    string
	updatedAt time.Time

	listenerMu sync.Mutex
	listeners  map[int]Listener
	nextID     int
}

// New creates an idle workflow with no selection.
func New(id string, files FileRemover) *Workflow {
	return &Workflow{
		id:        id,
		files:     files,
		state:     models.StateIdle,
		updatedAt: time.Now(),
		listeners: make(map[int]Listener),
	}
}

// ID returns the session id owning this workflow.
func (w *Workflow) ID() string { return w.id }

// Select replaces the current selection with an accepted PDF. A failure
// message belongs to the previous selection and is dropped, unless a
// conversion is still loading.
func (w *Workflow) Select(file *models.SelectedFile) {
	w.mu.Lock()
	prev := w.file
	w.file = file
	if w.state == models.StateFailed {
		w.state = models.StateIdle
		w.errMsg = ""
	}
	w.updatedAt = time.Now()
	w.mu.Unlock()

	w.release(prev)
	w.notify()
}

// Clear resets the selection to "no file chosen". Used when intake rejects
// a file and when the user removes the selection.
func (w *Workflow) Clear() {
	w.Select(nil)
}

// Begin moves the workflow into loading and returns the file to convert.
func (w *Workflow) Begin() (*models.SelectedFile, error) {
	w.mu.Lock()
	if w.state == models.StateLoading {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	if w.file == nil {
		w.mu.Unlock()
		return nil, ErrNoFile
	}

	file := *w.file
	w.inFlight = w.file
	w.state = models.StateLoading
	w.errMsg = ""
	w.updatedAt = time.Now()
	w.mu.Unlock()

	w.notify()
	return &file, nil
}

// Finish records the outcome of the conversion started by Begin. A failed
// conversion leaves the previous result untouched.
func (w *Workflow) Finish(result *models.ConversionResult, err error) {
	w.mu.Lock()
	if w.state != models.StateLoading {
		w.mu.Unlock()
		return
	}

	if err != nil {
		w.state = models.StateFailed
		w.errMsg = fmt.Sprintf("Error converting PDF: %v", err)
	} else {
		w.state = models.StateDone
		w.result = result
		w.errMsg = ""
	}

	orphan := w.inFlight
	w.inFlight = nil
	if orphan == w.file {
		orphan = nil
	}
	w.updatedAt = time.Now()
	w.mu.Unlock()

	w.release(orphan)
	w.notify()
}

// Convert runs one conversion with conv. The workflow leaves the loading
// state before Convert returns, whatever the outcome.
func (w *Workflow) Convert(ctx context.Context, conv Converter) (result *models.ConversionResult, err error) {
	file, err := w.Begin()
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("conversion panicked: %v", r)
			result = nil
		}
		w.Finish(result, err)
	}()

	log.Info().Str("session", shortID(w.id)).Str("file", file.Name).Msg("conversion started")
	result, err = conv.Convert(ctx, file)
	if err != nil {
		log.Error().Err(err).Str("session", shortID(w.id)).Str("file", file.Name).Msg("conversion failed")
		return nil, err
	}
	log.Info().Str("session", shortID(w.id)).Str("file", file.Name).Int64("ms", result.DurationMs).Msg("conversion complete")
	return result, nil
}

// Result returns a copy of the last successful conversion.
func (w *Workflow) Result() (models.ConversionResult, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.result == nil {
		return models.ConversionResult{}, false
	}
	return *w.result, true
}

// State returns the current conversion state.
func (w *Workflow) State() models.WorkflowState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Busy reports whether a conversion is in flight.
func (w *Workflow) Busy() bool {
	return w.State() == models.StateLoading
}

// Snapshot returns the browser-facing view of the workflow.
func (w *Workflow) Snapshot() models.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	snap := models.Snapshot{
		SessionID:  w.id,
		State:      w.state,
		CanConvert: w.file != nil && w.state != models.StateLoading,
		Error:      w.errMsg,
		UpdatedAt:  w.updatedAt,
	}
	if w.file != nil {
		f := *w.file
		snap.File = &f
	}
	if w.result != nil {
		snap.HasResult = true
		snap.HTML = w.result.HTML
		snap.SourceName = w.result.SourceName
		snap.Model = w.result.Model
	}
	return snap
}

// Subscribe registers a listener and returns its cancel function.
func (w *Workflow) Subscribe(fn Listener) func() {
	w.listenerMu.Lock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn
	w.listenerMu.Unlock()

	return func() {
		w.listenerMu.Lock()
		delete(w.listeners, id)
		w.listenerMu.Unlock()
	}
}

// Close drops the spooled bytes of the selection. The session manager never
// closes a busy workflow.
func (w *Workflow) Close() {
	w.mu.Lock()
	file := w.file
	w.file = nil
	w.mu.Unlock()

	w.release(file)
}

func (w *Workflow) notify() {
	snap := w.Snapshot()

	w.listenerMu.Lock()
	fns := make([]Listener, 0, len(w.listeners))
	for _, fn := range w.listeners {
		fns = append(fns, fn)
	}
	w.listenerMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// release deletes a replaced file unless it is still being converted.
func (w *Workflow) release(file *models.SelectedFile) {
	if file == nil || w.files == nil {
		return
	}

	w.mu.RLock()
	busy := w.inFlight == file
	w.mu.RUnlock()
	if busy {
		return
	}

	if err := w.files.Delete(file.ID); err != nil {
		log.Warn().Err(err).Str("session", shortID(w.id)).Str("file", file.ID).Msg("failed to delete spooled file")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
