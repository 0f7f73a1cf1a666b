package editor

import (
	"errors"
	"sync"

	"github.com/inkwell-dev/inkwell/pkg/doctree"
)

// Converter is the HTML bridge surface the editor depends on. The
// production implementation is bridge.Bridge; tests substitute
// deterministic stand-ins.
type Converter interface {
	Import(src string) ([]*doctree.Node, error)
	Export(nodes []*doctree.Node) (string, error)
}

// FieldSink receives synced HTML for a named field. SetField reports
// whether the field exists; a false return is a silent no-op for the
// caller, never an error — the editor keeps functioning headless.
type FieldSink interface {
	SetField(id, value string) bool
}

// Clipboard reads host clipboard text. Reads are fire-and-forget: a
// denial means the edit silently does not occur.
type Clipboard interface {
	ReadText() (string, error)
}

// Prompter asks the host for one line of input, e.g. table dimensions.
// It blocks only the calling interaction.
type Prompter interface {
	Prompt(message, fallback string) (string, bool)
}

// HostFunc is a host-global function invoked verbatim with configured
// arguments.
type HostFunc func(args ...string)

// HostGlobals resolves host-global functions by name. The spellcheck
// hook goes through here; the core never implements spellcheck itself.
type HostGlobals interface {
	Lookup(name string) (HostFunc, bool)
}

// ErrClipboardDenied is returned by the default clipboard.
var ErrClipboardDenied = errors.New("editor: clipboard access denied")

type deniedClipboard struct{}

func (deniedClipboard) ReadText() (string, error) { return "", ErrClipboardDenied }

type silentPrompter struct{}

func (silentPrompter) Prompt(message, fallback string) (string, bool) { return "", false }

type emptyGlobals struct{}

func (emptyGlobals) Lookup(name string) (HostFunc, bool) { return nil, false }

// MemorySink is a map-backed FieldSink. Only fields created up front
// exist; writes to other ids report absence.
type MemorySink struct {
	mu     sync.RWMutex
	fields map[string]string
}

// NewMemorySink creates a sink with the given fields present and empty.
func NewMemorySink(ids ...string) *MemorySink {
	m := &MemorySink{fields: make(map[string]string, len(ids))}
	for _, id := range ids {
		m.fields[id] = ""
	}
	return m
}

// AddField creates an empty field.
func (m *MemorySink) AddField(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.fields[id]; !ok {
		m.fields[id] = ""
	}
}

// RemoveField deletes a field; later writes to it become no-ops.
func (m *MemorySink) RemoveField(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.fields, id)
}

// SetField implements FieldSink.
func (m *MemorySink) SetField(id, value string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.fields[id]; !ok {
		return false
	}
	m.fields[id] = value
	return true
}

// Get returns the field's current value.
func (m *MemorySink) Get(id string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.fields[id]
	return v, ok
}
