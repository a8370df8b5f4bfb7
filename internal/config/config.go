// Package config centralizes process configuration: defaults, an
// optional .env file, and process environment variables, in that
// increasing order of priority.
package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Keys this module reads. Unrecognized keys are still stored and
// retrievable; these constants exist so call sites don't repeat
// string literals.
const (
	KeyAnnotationTableFile     = "GDBMI_ANNOTATION_TABLE_FILE"
	KeyConsoleFlushGranularity = "GDBMI_CONSOLE_FLUSH_GRANULARITY"
	KeyDebugToStderr           = "GDBWIRE_DEBUG_TO_STDERR"
)

var defaults = map[string]string{
	KeyConsoleFlushGranularity: "push",
}

// Manager centralizes configuration access behind a thread-safe map,
// reloaded on demand via Load.
type Manager struct {
	mu         sync.RWMutex
	values     map[string]string
	annotation *AnnotationTableExtension
}

// New returns an empty Manager. Call Load to populate it.
func New() *Manager {
	return &Manager{values: make(map[string]string)}
}

// Load (re)populates the manager from defaults, then an optional .env
// file in the working directory (if present), then the process
// environment — each source overriding the last — and then, if
// KeyAnnotationTableFile names a readable file, loads the annotation
// table extension from it.
func (m *Manager) Load() error {
	m.mu.Lock()
	m.values = make(map[string]string, len(defaults))
	for k, v := range defaults {
		m.values[k] = v
	}

	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			m.values[k] = v
		}
	}

	for _, e := range os.Environ() {
		if k, v, ok := strings.Cut(e, "="); ok {
			m.values[k] = v
		}
	}
	tablePath := m.values[KeyAnnotationTableFile]
	m.mu.Unlock()

	ext, err := LoadAnnotationTableExtension(tablePath)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.annotation = ext
	m.mu.Unlock()
	return nil
}

// AnnotationTable returns the most recently loaded annotation table
// extension, or nil if none was configured.
func (m *Manager) AnnotationTable() *AnnotationTableExtension {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.annotation
}

// SetAnnotationTable installs ext directly, bypassing Load. Intended
// for use by a Watch callback on hot-reload.
func (m *Manager) SetAnnotationTable(ext *AnnotationTableExtension) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.annotation = ext
}

// Set overrides a single key, e.g. from a parsed command-line flag.
func (m *Manager) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// GetString returns the value of key, or "" if unset.
func (m *Manager) GetString(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

// GetBool reports whether key is set to a truthy value. An empty or
// missing value is false; otherwise the value must parse as a bool per
// strconv.ParseBool.
func (m *Manager) GetBool(key string) bool {
	m.mu.RLock()
	v, ok := m.values[key]
	m.mu.RUnlock()
	if !ok || v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
