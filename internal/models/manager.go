package models

import (
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"sync"

	"github.com/tphakala/lecturenotes/internal/conf"
	"github.com/tphakala/lecturenotes/internal/logging"
)

// Manager holds at most one of {ASR, Summarizer, Embedder} resident at a
// time, except that the Embedder may coexist with the Summarizer. ASR is
// never resident alongside either. Each slot is a plain interface value:
// loading stores a handle, unloading sets it back to nil and calls
// Close() — "unloaded" is indistinguishable from "never loaded" because
// there is no separate boolean flag tracking residency.
type Manager struct {
	mu sync.Mutex

	asr        ASR
	summarizer Summarizer
	embedder   Embedder

	modelsDir string
	logger    *slog.Logger
}

// NewManager returns a Manager that resolves model artifacts relative to
// modelsDir.
func NewManager(modelsDir string) *Manager {
	return &Manager{
		modelsDir: modelsDir,
		logger:    logging.ForService("models"),
	}
}

// LoadASR unloads the summarizer (and embedder, which otherwise only
// coexists with the summarizer) if resident, then loads ASR if absent.
func (m *Manager) LoadASR() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.summarizer != nil {
		m.unloadSummarizerLocked()
	}
	if m.embedder != nil {
		m.unloadEmbedderLocked()
	}
	if m.asr != nil {
		return nil
	}

	asr, err := newASRBackend(m.modelsDir)
	if err != nil {
		m.logger.Error("ASR load failed", "error", err)
		return err
	}
	m.asr = asr
	m.logger.Info("ASR loaded")
	return nil
}

// UnloadASR drops the ASR handle if resident.
func (m *Manager) UnloadASR() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unloadASRLocked()
}

func (m *Manager) unloadASRLocked() {
	if m.asr == nil {
		return
	}
	if err := m.asr.Close(); err != nil {
		m.logger.Warn("ASR close failed", "error", err)
	}
	m.asr = nil
	m.logger.Info("ASR unloaded")
}

// LoadSummarizer unloads ASR if resident, then loads the summarizer if
// absent.
func (m *Manager) LoadSummarizer() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.asr != nil {
		m.unloadASRLocked()
	}
	if m.summarizer != nil {
		return nil
	}

	m.summarizer = NewExtractiveSummarizer()
	m.logger.Info("summarizer loaded")
	return nil
}

// UnloadSummarizer drops the summarizer handle and requests a forced heap
// collection.
func (m *Manager) UnloadSummarizer() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unloadSummarizerLocked()
	m.forceGCLocked()
}

func (m *Manager) unloadSummarizerLocked() {
	if m.summarizer == nil {
		return
	}
	if err := m.summarizer.Close(); err != nil {
		m.logger.Warn("summarizer close failed", "error", err)
	}
	m.summarizer = nil
	m.logger.Info("summarizer unloaded")
}

// LoadEmbedder unloads ASR if resident (the embedder may coexist with the
// summarizer but never with ASR), then loads the embedder if absent.
func (m *Manager) LoadEmbedder() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.asr != nil {
		m.unloadASRLocked()
	}
	if m.embedder != nil {
		return nil
	}

	embedder, err := newEmbedderBackend(m.modelsDir)
	if err != nil {
		m.logger.Error("embedder load failed", "error", err)
		return err
	}
	m.embedder = embedder
	m.logger.Info("embedder loaded")
	return nil
}

// UnloadEmbedder drops the embedder handle if resident.
func (m *Manager) UnloadEmbedder() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unloadEmbedderLocked()
}

func (m *Manager) unloadEmbedderLocked() {
	if m.embedder == nil {
		return
	}
	if err := m.embedder.Close(); err != nil {
		m.logger.Warn("embedder close failed", "error", err)
	}
	m.embedder = nil
	m.logger.Info("embedder unloaded")
}

// Transcribe delegates to ASR, returning an empty string if ASR is not
// resident.
func (m *Manager) Transcribe(samples []float32) string {
	m.mu.Lock()
	asr := m.asr
	m.mu.Unlock()

	if asr == nil {
		return ""
	}
	text, err := asr.Transcribe(samples)
	if err != nil {
		m.logger.Warn("transcription failed", "error", err)
		return ""
	}
	return text
}

// Summarize delegates to the summarizer, returning an empty string if it
// is not resident.
func (m *Manager) Summarize(text string) string {
	m.mu.Lock()
	summarizer := m.summarizer
	m.mu.Unlock()

	if summarizer == nil {
		return ""
	}
	result, err := summarizer.Summarize(text)
	if err != nil {
		m.logger.Warn("summarization failed", "error", err)
		return ""
	}
	return result
}

// Embed delegates to the embedder, returning nil if it is not resident.
func (m *Manager) Embed(text string) []float32 {
	m.mu.Lock()
	embedder := m.embedder
	m.mu.Unlock()

	if embedder == nil {
		return nil
	}
	vec, err := embedder.Embed(text)
	if err != nil {
		m.logger.Warn("embedding failed", "error", err)
		return nil
	}
	return vec
}

// ForceGC requests the allocator return free pages to the OS.
func (m *Manager) ForceGC() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forceGCLocked()
}

func (m *Manager) forceGCLocked() {
	m.logger.Debug("triggering manual heap collection")
	debug.FreeOSMemory()
}

// newASRBackend resolves the configured ASR backend.
func newASRBackend(modelsDir string) (ASR, error) {
	settings := conf.Setting().Models
	switch settings.ASRBackend {
	case "tflite":
		return NewTFLiteASR(filepath.Join(modelsDir, settings.ASRModelFile))
	default:
		return NewHeuristicASR(), nil
	}
}

// newEmbedderBackend resolves the configured embedder backend.
func newEmbedderBackend(modelsDir string) (Embedder, error) {
	settings := conf.Setting().Models
	switch settings.EmbedderBackend {
	case "tflite":
		return NewTFLiteEmbedder(filepath.Join(modelsDir, settings.EmbedderModelFile))
	default:
		return NewHeuristicEmbedder(), nil
	}
}
