// Package engine composes audio capture, model residency, the rolling
// transcript, endurance hysteresis, language detection, and the
// encrypted note store into the single-threaded cooperative controller
// a host thread drives by calling Tick.
package engine

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/tphakala/lecturenotes/internal/audio"
	"github.com/tphakala/lecturenotes/internal/conf"
	"github.com/tphakala/lecturenotes/internal/endurance"
	"github.com/tphakala/lecturenotes/internal/errors"
	"github.com/tphakala/lecturenotes/internal/logging"
	"github.com/tphakala/lecturenotes/internal/models"
	"github.com/tphakala/lecturenotes/internal/notestore"
	"github.com/tphakala/lecturenotes/internal/transcript"
)

const componentEngine = "engine"

// State is the Engine's coarse lifecycle state.
type State int

const (
	Idle State = iota
	Recording
	Summarizing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Summarizing:
		return "summarizing"
	default:
		return "unknown"
	}
}

// recorder is the subset of *audio.Recorder the Engine depends on, so
// tests can drive the tick loop with a scripted mock instead of a real
// capture device.
type recorder interface {
	Start() error
	Stop()
	GetAudioData() []float32
}

const (
	circularBufferCapacity     = conf.CircularBufferCapacity
	accumulatorThreshold       = conf.StreamingWindowSamples
	defaultTranscriptMaxLength = conf.DefaultTranscriptMaxLength
	enduranceCheckTicks        = uint64(conf.EnduranceCheckTicks)
	checkpointTicksNominal     = uint64(conf.CheckpointTicks)
	forceGCTicksNominal        = uint64(conf.ForceGCTicks)
	nominalTickHz              = 10.0
)

// Engine is the single-threaded cooperative controller. Shared mutable
// state with the outside world is limited to the Recorder's capture
// queue; the Engine's own fields are touched only from Tick and the
// host-facing methods, which the caller is expected to serialize (the
// host bridge does this with a mutex).
type Engine struct {
	mu sync.Mutex

	state State
	tick  uint64

	subject       string
	currentFolder *int64

	recorder      recorder
	models        *models.Manager
	circularBuf   *audio.CircularBuffer
	transcriptBuf *transcript.Buffer
	endurance     *endurance.Controller
	store         *notestore.Store

	currentMode endurance.Mode

	sessionAudio []float32
	accumulator  []float32

	audioDir string

	ticksPerCheckpoint uint64
	ticksPerGC         uint64

	logger *slog.Logger
}

// New opens the note store, constructs every subsystem, and seeds a
// default "General" folder if the store has none. The content encryption
// passphrase is resolved from configuration rather than taken as a
// parameter, so the host-facing signature matches InitApp(dbPath,
// modelsDir) exactly.
func New(dbPath, modelsDir string) (*Engine, error) {
	settings := conf.Setting()

	store, err := notestore.Open(dbPath, settings.Store.Passphrase)
	if err != nil {
		return nil, err
	}

	audioDir := filepath.Join(filepath.Dir(dbPath), "audio")
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return nil, errors.New(err).Component(componentEngine).Category(errors.CategoryFileIO).
			Context("audio_dir", audioDir).Build()
	}

	scale := tickScale(settings.Engine.TickIntervalMillis)

	e := &Engine{
		state:       Idle,
		currentMode: endurance.HighPerformance,
		recorder: audio.NewRecorder(audio.RecorderConfig{
			DeviceName:   settings.Audio.DeviceName,
			BufferFrames: settings.Audio.BufferFrames,
		}),
		models:             models.NewManager(modelsDir),
		circularBuf:        audio.NewCircularBuffer(circularBufferCapacity),
		transcriptBuf:      transcript.NewBuffer(defaultTranscriptMaxLength),
		endurance:          endurance.NewController(),
		store:              store,
		audioDir:           audioDir,
		ticksPerCheckpoint: scaleTicks(checkpointTicksNominal, scale),
		ticksPerGC:         scaleTicks(forceGCTicksNominal, scale),
		logger:             logging.ForService("engine"),
	}
	return e, nil
}

func tickScale(tickIntervalMillis int) float64 {
	if tickIntervalMillis <= 0 {
		return 1
	}
	hz := 1000.0 / float64(tickIntervalMillis)
	return hz / nominalTickHz
}

func scaleTicks(nominal uint64, scale float64) uint64 {
	scaled := uint64(float64(nominal) * scale)
	if scaled == 0 {
		return 1
	}
	return scaled
}

// Close releases the underlying note store connection and any resident
// models. It does not stop the recorder — callers in a Recording state
// should call StopRecordingAndSummarize first if they want a clean audio
// flush.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.models.UnloadASR()
	e.models.UnloadSummarizer()
	e.models.UnloadEmbedder()
	return e.store.Close()
}

// State returns the Engine's current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// StartRecording loads ASR, starts the recorder, resets the session audio
// buffer, and transitions to Recording.
func (e *Engine) StartRecording(subject string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.models.LoadASR(); err != nil {
		return err
	}
	if err := e.recorder.Start(); err != nil {
		return err
	}

	e.subject = subject
	e.sessionAudio = nil
	e.state = Recording
	e.logger.Info("recording started", "subject", subject)
	return nil
}

// UpdateBatteryTemp forwards a battery temperature reading to the
// Endurance Controller.
func (e *Engine) UpdateBatteryTemp(temp float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endurance.UpdateBatteryTemp(temp)
}

// SetSubject updates the current session's subject metadata.
func (e *Engine) SetSubject(subject string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subject = subject
}

// SetCurrentFolder updates which folder new notes are filed under.
func (e *Engine) SetCurrentFolder(folderID *int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentFolder = folderID
}

// GetCurrentTranscript runs one Tick and then returns the current Rolling
// Transcript contents, per §6.
func (e *Engine) GetCurrentTranscript() string {
	e.Tick()
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transcriptBuf.GetContext()
}
