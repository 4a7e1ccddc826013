package engine

import (
	"strings"

	"github.com/tphakala/lecturenotes/internal/endurance"
)

// Tick advances the Engine by one cooperative step. A host thread calls
// this at a nominal 10 Hz; latency spikes during model inference are
// expected and tolerated because the Recorder's capture callback runs on
// its own thread regardless of how long Tick takes.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick++

	if e.tick%enduranceCheckTicks == 0 {
		e.currentMode = e.endurance.CheckStatus()
	}
	if e.tick%e.ticksPerGC == 0 {
		e.models.ForceGC()
	}

	switch e.state {
	case Recording:
		e.tickRecording()
	case Summarizing:
		e.tickSummarizing()
	case Idle:
	}
}

func (e *Engine) tickRecording() {
	newAudio := e.recorder.GetAudioData()
	e.sessionAudio = append(e.sessionAudio, newAudio...)

	if e.tick%e.ticksPerCheckpoint == 0 {
		e.checkpoint()
	}

	if e.currentMode == endurance.HighPerformance && !e.circularBuf.IsEmpty() {
		e.drainCircularBufferToTranscript()
	}

	switch e.currentMode {
	case endurance.HighPerformance:
		e.accumulator = append(e.accumulator, newAudio...)
		if len(e.accumulator) >= accumulatorThreshold {
			e.runAccumulatorASR()
		}
	case endurance.Endurance:
		e.circularBuf.Push(newAudio)
	}
}

func (e *Engine) tickSummarizing() {
	newAudio := e.recorder.GetAudioData()
	e.circularBuf.Push(newAudio)
}

// checkpoint fires every ~2 minutes of wall clock while Recording. In
// Endurance mode the circular buffer is the only ASR input, so it is
// drained and transcribed here; in HighPerformance mode it has typically
// already been drained by the per-tick check below, and Clear is a no-op.
func (e *Engine) checkpoint() {
	if e.currentMode == endurance.Endurance {
		e.drainCircularBufferToTranscript()
	}
	e.circularBuf.Clear()
}

func (e *Engine) drainCircularBufferToTranscript() {
	samples := e.circularBuf.ReadAll()
	if len(samples) == 0 {
		return
	}
	text := e.models.Transcribe(samples)
	if text != "" {
		e.transcriptBuf.Push(text)
	}
}

func (e *Engine) runAccumulatorASR() {
	samples := e.accumulator
	e.accumulator = nil

	text := e.models.Transcribe(samples)
	if text == "" || strings.Contains(text, "[BLANK_AUDIO]") {
		return
	}

	trimmedNew := strings.TrimSpace(text)
	if trimmedNew == "" {
		return
	}
	existing := strings.TrimRight(e.transcriptBuf.GetContext(), " \t\n")
	if strings.HasSuffix(existing, trimmedNew) {
		return
	}
	e.transcriptBuf.Push(text)
}
