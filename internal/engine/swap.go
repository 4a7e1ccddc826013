package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tphakala/lecturenotes/internal/audio"
	"github.com/tphakala/lecturenotes/internal/langdetect"
)

const ragRelevanceThreshold = 0.4

// StopRecordingAndSummarize runs the swap protocol: unload ASR, summarize
// the rolling transcript enriched with retrieved context from prior
// notes, persist the result (and the session's audio), then resume
// recording. Audio capture continues throughout via the circular buffer
// regardless of how the summarization steps below fare.
func (e *Engine) StopRecordingAndSummarize(appendTo *int64) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// 1. Unload ASR, enter Summarizing.
	e.models.UnloadASR()
	e.state = Summarizing

	// 2. Load summarizer and embedder; they may coexist.
	if err := e.models.LoadSummarizer(); err != nil {
		e.logger.Warn("summarizer load failed during swap", "error", err)
	}
	if err := e.models.LoadEmbedder(); err != nil {
		e.logger.Warn("embedder load failed during swap", "error", err)
	}

	// 3. Context text and language.
	contextText := e.transcriptBuf.GetContext()
	lang := langdetect.Detect(contextText)

	// 4. Retrieve similar notes above the relevance threshold.
	queryVec := e.models.Embed(contextText)
	contextBlock := e.buildContextBlock(queryVec)

	// 5. Summarize. A missing summarizer yields an empty summary, which
	// still flows through the rest of the swap unchanged.
	finalInput := contextText + contextBlock
	summary := e.models.Summarize(finalInput)

	// 6. Unload summarizer.
	e.models.UnloadSummarizer()

	// 7. Persist the note.
	noteID, err := e.persistNote(appendTo, summary)
	if err != nil {
		e.logger.Warn("note persistence failed during swap; skipping embedding and audio attachment", "error", err)
	} else {
		// 8. Embed the context text again (not the summary) and save it.
		if vec := e.models.Embed(contextText); vec != nil {
			if err := e.store.SaveEmbedding(noteID, vec); err != nil {
				e.logger.Warn("embedding save failed during swap", "error", err)
			}
		}

		// 9. Persist session audio as a WAV attachment, then clear it.
		if err := e.attachSessionAudio(noteID); err != nil {
			e.logger.Warn("audio attachment failed during swap", "error", err)
		}
		e.sessionAudio = nil
	}

	// 10. Unload embedder.
	e.models.UnloadEmbedder()

	// Audio keeps arriving on the capture thread for the entire duration
	// of this call; since nothing calls Tick while we're Summarizing,
	// drain it into the circular buffer here — the same thing
	// tickSummarizing would have done on every intervening tick — so it
	// surfaces to ASR on the first tick after Recording resumes.
	e.circularBuf.Push(e.recorder.GetAudioData())

	// 11. Resume recording.
	if err := e.models.LoadASR(); err != nil {
		e.logger.Warn("ASR reload failed after swap", "error", err)
	}
	e.state = Recording

	e.logger.Info("swap complete", "lang", lang, "note_id", noteID, "summary_len", len(summary))
	return summary, nil
}

func (e *Engine) persistNote(appendTo *int64, summary string) (int64, error) {
	if appendTo != nil {
		if err := e.store.AppendToNote(*appendTo, summary); err != nil {
			return 0, err
		}
		return *appendTo, nil
	}

	title := fmt.Sprintf("Note %d", time.Now().Unix())
	return e.store.AddNote(title, summary, e.currentFolder)
}

func (e *Engine) attachSessionAudio(noteID int64) error {
	if len(e.sessionAudio) == 0 {
		return nil
	}
	filename := fmt.Sprintf("note-%d-%s.wav", noteID, uuid.NewString())
	path := filepath.Join(e.audioDir, filename)
	if err := audio.WriteWAV(path, e.sessionAudio); err != nil {
		return err
	}
	_, err := e.store.AddAttachment(noteID, "audio", path)
	return err
}

// buildContextBlock retrieves the top-3 notes most similar to queryVec,
// keeps only those above the RAG relevance threshold, and renders their
// title plus first two lines of decrypted content.
func (e *Engine) buildContextBlock(queryVec []float32) string {
	if queryVec == nil {
		return ""
	}

	similar, err := e.store.SearchSimilar(queryVec, 3)
	if err != nil {
		e.logger.Warn("similarity search failed during swap", "error", err)
		return ""
	}

	var block strings.Builder
	for _, s := range similar {
		if s.Score <= ragRelevanceThreshold {
			continue
		}
		note, err := e.store.GetNote(s.NoteID)
		if err != nil {
			continue
		}
		block.WriteString("\n\n")
		block.WriteString(note.Title)
		block.WriteString(": ")
		block.WriteString(firstLines(note.Content, 2))
	}
	return block.String()
}

func firstLines(text string, n int) string {
	lines := strings.SplitN(text, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
