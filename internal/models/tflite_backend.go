package models

import (
	"strings"
	"sync"

	tflite "github.com/tphakala/go-tflite"

	"github.com/tphakala/lecturenotes/internal/errors"
)

const componentModels = "models"

// placeholderVocab backs the minimal decode in decodeLogitsToText. Full
// ASR decoding against a real vocabulary is an external-collaborator
// concern; this adapter exists to exercise real model residency and
// inference rather than to produce production-grade transcripts.
var placeholderVocab = []string{"", "the", "a", "is", "and", "to", "of", "in", "that", "it"}

// TFLiteASR wraps a go-tflite interpreter loaded from a TensorFlow Lite
// ASR model, following the same load-handle/Delete-handle residency shape
// as the teacher's native classifier wrapper.
type TFLiteASR struct {
	mu          sync.Mutex
	model       *tflite.Model
	interpreter *tflite.Interpreter
}

// NewTFLiteASR loads the model at path and allocates an interpreter.
func NewTFLiteASR(path string) (*TFLiteASR, error) {
	model := tflite.NewModelFromFile(path)
	if model == nil {
		return nil, errors.Newf("failed to load ASR model: %s", path).
			Component(componentModels).Category(errors.CategoryModelLoad).Context("path", path).Build()
	}

	options := tflite.NewInterpreterOptions()
	defer options.Delete()
	options.SetNumThread(2)

	interpreter := tflite.NewInterpreter(model, options)
	if interpreter == nil {
		model.Delete()
		return nil, errors.Newf("failed to create ASR interpreter: %s", path).
			Component(componentModels).Category(errors.CategoryModelInit).Build()
	}
	if status := interpreter.AllocateTensors(); status != tflite.OK {
		interpreter.Delete()
		model.Delete()
		return nil, errors.Newf("failed to allocate ASR tensors: %v", status).
			Component(componentModels).Category(errors.CategoryModelInit).Build()
	}

	return &TFLiteASR{model: model, interpreter: interpreter}, nil
}

// Transcribe feeds samples into the model's input tensor and reads back a
// best-effort transcript from the output tensor.
func (a *TFLiteASR) Transcribe(samples []float32) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	input := a.interpreter.GetInputTensor(0)
	if input == nil {
		return "", errors.Newf("ASR model has no input tensor").
			Component(componentModels).Category(errors.CategoryModelInit).Build()
	}
	if err := copyFloatsToTensor(input, samples); err != nil {
		return "", err
	}

	if status := a.interpreter.Invoke(); status != tflite.OK {
		return "", errors.Newf("ASR inference failed: %v", status).
			Component(componentModels).Category(errors.CategoryAudioAnalysis).Build()
	}

	output := a.interpreter.GetOutputTensor(0)
	if output == nil {
		return "", nil
	}
	return decodeLogitsToText(output.Float32s()), nil
}

// Close releases the interpreter and model handles. After Close, the ASR
// slot is indistinguishable from one that was never loaded.
func (a *TFLiteASR) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.interpreter != nil {
		a.interpreter.Delete()
		a.interpreter = nil
	}
	if a.model != nil {
		a.model.Delete()
		a.model = nil
	}
	return nil
}

// TFLiteEmbedder wraps a go-tflite interpreter loaded from a 384-dim
// MiniLM-class embedding model.
type TFLiteEmbedder struct {
	mu          sync.Mutex
	model       *tflite.Model
	interpreter *tflite.Interpreter
}

// NewTFLiteEmbedder loads the model at path and allocates an interpreter.
func NewTFLiteEmbedder(path string) (*TFLiteEmbedder, error) {
	model := tflite.NewModelFromFile(path)
	if model == nil {
		return nil, errors.Newf("failed to load embedder model: %s", path).
			Component(componentModels).Category(errors.CategoryModelLoad).Context("path", path).Build()
	}

	options := tflite.NewInterpreterOptions()
	defer options.Delete()
	options.SetNumThread(2)

	interpreter := tflite.NewInterpreter(model, options)
	if interpreter == nil {
		model.Delete()
		return nil, errors.Newf("failed to create embedder interpreter: %s", path).
			Component(componentModels).Category(errors.CategoryModelInit).Build()
	}
	if status := interpreter.AllocateTensors(); status != tflite.OK {
		interpreter.Delete()
		model.Delete()
		return nil, errors.Newf("failed to allocate embedder tensors: %v", status).
			Component(componentModels).Category(errors.CategoryModelInit).Build()
	}

	return &TFLiteEmbedder{model: model, interpreter: interpreter}, nil
}

// Embed tokenizes text into the model's input tensor (byte-level, since no
// trained tokenizer ships with this module) and returns the output
// tensor's contents as the embedding vector.
func (e *TFLiteEmbedder) Embed(text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	input := e.interpreter.GetInputTensor(0)
	if input == nil {
		return nil, errors.Newf("embedder model has no input tensor").
			Component(componentModels).Category(errors.CategoryModelInit).Build()
	}
	if err := copyBytesToTensor(input, text); err != nil {
		return nil, err
	}

	if status := e.interpreter.Invoke(); status != tflite.OK {
		return nil, errors.Newf("embedding inference failed: %v", status).
			Component(componentModels).Category(errors.CategoryAudioAnalysis).Build()
	}

	output := e.interpreter.GetOutputTensor(0)
	if output == nil {
		return nil, nil
	}
	vec := append([]float32(nil), output.Float32s()...)
	return vec, nil
}

// Close releases the interpreter and model handles.
func (e *TFLiteEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.interpreter != nil {
		e.interpreter.Delete()
		e.interpreter = nil
	}
	if e.model != nil {
		e.model.Delete()
		e.model = nil
	}
	return nil
}

func copyFloatsToTensor(t *tflite.Tensor, samples []float32) error {
	dst := t.Float32s()
	if len(dst) == 0 {
		return errors.Newf("tensor has no float32 storage").
			Component(componentModels).Category(errors.CategoryModelInit).Build()
	}
	for i := range dst {
		if i < len(samples) {
			dst[i] = samples[i]
		} else {
			dst[i] = 0
		}
	}
	return nil
}

func copyBytesToTensor(t *tflite.Tensor, text string) error {
	dst := t.Float32s()
	if len(dst) == 0 {
		return errors.Newf("tensor has no float32 storage").
			Component(componentModels).Category(errors.CategoryModelInit).Build()
	}
	raw := []byte(text)
	for i := range dst {
		if i < len(raw) {
			dst[i] = float32(raw[i]) / 255.0
		} else {
			dst[i] = 0
		}
	}
	return nil
}

// decodeLogitsToText treats the output tensor as a sequence of per-frame
// argmax indices into placeholderVocab.
func decodeLogitsToText(logits []float32) string {
	vocabSize := len(placeholderVocab)
	if len(logits) == 0 || len(logits)%vocabSize != 0 {
		return ""
	}

	var words []string
	for frame := 0; frame*vocabSize < len(logits); frame++ {
		frameLogits := logits[frame*vocabSize : (frame+1)*vocabSize]
		bestVal, bestIdx := frameLogits[0], 0
		for i, v := range frameLogits {
			if v > bestVal {
				bestVal, bestIdx = v, i
			}
		}
		if word := placeholderVocab[bestIdx]; word != "" {
			words = append(words, word)
		}
	}
	return strings.Join(words, " ")
}
