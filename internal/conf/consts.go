// conf/consts.go hard coded constants
package conf

const (
	// SampleRate is the target rate the Engine resamples all captured audio to.
	SampleRate = 16000
	// BitDepth of the PCM samples written to WAV attachments.
	BitDepth = 16
	// NumChannels of audio fed through the pipeline; mono only.
	NumChannels = 1

	// CircularBufferCapacity is 30s of audio at SampleRate.
	CircularBufferCapacity = 30 * SampleRate

	// DefaultTranscriptMaxLength is the Rolling Transcript Buffer's default character budget.
	DefaultTranscriptMaxLength = 8000

	// StreamingWindowSamples is the transcription accumulator threshold (~3s).
	StreamingWindowSamples = 3 * SampleRate

	// DefaultTickIntervalMillis is the nominal host tick cadence.
	DefaultTickIntervalMillis = 100

	// CheckpointTicks is ~2 minutes at the nominal 10Hz cadence.
	CheckpointTicks = 1200
	// EnduranceCheckTicks is how often endurance mode is re-evaluated.
	EnduranceCheckTicks = 300
	// ForceGCTicks is ~20 minutes at the nominal 10Hz cadence.
	ForceGCTicks = 12000

	// ThermalZonePath is the Linux thermal source read by the Endurance Controller.
	ThermalZonePath = "/sys/class/thermal/thermal_zone0/temp"

	// EmbeddingDim is the dimensionality of the default embedder's output vectors.
	EmbeddingDim = 384
)
