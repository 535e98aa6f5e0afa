package dictation

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/skoschel/fluesterpost/internal/observe"
	"github.com/skoschel/fluesterpost/pkg/provider/apierr"
	"github.com/skoschel/fluesterpost/pkg/provider/stt"
)

// State is the lifecycle phase of a pipeline run.
type State int

const (
	// StateIdle is the phase before any work starts.
	StateIdle State = iota

	// StateTranscribing covers the speech-to-text stage, retries included.
	StateTranscribing

	// StateCleaning covers the LLM cleanup stage.
	StateCleaning

	// StateDone is the terminal success phase. Cleanup fallback still
	// counts as done: the run produced usable text.
	StateDone

	// StateFailed is the terminal failure phase, reached only when
	// transcription fails.
	StateFailed
)

// String returns the lowercase phase name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTranscribing:
		return "transcribing"
	case StateCleaning:
		return "cleaning"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request carries one dictation through the pipeline.
type Request struct {
	// SessionID groups runs for deduplication. Concurrent runs with the
	// same non-empty SessionID are coalesced: later callers wait for and
	// share the first caller's result. Empty means no coalescing.
	SessionID string

	// Audio is the recorded audio blob.
	Audio []byte

	// Filename names the audio for the multipart upload, extension
	// included. Empty selects the transcriber's default.
	Filename string

	// Mode supplies the cleanup rules and optional few-shot examples.
	Mode Mode

	// Dictionary is applied to the final text (and to the raw text on
	// cleanup fallback).
	Dictionary []DictionaryEntry

	// Language is the expected language hint for transcription. Empty or
	// "auto" lets the transcriber detect it.
	Language string
}

// Result is the outcome of a successful pipeline run.
type Result struct {
	// Text is the cleaned, dictionary-corrected final text.
	Text string

	// RawText is the unmodified transcript, kept for display and for
	// re-running cleanup with different rules.
	RawText string

	// Language is the language the transcriber detected.
	Language string

	// ModeID is the mode the run was cleaned with.
	ModeID string
}

// PipelineOption is a functional option for the Pipeline.
type PipelineOption func(*Pipeline)

// WithMetrics overrides the metrics instance, mainly for tests.
func WithMetrics(m *observe.Metrics) PipelineOption {
	return func(p *Pipeline) {
		if m != nil {
			p.metrics = m
		}
	}
}

// Pipeline orchestrates one dictation from audio to final text:
// transcription, LLM cleanup, dictionary substitution.
//
// A transcription failure aborts the run; there is no text to fall back on.
// A cleanup failure does not: the Cleaner degrades to the raw transcript
// with the dictionary applied, so the run still completes.
//
// Pipeline is safe for concurrent use.
type Pipeline struct {
	stt     stt.Transcriber
	cleaner *Cleaner
	metrics *observe.Metrics

	flight singleflight.Group
	seq    atomic.Int64
}

// NewPipeline returns a Pipeline wiring the given transcriber and cleaner.
func NewPipeline(transcriber stt.Transcriber, cleaner *Cleaner, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		stt:     transcriber,
		cleaner: cleaner,
		metrics: observe.DefaultMetrics(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run executes the pipeline for one dictation.
//
// Runs sharing a non-empty SessionID are coalesced: while one is in flight,
// further Run calls with the same SessionID block and receive the in-flight
// run's result instead of starting their own. The in-flight run keeps the
// first caller's context; a joined caller's cancellation does not stop it.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	key := req.SessionID
	if key == "" {
		key = "run-" + strconv.FormatInt(p.seq.Add(1), 10)
	}

	v, err, shared := p.flight.Do(key, func() (any, error) {
		return p.run(ctx, req)
	})
	if shared {
		observe.Logger(ctx).Debug("joined in-flight pipeline run", "session", req.SessionID)
	}
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (p *Pipeline) run(ctx context.Context, req Request) (*Result, error) {
	ctx, span := observe.StartSpan(ctx, "pipeline.run")
	defer span.End()
	log := observe.Logger(ctx)

	p.metrics.ActiveRuns.Add(ctx, 1)
	defer p.metrics.ActiveRuns.Add(ctx, -1)
	start := time.Now()

	state := StateIdle
	transition := func(next State) {
		log.Debug("pipeline state", "from", state.String(), "to", next.String(),
			"session", req.SessionID, "mode", req.Mode.ID)
		state = next
	}

	transition(StateTranscribing)
	sttStart := time.Now()
	transcript, err := p.stt.Transcribe(ctx, stt.Request{
		Audio:    req.Audio,
		Filename: req.Filename,
		Language: req.Language,
	})
	p.metrics.TranscriptionDuration.Record(ctx, time.Since(sttStart).Seconds())
	if err != nil {
		transition(StateFailed)
		p.metrics.RecordProviderError(ctx, "stt", apierr.KindOf(err).String())
		p.metrics.RecordPipelineRun(ctx, req.Mode.ID, "error")
		log.Error("transcription failed", "error", err)
		return nil, fmt.Errorf("pipeline run: %w", err)
	}
	log.Info("transcription complete",
		"chars", len(transcript.Text), "language", transcript.Language)

	transition(StateCleaning)
	cleanStart := time.Now()
	text := p.cleaner.Clean(ctx, transcript.Text, req.Mode.Prompt,
		req.Dictionary, transcript.Language, req.Mode.Examples)
	p.metrics.CleanupDuration.Record(ctx, time.Since(cleanStart).Seconds())

	transition(StateDone)
	p.metrics.PipelineDuration.Record(ctx, time.Since(start).Seconds())
	p.metrics.RecordPipelineRun(ctx, req.Mode.ID, "ok")
	log.Info("pipeline complete", "chars", len(text), "duration", time.Since(start))

	return &Result{
		Text:     text,
		RawText:  transcript.Text,
		Language: transcript.Language,
		ModeID:   req.Mode.ID,
	}, nil
}
