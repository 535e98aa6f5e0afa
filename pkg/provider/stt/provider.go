// Package stt defines the Transcriber interface for Speech-to-Text backends.
//
// A transcriber wraps a batch transcription service: the caller hands over a
// complete audio recording and receives the transcribed text plus the
// language the service detected. There is no streaming surface — a dictation
// run starts only after the user stops recording, so the whole capture is
// available up front.
//
// Implementations must be safe for concurrent use.
package stt

import "context"

// Request carries one audio recording to be transcribed.
type Request struct {
	// Audio is the complete encoded recording (e.g. WebM/Opus or WAV bytes).
	Audio []byte

	// Filename is the form-data filename hint for the upload. Providers that
	// sniff the container format from the extension need it; defaults to
	// "audio.webm" when empty.
	Filename string

	// Language is the expected spoken language code (e.g. "de", "en").
	// "auto" or empty lets the provider detect the language.
	Language string
}

// Result is the outcome of a successful transcription.
type Result struct {
	// Text is the transcribed speech content.
	Text string

	// Language is the language code the provider detected (e.g. "de").
	// Empty when the provider did not report one.
	Language string
}

// Transcriber is the abstraction over any batch STT backend.
//
// Implementations must be safe for concurrent use and must respect context
// cancellation between retry attempts.
type Transcriber interface {
	// Transcribe sends the recording to the backend and returns the
	// transcribed text with the detected language.
	//
	// Errors that survive the implementation's retry budget are returned
	// wrapped so that apierr.KindOf still classifies them; an authentication
	// failure is returned immediately without retries.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}
