// Package mock provides a test double for the stt.Transcriber interface.
//
// Use Transcriber in unit tests to feed controlled transcription results
// without a live STT backend and to verify what the pipeline sent.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/skoschel/fluesterpost/pkg/provider/stt"
)

// TranscribeCall records a single invocation of Transcribe.
type TranscribeCall struct {
	// Ctx is the context passed to Transcribe.
	Ctx context.Context
	// Req is the request passed to Transcribe.
	Req stt.Request
}

// Transcriber is a mock implementation of stt.Transcriber.
// Zero values for response fields cause Transcribe to return nil, nil.
type Transcriber struct {
	mu sync.Mutex

	// Result is returned by Transcribe when Err is nil.
	Result *stt.Result

	// Err, if non-nil, is returned as the error from Transcribe.
	Err error

	// Delay, when non-zero, makes Transcribe block for the given duration
	// (or until the context is cancelled) before returning. Used by
	// concurrency tests.
	Delay time.Duration

	// Calls records every invocation of Transcribe in order.
	Calls []TranscribeCall
}

// Transcribe records the call and returns Result, Err.
func (m *Transcriber) Transcribe(ctx context.Context, req stt.Request) (*stt.Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, TranscribeCall{Ctx: ctx, Req: req})
	delay := m.Delay
	result, err := m.Result, m.Err
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return result, err
}

// CallCount returns the number of recorded Transcribe invocations.
func (m *Transcriber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Ensure Transcriber implements stt.Transcriber at compile time.
var _ stt.Transcriber = (*Transcriber)(nil)
