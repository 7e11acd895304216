package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/drios/docscope/internal/document"
)

// MediaTypePDF is the only media type eligible for analysis.
const MediaTypePDF = "application/pdf"

// defaultAnalysisTimeout bounds how long a session stays in Analyzing
// before failing; the analyzer is an AI inference call with unbounded
// latency.
const defaultAnalysisTimeout = 2 * time.Minute

// State is the lifecycle position of an analysis session.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateAnalyzing
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateAnalyzing:
		return "analyzing"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrNotPDF rejects a file whose media type is not PDF. The session
	// stays Idle and no request is dispatched.
	ErrNotPDF = errors.New("only PDF documents can be analyzed")

	// ErrAnalysisInFlight guards the single-session constraint: a new
	// analysis cannot start while one is in flight.
	ErrAnalysisInFlight = errors.New("an analysis is already in flight")
)

// File is a candidate upload as the user handed it over.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

func (f File) eligible() bool {
	mt := strings.ToLower(strings.TrimSpace(f.MediaType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt == MediaTypePDF
}

// FirstEligible narrows a multi-file selection to its first PDF, the way a
// single-document flow must. The skipped count covers every other file,
// eligible or not, so callers can tell the user what was ignored instead
// of dropping files silently.
func FirstEligible(files []File) (File, int, bool) {
	for _, f := range files {
		if f.eligible() {
			return f, len(files) - 1, true
		}
	}
	return File{}, len(files), false
}

// Session drives one upload-to-result flow as an explicit state machine:
// Idle -> Submitting -> Analyzing -> Succeeded | Failed, with an explicit
// Reset back to Idle. At most one analysis is in flight per session.
type Session struct {
	collaborator Submitter
	timeout      time.Duration

	mu       sync.Mutex
	state    State
	filename string
	outcome  *document.AnalysisOutcome
	failure  string
}

// NewSession creates an idle session. A zero timeout selects the default.
func NewSession(collaborator Submitter, timeout time.Duration) *Session {
	if timeout <= 0 {
		timeout = defaultAnalysisTimeout
	}
	return &Session{
		collaborator: collaborator,
		timeout:      timeout,
		state:        StateIdle,
	}
}

// Analyze runs one file through the analysis flow. A non-PDF file is
// rejected before any state change or request dispatch. Starting while a
// prior terminal state is showing discards it; starting while an analysis
// is in flight is an error.
//
// The call blocks until the session reaches a terminal state and returns
// the failure cause, if any; the same information stays inspectable on the
// session afterwards.
func (s *Session) Analyze(ctx context.Context, file File) error {
	if !file.eligible() {
		return ErrNotPDF
	}

	s.mu.Lock()
	if s.state == StateSubmitting || s.state == StateAnalyzing {
		s.mu.Unlock()
		return ErrAnalysisInFlight
	}
	s.state = StateSubmitting
	s.filename = file.Name
	s.outcome = nil
	s.failure = ""
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Analyzing begins the instant the request goes out; there is no
	// client-side content validation beyond the media type.
	s.setState(StateAnalyzing)
	outcome, err := s.collaborator.SubmitDocument(ctx, file.Name, file.Data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateFailed
		s.failure = failureMessage(err)
		return err
	}

	// A result with mostly or entirely absent fields is still a success;
	// only a declared error or a transport fault fails the session.
	s.state = StateSucceeded
	s.outcome = outcome
	return nil
}

// Reset returns a terminal session to Idle for a new analysis. It is the
// only way back: terminal states never expire on their own.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitting || s.state == StateAnalyzing {
		return ErrAnalysisInFlight
	}
	s.state = StateIdle
	s.filename = ""
	s.outcome = nil
	s.failure = ""
	return nil
}

// State returns the session's current lifecycle position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Filename returns the name of the file this session is working on.
func (s *Session) Filename() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filename
}

// Outcome returns the analysis result once the session has Succeeded.
func (s *Session) Outcome() *document.AnalysisOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Failure returns the user-facing failure message once the session has
// Failed.
func (s *Session) Failure() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// failureMessage maps the error taxonomy to what the user sees: declared
// analysis errors verbatim, timeouts and transport faults as generic,
// retryable messages.
func failureMessage(err error) string {
	var declared *AnalysisError
	switch {
	case errors.As(err, &declared):
		return declared.Message
	case errors.Is(err, context.DeadlineExceeded):
		return "the analysis timed out; try again"
	default:
		return "could not reach the analysis service; check that the backend is running"
	}
}
