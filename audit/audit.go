/*
Package audit provides best-effort audit logging for the banking core.

The ledger and scheduler emit events through the Logger interface and
never look at the outcome: a logging failure must not block or fail a
business operation. Sensitive values (government ids, account numbers)
are masked before they reach any sink.
*/
package audit

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger records an audit event. The optional trailing value is
// sensitive and is masked before being written anywhere.
type Logger interface {
	Log(action, message string, sensitive ...string)
}

// =============================================================================
// MASKING
// =============================================================================

// Mask hides all but the last four characters of a sensitive value.
func Mask(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return "****"
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// =============================================================================
// LOGRUS SINK
// =============================================================================

// Log writes structured JSON audit lines via logrus. Write failures are
// swallowed by logrus itself; callers never see them.
type Log struct {
	log  *logrus.Logger
	user string
	ip   string
}

// New opens (or creates) the audit log file at path. The parent
// directory is created when missing.
func New(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return NewWriter(f), nil
}

// NewWriter builds a logger over an arbitrary writer (tests use a buffer).
func NewWriter(w io.Writer) *Log {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})

	user := "unknown"
	if u := os.Getenv("USER"); u != "" {
		user = u
	}
	return &Log{log: l, user: user, ip: "127.0.0.1"}
}

func (l *Log) Log(action, message string, sensitive ...string) {
	fields := logrus.Fields{
		"action": action,
		"user":   l.user,
		"ip":     l.ip,
	}
	if len(sensitive) > 0 && sensitive[0] != "" {
		fields["pii"] = Mask(sensitive[0])
	}
	l.log.WithFields(fields).Info(message)
}

// =============================================================================
// NOP AND FAN-OUT
// =============================================================================

// Nop discards everything; the default collaborator for tests.
type Nop struct{}

func (Nop) Log(string, string, ...string) {}

// Multi fans an event out to several sinks.
type Multi []Logger

func (m Multi) Log(action, message string, sensitive ...string) {
	for _, l := range m {
		l.Log(action, message, sensitive...)
	}
}

// Recorder captures events in memory so tests can assert on emissions.
type Recorder struct {
	Events []RecordedEvent
}

type RecordedEvent struct {
	Action  string
	Message string
	Masked  string
}

func (r *Recorder) Log(action, message string, sensitive ...string) {
	ev := RecordedEvent{Action: action, Message: message}
	if len(sensitive) > 0 && sensitive[0] != "" {
		ev.Masked = Mask(sensitive[0])
	}
	r.Events = append(r.Events, ev)
}
