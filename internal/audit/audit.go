// Package audit appends structured JSONL records of every pipeline run so a
// session can be reconstructed by correlation ID. The log is append-only and
// each line carries a SHA-256 hash of its own content for integrity checks.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"time"
)

// Logger writes audit entries to a JSONL file. Write failures are logged and
// swallowed so auditing never breaks the pipeline itself.
type Logger struct {
	path string
}

// NewLogger creates an audit logger appending to the given path
func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

type entry struct {
	Timestamp     string                 `json:"timestamp"`
	EventType     string                 `json:"event_type"`
	ActorID       string                 `json:"actor_id"`
	ActorType     string                 `json:"actor_type"`
	Resource      string                 `json:"resource"`
	Action        string                 `json:"action"`
	Result        string                 `json:"result"`
	CorrelationID string                 `json:"correlation_id"`
	Metadata      map[string]interface{} `json:"metadata"`
	LogHash       string                 `json:"log_hash,omitempty"`
}

// Log appends one audit entry. The log_hash field is the SHA-256 of the entry
// serialized without it.
func (l *Logger) Log(eventType, resource, action, result, correlationID string, metadata map[string]interface{}) {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	e := entry{
		Timestamp:     time.Now().UTC().Format(time.RFC3339Nano),
		EventType:     eventType,
		ActorID:       "rsum",
		ActorType:     "system",
		Resource:      resource,
		Action:        action,
		Result:        result,
		CorrelationID: correlationID,
		Metadata:      metadata,
	}

	unhashed, err := json.Marshal(e)
	if err != nil {
		slog.Warn("Failed to marshal audit entry", "error", err)
		return
	}

	sum := sha256.Sum256(unhashed)
	e.LogHash = hex.EncodeToString(sum[:])

	line, err := json.Marshal(e)
	if err != nil {
		slog.Warn("Failed to marshal audit entry", "error", err)
		return
	}

	if err := appendLine(l.path, line); err != nil {
		slog.Warn("Failed to write audit entry", "path", l.path, "error", err)
	}
}

// Step describes one pipeline operation for the execution trace
type Step struct {
	Index         int
	Name          string
	Result        string
	InputSummary  map[string]interface{}
	OutputSummary map[string]interface{}
	ErrorDetail   map[string]interface{}
	Duration      time.Duration
}

// LogStep records one execution step so the full run can be traced from the
// audit log alone
func (l *Logger) LogStep(correlationID string, step Step) {
	meta := map[string]interface{}{}
	if step.Index > 0 {
		meta["step_index"] = step.Index
	}
	if step.InputSummary != nil {
		meta["input_summary"] = step.InputSummary
	}
	if step.OutputSummary != nil {
		meta["output_summary"] = step.OutputSummary
	}
	if step.ErrorDetail != nil {
		meta["error_detail"] = step.ErrorDetail
	}
	if step.Duration > 0 {
		ms := float64(step.Duration) / float64(time.Millisecond)
		meta["duration_ms"] = math.Round(ms*100) / 100
	}

	l.Log("execution_step", step.Name, "call", step.Result, correlationID, meta)
}

func appendLine(path string, line []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}
