package audit

import (
	"encoding/json"
	"log/slog"
	"time"
)

// DLQ is the dead letter queue: failed requests are appended after the
// pipeline fails terminally, so they can be reviewed or replayed later.
// Write errors are swallowed; the caller's error path stays intact.
type DLQ struct {
	path string
}

// NewDLQ creates a dead letter queue appending to the given path
func NewDLQ(path string) *DLQ {
	return &DLQ{path: path}
}

type dlqEntry struct {
	Timestamp      string                 `json:"timestamp"`
	CorrelationID  string                 `json:"correlation_id"`
	StepName       string                 `json:"step_name"`
	RequestSummary map[string]interface{} `json:"request_summary"`
	ErrorDetail    map[string]interface{} `json:"error_detail"`
}

// Write appends one failed request record
func (d *DLQ) Write(correlationID, stepName string, requestSummary, errorDetail map[string]interface{}) {
	if requestSummary == nil {
		requestSummary = map[string]interface{}{}
	}
	if errorDetail == nil {
		errorDetail = map[string]interface{}{}
	}

	e := dlqEntry{
		Timestamp:      time.Now().UTC().Format(time.RFC3339Nano),
		CorrelationID:  correlationID,
		StepName:       stepName,
		RequestSummary: requestSummary,
		ErrorDetail:    errorDetail,
	}

	line, err := json.Marshal(e)
	if err != nil {
		slog.Debug("Failed to marshal DLQ entry", "error", err)
		return
	}

	if err := appendLine(d.path, line); err != nil {
		slog.Debug("Failed to write DLQ entry", "path", d.path, "error", err)
	}
}
