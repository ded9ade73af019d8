package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Paintersrp/sysq/internal/proc"
)

// LogRecord represents a structured diagnostic event ready for JSON encoding.
type LogRecord struct {
	Timestamp time.Time `json:"ts"`
	Level     string    `json:"level"`
	Message   string    `json:"msg"`
	Pid       proc.Pid  `json:"pid,omitempty"`
	Target    string    `json:"target,omitempty"`
}

// NewLogRecord builds a record stamped with the current time.
func NewLogRecord(level, message string) LogRecord {
	if level == "" {
		level = "info"
	}
	return LogRecord{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	}
}

// EncodeLogRecord encodes a record to JSON, reporting errors to stderr.
func EncodeLogRecord(enc *json.Encoder, stderr io.Writer, record LogRecord) {
	if enc == nil {
		return
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if err := enc.Encode(&record); err != nil {
		fmt.Fprintf(stderr, "error: encode log: %v\n", err)
	}
}
