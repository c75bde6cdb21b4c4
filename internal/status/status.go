// Package status provides Status
package status

//spellchecker:words slog tkw1536 pkglib perf
import (
	"io"
	"log/slog"
	"os"

	"github.com/tkw1536/pkglib/perf"
)

// Status writes human-readable progress information to an underlying
// io.Writer.
//
// Status is safe to access concurrently.
// A nil Status is valid, and discards any information written to it.
type Status struct {
	logger *slog.Logger
}

// NewStatus creates a new status which writes output to the given io.Writer.
// If w is nil, returns a nil Status.
func NewStatus(w io.Writer) *Status {
	if w == nil {
		return nil
	}
	return &Status{
		logger: slog.New(slog.NewTextHandler(w, nil)),
	}
}

// Log logs an informational message with the provided key, value field pairs.
// When status or the associated logger are nil, no logging occurs.
func (status *Status) Log(message string, fields ...any) {
	if status == nil || status.logger == nil {
		return
	}
	status.logger.Info(message, fields...)
}

// LogError logs an error message containing the provided error and the provided key, value field pairs.
func (status *Status) LogError(message string, err error, fields ...any) {
	if status == nil || status.logger == nil {
		return
	}

	status.logger.Error("FAILED "+message, append([]any{"err", err}, fields...)...)
}

// LogFatal is like LogError followed by os.Exit(1).
// When status or the associated logger are nil, os.Exit(1) is called immediately.
func (status *Status) LogFatal(message string, err error) {
	status.LogError(message, err)
	os.Exit(1)
}

// DoStage is a convenience wrapper to start a new stage, call f, and log
// the resulting error (if any) together with performance information.
//
// If st is nil, immediately invokes f.
func (st *Status) DoStage(stage Stage, f func() error) error {
	if st == nil {
		return f()
	}

	start := perf.Now()
	st.Log("start", "stage", stage)

	if err := f(); err != nil {
		st.LogError("failed stage", err, "stage", stage)
		return err
	}

	st.Log("end", "stage", stage, "took", perf.Now().Sub(start))
	return nil
}

// Stage represents a step of a store operation.
type Stage string

const (
	StageInitial Stage = ""
	StageOpen    Stage = "open"
	StageSave    Stage = "save"
	StageLookup  Stage = "lookup"
	StageDelete  Stage = "delete"
	StagePurge   Stage = "purge"
	StageDump    Stage = "dump"
	StageHandler Stage = "handler"
)
