// Package eventfile implements the event persistence codec: a complete
// JSON snapshot of the competition state written atomically to a flat
// file, and the inverse full-state load.
package eventfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/openfreestyle/scorekeep/internal/competition"
	"github.com/openfreestyle/scorekeep/internal/ports"
)

// ErrUnsupportedVersion indicates an event document whose version tag
// is not a format this codec understands.
var ErrUnsupportedVersion = errors.New("unsupported event file version")

// FormatError represents a structurally broken event document. It is
// distinct from I/O failures, which surface as wrapped OS errors.
type FormatError struct {
	// Path is the file whose content could not be decoded.
	Path string

	// Err is the underlying decode failure.
	Err error
}

// Error implements the error interface for FormatError.
func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed event file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error { return e.Err }

// Codec saves and loads complete event snapshots. It is stateless apart
// from its observability hooks and safe to reuse across operations.
type Codec struct {
	metrics ports.MetricsCollector
	tracer  trace.Tracer
}

// NewCodec creates a Codec. A nil metrics collector disables metrics.
func NewCodec(metrics ports.MetricsCollector) *Codec {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &Codec{
		metrics: metrics,
		tracer:  otel.Tracer("eventfile-codec"),
	}
}

// Save writes the manager's full state to path as an indented JSON
// document. The document is written to a temporary file in the target
// directory and renamed into place, so a crash mid-write never leaves a
// truncated file behind as the saved state.
func (c *Codec) Save(ctx context.Context, path string, m *competition.Manager) error {
	_, span := c.tracer.Start(ctx, "Codec.Save",
		trace.WithAttributes(attribute.String("event.path", path)))
	defer span.End()

	start := time.Now()
	err := c.save(path, m)
	c.metrics.RecordLatency("save_event", time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		return err
	}
	span.SetAttributes(attribute.Int("event.riders", m.RiderCount()))
	return nil
}

func (c *Codec) save(path string, m *competition.Manager) error {
	data, err := json.MarshalIndent(m.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".event-*.json")
	if err != nil {
		return fmt.Errorf("create temp event file: %w", err)
	}
	tmpName := tmp.Name()
	// The temp file is removed on every failure path; on success it has
	// already been renamed and the remove is a harmless no-op.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write event file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close event file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("commit event file: %w", err)
	}
	return nil
}

// Load reads an event document and fully replaces the manager's state
// with it. The document is decoded and checked before any mutation, so
// a failed load leaves the manager untouched — there is no partially
// loaded state.
//
// Unreadable files surface wrapped OS errors (fs.ErrNotExist remains
// detectable); malformed content surfaces *FormatError.
func (c *Codec) Load(ctx context.Context, path string, m *competition.Manager) error {
	_, span := c.tracer.Start(ctx, "Codec.Load",
		trace.WithAttributes(attribute.String("event.path", path)))
	defer span.End()

	start := time.Now()
	err := c.load(path, m)
	c.metrics.RecordLatency("load_event", time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return err
	}
	span.SetAttributes(attribute.Int("event.riders", m.RiderCount()))
	return nil
}

func (c *Codec) load(path string, m *competition.Manager) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read event file: %w", err)
	}

	var snap competition.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return &FormatError{Path: path, Err: err}
	}
	// Documents predating the version tag load with defaults; anything
	// tagged with a different format is rejected rather than guessed at.
	if snap.Version != "" && snap.Version != competition.EventFormatVersion {
		return &FormatError{
			Path: path,
			Err:  fmt.Errorf("%w: %q", ErrUnsupportedVersion, snap.Version),
		}
	}

	m.Restore(snap)
	return nil
}
