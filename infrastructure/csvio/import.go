package csvio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/openfreestyle/scorekeep/internal/competition"
	"github.com/openfreestyle/scorekeep/internal/ports"
)

// Import errors that abort the whole file. Individual bad rows never
// do; they are skipped and counted.
var (
	// ErrMissingColumns indicates a header row without the required
	// Name and Age columns.
	ErrMissingColumns = errors.New("header must contain Name and Age columns")

	// ErrEmptyFile indicates a CSV with no header row at all.
	ErrEmptyFile = errors.New("csv file has no header row")
)

// DefaultGender is assumed for rows without a Gender column or value.
const DefaultGender = "Male"

// ImportSummary reports the outcome of a rider import.
type ImportSummary struct {
	// Added is the number of riders registered.
	Added int

	// Skipped is the number of rows rejected for a blank name or a
	// missing, unparsable, or non-positive age.
	Skipped int
}

// Importer registers riders from a CSV roster. Columns are matched by
// header name, so column order is irrelevant; Name and Age are
// required, Gender, Discipline, and Category are optional.
type Importer struct {
	metrics ports.MetricsCollector
	tracer  trace.Tracer
}

// NewImporter creates an Importer. A nil metrics collector disables
// metrics.
func NewImporter(metrics ports.MetricsCollector) *Importer {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &Importer{
		metrics: metrics,
		tracer:  otel.Tracer("rider-importer"),
	}
}

// Import reads the roster at path and registers every acceptable row as
// a new rider with zeroed scores. Bad rows are skipped, never fatal;
// only file-level I/O or CSV-encoding failures abort the import, and an
// aborted import adds no riders at all.
func (i *Importer) Import(ctx context.Context, path string, m *competition.Manager) (ImportSummary, error) {
	_, span := i.tracer.Start(ctx, "Importer.Import",
		trace.WithAttributes(attribute.String("roster.path", path)))
	defer span.End()

	start := time.Now()
	summary, err := i.importFile(path, m)
	i.metrics.RecordLatency("import_riders", time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "import failed")
		return ImportSummary{}, err
	}

	span.SetAttributes(
		attribute.Int("roster.added", summary.Added),
		attribute.Int("roster.skipped", summary.Skipped),
	)
	i.metrics.RecordCounter("import_rows", float64(summary.Added),
		map[string]string{"outcome": "added"})
	i.metrics.RecordCounter("import_rows", float64(summary.Skipped),
		map[string]string{"outcome": "skipped"})
	i.metrics.RecordGauge("riders_registered", float64(m.RiderCount()))
	return summary, nil
}

func (i *Importer) importFile(path string, m *competition.Manager) (ImportSummary, error) {
	file, err := os.Open(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("open roster: %w", err)
	}
	defer file.Close()

	return i.importFrom(file, m)
}

func (i *Importer) importFrom(r io.Reader, m *competition.Manager) (ImportSummary, error) {
	reader := csv.NewReader(r)
	// Rows may be ragged; missing trailing cells read as absent.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return ImportSummary{}, ErrEmptyFile
	}
	if err != nil {
		return ImportSummary{}, fmt.Errorf("read roster header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(name)] = idx
	}
	if _, ok := columns["Name"]; !ok {
		return ImportSummary{}, ErrMissingColumns
	}
	if _, ok := columns["Age"]; !ok {
		return ImportSummary{}, ErrMissingColumns
	}

	// Decode every row before touching the manager so a late encoding
	// error cannot leave a half-imported roster behind.
	var requests []competition.AddRiderRequest
	var summary ImportSummary
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ImportSummary{}, fmt.Errorf("read roster row: %w", err)
		}

		req, ok := parseRow(record, columns)
		if !ok {
			summary.Skipped++
			continue
		}
		requests = append(requests, req)
	}

	for _, req := range requests {
		if _, err := m.AddRider(req); err != nil {
			// parseRow pre-checked the validated fields; anything the
			// core still rejects is a skipped row, not a failure.
			summary.Skipped++
			continue
		}
		summary.Added++
	}
	return summary, nil
}

// parseRow converts one CSV record into a registration request.
// It reports false for rows that must be skipped: blank name, or a
// missing, unparsable, or non-positive age.
func parseRow(record []string, columns map[string]int) (competition.AddRiderRequest, bool) {
	cell := func(column string) string {
		idx, ok := columns[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := cell("Name")
	if name == "" {
		return competition.AddRiderRequest{}, false
	}

	age, err := strconv.Atoi(cell("Age"))
	if err != nil || age <= 0 {
		return competition.AddRiderRequest{}, false
	}

	gender := cell("Gender")
	if gender == "" {
		gender = DefaultGender
	}

	return competition.AddRiderRequest{
		Name:       name,
		Age:        age,
		Gender:     gender,
		Discipline: cell("Discipline"),
		Category:   cell("Category"),
	}, true
}
