// Package csvio implements the tabular interchange surface: the ranked
// results report and the rider import, both comma-delimited UTF-8.
package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/openfreestyle/scorekeep/internal/competition"
	"github.com/openfreestyle/scorekeep/internal/domain"
	"github.com/openfreestyle/scorekeep/internal/ports"
)

// Exporter writes the human-readable results report: one ranked block
// per category group. The report is not intended for lossless
// round-tripping; the event file covers that.
type Exporter struct {
	metrics ports.MetricsCollector
	tracer  trace.Tracer
}

// NewExporter creates an Exporter. A nil metrics collector disables
// metrics.
func NewExporter(metrics ports.MetricsCollector) *Exporter {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &Exporter{
		metrics: metrics,
		tracer:  otel.Tracer("results-exporter"),
	}
}

// Export writes the results report for every category group to path.
func (e *Exporter) Export(ctx context.Context, path string, m *competition.Manager) error {
	_, span := e.tracer.Start(ctx, "Exporter.Export",
		trace.WithAttributes(attribute.String("results.path", path)))
	defer span.End()

	start := time.Now()
	err := e.export(path, m)
	e.metrics.RecordLatency("export_results", time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "export failed")
		return err
	}
	return nil
}

func (e *Exporter) export(path string, m *competition.Manager) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer file.Close()

	if err := e.writeReport(file, m); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close results file: %w", err)
	}
	return nil
}

// writeReport renders the full report to w. Groups appear in creation
// order; within each group riders are re-ranked by final score
// descending with a stable sort, so equal scores keep their prior
// name-sorted order.
func (e *Exporter) writeReport(w io.Writer, m *competition.Manager) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Competition: " + m.CompetitionName()},
		{"Date: " + m.CompetitionDate()},
		{},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}

	for _, group := range m.CategoriesWithRiders() {
		if err := e.writeGroup(cw, group, m.NumJudges()); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

func (e *Exporter) writeGroup(cw *csv.Writer, group competition.RiderGroup, numJudges int) error {
	riders := group.Riders
	sort.SliceStable(riders, func(i, j int) bool {
		return riders[i].FinalScore > riders[j].FinalScore
	})

	rows := [][]string{
		{"Category: " + group.Key},
		{},
		resultHeader(numJudges),
	}
	for position, rider := range riders {
		rows = append(rows, resultRow(position+1, rider))
	}
	// Two blank separator lines before the next category.
	rows = append(rows, []string{}, []string{})

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}
	return nil
}

func resultHeader(numJudges int) []string {
	header := []string{"Position", "Name", "Age", "Gender", "Discipline"}
	for i := 1; i <= numJudges; i++ {
		header = append(header, fmt.Sprintf("Run1 Judge%d", i))
	}
	header = append(header, "Run1 Average")
	for i := 1; i <= numJudges; i++ {
		header = append(header, fmt.Sprintf("Run2 Judge%d", i))
	}
	header = append(header, "Run2 Average", "Final Score")
	return header
}

func resultRow(position int, rider *domain.Rider) []string {
	row := []string{
		strconv.Itoa(position),
		rider.Name,
		strconv.Itoa(rider.Age),
		rider.Gender,
		rider.Discipline,
	}
	for _, score := range rider.Run1Scores {
		row = append(row, formatScore(score))
	}
	row = append(row, formatAverage(rider.Run1Average()))
	for _, score := range rider.Run2Scores {
		row = append(row, formatScore(score))
	}
	row = append(row, formatAverage(rider.Run2Average()), formatAverage(rider.FinalScore))
	return row
}

// formatScore renders a raw judge score with minimal digits.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}

// formatAverage renders derived values to one decimal place, matching
// the documented report format.
func formatAverage(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}
