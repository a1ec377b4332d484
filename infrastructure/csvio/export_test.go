package csvio

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfreestyle/scorekeep/internal/competition"
)

func addScoredRider(t *testing.T, m *competition.Manager, name string, run1 []float64) {
	t.Helper()
	rider, err := m.AddRider(competition.AddRiderRequest{
		Name: name, Age: 15, Gender: "Male", Discipline: "PARK", Category: "Open Men",
	})
	require.NoError(t, err)
	for i, score := range run1 {
		require.NoError(t, m.UpdateScore(rider.ID, 1, i, score))
	}
}

func renderReport(t *testing.T, m *competition.Manager) []string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, NewExporter(nil).writeReport(&sb, m))
	return strings.Split(sb.String(), "\n")
}

// TestExporter_Ranking verifies that rows within a category appear in
// descending final-score order with positions assigned 1..N, and that
// tied scores keep their prior name-sorted order.
func TestExporter_Ranking(t *testing.T) {
	m := competition.New(competition.DefaultConfig())
	addScoredRider(t, m, "Cy", []float64{70, 70, 70})
	addScoredRider(t, m, "Ana", []float64{90, 90, 90})
	addScoredRider(t, m, "Zoe", []float64{80, 80, 80}) // ties with Bo
	addScoredRider(t, m, "Bo", []float64{80, 80, 80})

	lines := renderReport(t, m)

	var rows []string
	for _, line := range lines {
		if strings.HasPrefix(line, "1,") || strings.HasPrefix(line, "2,") ||
			strings.HasPrefix(line, "3,") || strings.HasPrefix(line, "4,") {
			rows = append(rows, line)
		}
	}
	require.Len(t, rows, 4)
	assert.True(t, strings.HasPrefix(rows[0], "1,Ana,"), "rows[0] = %q", rows[0])
	assert.True(t, strings.HasPrefix(rows[1], "2,Bo,"), "ties keep name order; rows[1] = %q", rows[1])
	assert.True(t, strings.HasPrefix(rows[2], "3,Zoe,"), "rows[2] = %q", rows[2])
	assert.True(t, strings.HasPrefix(rows[3], "4,Cy,"), "rows[3] = %q", rows[3])
}

// TestExporter_ReportLayout pins the block structure: competition
// preamble, per-category header lines, the judge-count-sized column
// header, one-decimal averages, and the two blank separator lines.
func TestExporter_ReportLayout(t *testing.T) {
	m := competition.New(competition.DefaultConfig())
	m.SetCompetitionName("Harbour Jam")
	m.SetCompetitionDate("2026-09-12")
	addScoredRider(t, m, "Ana", []float64{80, 82, 81})

	lines := renderReport(t, m)

	assert.Equal(t, "Competition: Harbour Jam", lines[0])
	assert.Equal(t, "Date: 2026-09-12", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "Category: PARK - Open Men", lines[3])
	assert.Equal(t, "", lines[4])
	assert.Equal(t,
		"Position,Name,Age,Gender,Discipline,"+
			"Run1 Judge1,Run1 Judge2,Run1 Judge3,Run1 Average,"+
			"Run2 Judge1,Run2 Judge2,Run2 Judge3,Run2 Average,Final Score",
		lines[5])
	assert.Equal(t, "1,Ana,15,Male,PARK,80,82,81,81.0,0,0,0,0.0,81.0", lines[6])
	assert.Equal(t, "", lines[7], "first separator line")
	assert.Equal(t, "", lines[8], "second separator line")
}

// TestExporter_GroupOrder verifies that category blocks appear in
// group-creation order, not sorted by name.
func TestExporter_GroupOrder(t *testing.T) {
	m := competition.New(competition.DefaultConfig())
	// STREET rider registered first, so its block must come first.
	_, err := m.AddRider(competition.AddRiderRequest{
		Name: "Zed", Age: 18, Gender: "Male", Discipline: "STREET", Category: "Open Street",
	})
	require.NoError(t, err)
	addScoredRider(t, m, "Ana", []float64{80, 80, 80})

	report := strings.Join(renderReport(t, m), "\n")

	street := strings.Index(report, "Category: STREET - Open Street")
	park := strings.Index(report, "Category: PARK - Open Men")
	require.GreaterOrEqual(t, street, 0)
	require.GreaterOrEqual(t, park, 0)
	assert.Less(t, street, park)
}

func TestExporter_HeaderTracksJudgeCount(t *testing.T) {
	m := competition.New(competition.DefaultConfig())
	require.NoError(t, m.SetNumJudges(2))
	addScoredRider(t, m, "Ana", []float64{70, 74})

	lines := renderReport(t, m)

	assert.Equal(t,
		"Position,Name,Age,Gender,Discipline,"+
			"Run1 Judge1,Run1 Judge2,Run1 Average,"+
			"Run2 Judge1,Run2 Judge2,Run2 Average,Final Score",
		lines[5])
	assert.Equal(t, "1,Ana,15,Male,PARK,70,74,72.0,0,0,0.0,72.0", lines[6])
}

func TestExporter_WritesFile(t *testing.T) {
	m := competition.New(competition.DefaultConfig())
	addScoredRider(t, m, "Ana", []float64{80, 82, 81})
	path := filepath.Join(t.TempDir(), "results.csv")

	require.NoError(t, NewExporter(nil).Export(context.Background(), path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Category: PARK - Open Men")
}

func TestExporter_MissingDirectory(t *testing.T) {
	m := competition.New(competition.DefaultConfig())
	path := filepath.Join(t.TempDir(), "absent", "results.csv")

	err := NewExporter(nil).Export(context.Background(), path, m)

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
