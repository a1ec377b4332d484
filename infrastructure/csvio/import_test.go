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

func importRoster(t *testing.T, m *competition.Manager, content string) (ImportSummary, error) {
	t.Helper()
	return NewImporter(nil).importFrom(strings.NewReader(content), m)
}

// TestImporter_Rows covers the per-row skip policy: blank names and
// bad ages are skipped without aborting, and optional columns default.
func TestImporter_Rows(t *testing.T) {
	tests := []struct {
		name            string
		content         string
		expectedAdded   int
		expectedSkipped int
		check           func(t *testing.T, m *competition.Manager)
	}{
		{
			name: "well-formed rows",
			content: "Name,Age,Gender,Discipline,Category\n" +
				"Ana,14,Female,PARK,Junior Women\n" +
				"Bo,17,Male,STREET,Open Street\n",
			expectedAdded: 2,
			check: func(t *testing.T, m *competition.Manager) {
				ana, err := m.Rider(1)
				require.NoError(t, err)
				assert.Equal(t, "Ana", ana.Name)
				assert.Equal(t, "PARK", ana.Discipline)
				assert.Equal(t, []float64{0, 0, 0}, ana.Run1Scores)
			},
		},
		{
			name: "blank name and zero age skipped",
			content: "Name,Age,Gender,Discipline,Category\n" +
				",20,Male,PARK,Open Men\n" +
				"Bo,0,Male,PARK,Open Men\n" +
				"Cy,15,Male,PARK,Open Men\n",
			expectedAdded:   1,
			expectedSkipped: 2,
			check: func(t *testing.T, m *competition.Manager) {
				rider, err := m.Rider(1)
				require.NoError(t, err)
				assert.Equal(t, "Cy", rider.Name)
			},
		},
		{
			name: "unparsable and negative ages skipped",
			content: "Name,Age\n" +
				"Ana,fourteen\n" +
				"Bo,-2\n" +
				"Cy,\n",
			expectedSkipped: 3,
		},
		{
			name: "column order irrelevant",
			content: "Category,Age,Name,Discipline,Gender\n" +
				"Open Men,21,Dee,PARK,Female\n",
			expectedAdded: 1,
			check: func(t *testing.T, m *competition.Manager) {
				dee, err := m.Rider(1)
				require.NoError(t, err)
				assert.Equal(t, "Dee", dee.Name)
				assert.Equal(t, 21, dee.Age)
				assert.Equal(t, "Female", dee.Gender)
				assert.Equal(t, "Open Men", dee.Category)
			},
		},
		{
			name:          "optional columns default",
			content:       "Name,Age\nEli,13\n",
			expectedAdded: 1,
			check: func(t *testing.T, m *competition.Manager) {
				eli, err := m.Rider(1)
				require.NoError(t, err)
				assert.Equal(t, DefaultGender, eli.Gender)
				assert.Empty(t, eli.Discipline)
				assert.Empty(t, eli.Category)
			},
		},
		{
			name: "ragged short row skipped",
			content: "Name,Age,Gender\n" +
				"Ana\n" +
				"Bo,16,Male\n",
			expectedAdded:   1,
			expectedSkipped: 1,
		},
		{
			name: "whitespace cells trimmed",
			content: "Name,Age\n" +
				"  Fay  , 19 \n" +
				"   ,12\n",
			expectedAdded:   1,
			expectedSkipped: 1,
			check: func(t *testing.T, m *competition.Manager) {
				fay, err := m.Rider(1)
				require.NoError(t, err)
				assert.Equal(t, "Fay", fay.Name)
				assert.Equal(t, 19, fay.Age)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := competition.New(competition.DefaultConfig())

			summary, err := importRoster(t, m, tt.content)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedAdded, summary.Added)
			assert.Equal(t, tt.expectedSkipped, summary.Skipped)
			assert.Equal(t, tt.expectedAdded, m.RiderCount())
			if tt.check != nil {
				tt.check(t, m)
			}
		})
	}
}

// TestImporter_FileLevelErrors verifies the failures that abort the
// whole import, and that an aborted import adds no riders.
func TestImporter_FileLevelErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected error
	}{
		{
			name:     "empty file",
			content:  "",
			expected: ErrEmptyFile,
		},
		{
			name:     "missing Name column",
			content:  "Rider,Age\nAna,14\n",
			expected: ErrMissingColumns,
		},
		{
			name:     "missing Age column",
			content:  "Name,Gender\nAna,Female\n",
			expected: ErrMissingColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := competition.New(competition.DefaultConfig())

			_, err := importRoster(t, m, tt.content)

			assert.ErrorIs(t, err, tt.expected)
			assert.Zero(t, m.RiderCount())
		})
	}
}

func TestImporter_BrokenQuotingAbortsCleanly(t *testing.T) {
	m := competition.New(competition.DefaultConfig())
	content := "Name,Age\n" +
		"Ana,14\n" +
		"\"Bo,16\n" // unterminated quote

	_, err := importRoster(t, m, content)

	require.Error(t, err)
	assert.Zero(t, m.RiderCount(), "an aborted import must add no riders")
}

func TestImporter_FromFile(t *testing.T) {
	m := competition.New(competition.DefaultConfig())
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Age\nAna,14\n"), 0o644))

	summary, err := NewImporter(nil).Import(context.Background(), path, m)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Added)
}

func TestImporter_MissingFile(t *testing.T) {
	m := competition.New(competition.DefaultConfig())

	_, err := NewImporter(nil).Import(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), m)

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
