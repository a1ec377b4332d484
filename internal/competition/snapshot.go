package competition

import (
	"github.com/openfreestyle/scorekeep/internal/domain"
)

// EventFormatVersion tags the event-file schema emitted by Snapshot and
// accepted by Restore.
const EventFormatVersion = "1.0"

// Snapshot is the complete serializable competition state: a lossless
// capture of everything the persistence codec writes to an event file.
// Restoring a snapshot reproduces equivalent in-memory state.
type Snapshot struct {
	Version         string             `json:"version"`
	CompetitionName string             `json:"competition_name"`
	CompetitionDate string             `json:"competition_date"`
	NumJudges       int                `json:"num_judges"`
	TimerDuration   int                `json:"timer_duration"`
	NextID          int                `json:"next_id"`
	Categories      *domain.Categories `json:"categories"`
	Riders          []domain.Rider     `json:"riders"`
}

// Snapshot captures the full competition state. Riders are copied in
// ascending id order and the category registry is cloned, so the
// snapshot stays stable if the manager mutates afterwards.
func (m *Manager) Snapshot() Snapshot {
	riders := m.Riders()
	records := make([]domain.Rider, len(riders))
	for i, rider := range riders {
		records[i] = *rider
		records[i].Run1Scores = append([]float64(nil), rider.Run1Scores...)
		records[i].Run2Scores = append([]float64(nil), rider.Run2Scores...)
	}

	return Snapshot{
		Version:         EventFormatVersion,
		CompetitionName: m.competitionName,
		CompetitionDate: m.competitionDate,
		NumJudges:       m.numJudges,
		TimerDuration:   m.timerDuration,
		NextID:          m.nextID,
		Categories:      m.categories.Clone(),
		Riders:          records,
	}
}

// Restore replaces the entire competition state with the snapshot's
// content, equivalent to ClearAll followed by reapplying every
// persisted field. Missing optional fields fall back to the documented
// defaults. Two invariants are re-established against inconsistent
// documents: every rider's score slices are resized to the restored
// judge count, and the id counter is clamped above every restored id.
//
// A snapshot without a categories mapping keeps the current registry,
// mirroring ClearAll's format-versus-event-data asymmetry.
func (m *Manager) Restore(s Snapshot) {
	m.ClearAll()

	if s.CompetitionName != "" {
		m.competitionName = s.CompetitionName
	}
	if s.CompetitionDate != "" {
		m.competitionDate = s.CompetitionDate
	}

	m.numJudges = s.NumJudges
	if m.numJudges < 1 {
		m.numJudges = DefaultNumJudges
	}
	m.timerDuration = s.TimerDuration
	if m.timerDuration < 1 {
		m.timerDuration = DefaultTimerDuration
	}
	m.nextID = s.NextID
	if m.nextID < 1 {
		m.nextID = 1
	}

	if s.Categories != nil {
		m.categories = s.Categories.Clone()
	}

	for _, record := range s.Riders {
		rider := record
		rider.NormalizeScores()
		rider.ResizeScores(m.numJudges)
		rider.CalculateFinalScore()
		m.riders[rider.ID] = &rider

		if rider.ID >= m.nextID {
			m.nextID = rider.ID + 1
		}
	}
}
