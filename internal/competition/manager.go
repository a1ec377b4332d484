// Package competition implements the aggregate root of the scoring
// core: rider registration, per-judge score entry across two runs,
// judge-count management, grouped ranking views, and the snapshot
// surface the persistence codec serializes.
//
// The core runs single-threaded by design: every operation completes
// before the next is invoked, driven by the presentation collaborator.
package competition

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/openfreestyle/scorekeep/internal/domain"
)

// Package-level validator instance for command and config validation.
var validate = validator.New()

// Manager owns the competition state: every rider keyed by id, the
// monotonic id counter, event identity, judging setup, and the category
// registry. All mutations of competition data go through it.
type Manager struct {
	riders map[int]*domain.Rider
	nextID int

	competitionName string
	competitionDate string

	numJudges     int
	timerDuration int

	categories *domain.Categories
}

// New creates a Manager from a competition-format configuration. The
// category registry is seeded from cfg.Disciplines in declaration
// order. Zero-valued config fields fall back to the stock defaults.
func New(cfg Config) *Manager {
	if cfg.CompetitionName == "" {
		cfg.CompetitionName = DefaultCompetitionName
	}
	if cfg.CompetitionDate == "" {
		cfg.CompetitionDate = today()
	}
	if cfg.NumJudges < 1 {
		cfg.NumJudges = DefaultNumJudges
	}
	if cfg.TimerDurationSeconds < 1 {
		cfg.TimerDurationSeconds = DefaultTimerDuration
	}

	categories := domain.NewCategories()
	for _, d := range cfg.Disciplines {
		categories.AddDiscipline(d.Name)
		for _, cat := range d.Categories {
			categories.AddCategory(d.Name, cat)
		}
	}

	return &Manager{
		riders:          make(map[int]*domain.Rider),
		nextID:          1,
		competitionName: cfg.CompetitionName,
		competitionDate: cfg.CompetitionDate,
		numJudges:       cfg.NumJudges,
		timerDuration:   cfg.TimerDurationSeconds,
		categories:      categories,
	}
}

func today() string { return time.Now().Format("2006-01-02") }

// AddRiderRequest is the command object for rider registration. The
// presentation layer fills it from user input; the core validates it
// before any state changes.
type AddRiderRequest struct {
	Name       string `validate:"required"`
	Age        int    `validate:"gt=0"`
	Gender     string
	Discipline string
	Category   string
}

// AddRider validates the request, assigns the next id, and stores a new
// rider with both score slices zeroed to the current judge count.
// It returns *domain.ValidationError when the name is empty or the age
// is not positive.
func (m *Manager) AddRider(req AddRiderRequest) (*domain.Rider, error) {
	if err := validate.Struct(req); err != nil {
		return nil, riderValidationError(err)
	}

	rider := &domain.Rider{
		ID:         m.nextID,
		Name:       req.Name,
		Age:        req.Age,
		Gender:     req.Gender,
		Discipline: req.Discipline,
		Category:   req.Category,
		Run1Scores: make([]float64, m.numJudges),
		Run2Scores: make([]float64, m.numJudges),
	}

	m.riders[rider.ID] = rider
	m.nextID++
	return rider, nil
}

// riderValidationError converts validator failures into the domain's
// ValidationError with human-readable, field-specific messages.
func riderValidationError(err error) error {
	verr := domain.NewValidationError("rider")
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		verr.AddError(err.Error())
		return verr
	}
	for _, fe := range fields {
		switch fe.Field() {
		case "Name":
			verr.AddError("name must not be empty")
		case "Age":
			verr.AddError("age must be positive")
		default:
			verr.AddError(fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return verr
}

// RiderUpdate carries a partial metadata update. Nil fields are left
// unchanged. Scores are never settable through this path; use
// UpdateScore.
type RiderUpdate struct {
	Name       *string
	Age        *int
	Gender     *string
	Discipline *string
	Category   *string
}

// UpdateRider applies a partial metadata update to a rider. An unknown
// id is a documented no-op, not an error. Name and age updates are held
// to the same validation rules as registration.
func (m *Manager) UpdateRider(id int, update RiderUpdate) error {
	rider, ok := m.riders[id]
	if !ok {
		return nil
	}

	if update.Name != nil && *update.Name == "" {
		verr := domain.NewValidationError("rider")
		verr.AddError("name must not be empty")
		return verr
	}
	if update.Age != nil && *update.Age <= 0 {
		verr := domain.NewValidationError("rider")
		verr.AddError("age must be positive")
		return verr
	}

	if update.Name != nil {
		rider.Name = *update.Name
	}
	if update.Age != nil {
		rider.Age = *update.Age
	}
	if update.Gender != nil {
		rider.Gender = *update.Gender
	}
	if update.Discipline != nil {
		rider.Discipline = *update.Discipline
	}
	if update.Category != nil {
		rider.Category = *update.Category
	}
	return nil
}

// RemoveRider deletes a rider. Removing an unknown id is a no-op. The
// id is never reissued.
func (m *Manager) RemoveRider(id int) { delete(m.riders, id) }

// Rider returns the rider with the given id, or ErrRiderNotFound. This
// query is the one surface that reports unknown ids; mutators no-op.
func (m *Manager) Rider(id int) (*domain.Rider, error) {
	rider, ok := m.riders[id]
	if !ok {
		return nil, fmt.Errorf("rider %d: %w", id, domain.ErrRiderNotFound)
	}
	return rider, nil
}

// Riders returns every rider in ascending id order.
func (m *Manager) Riders() []*domain.Rider {
	out := make([]*domain.Rider, 0, len(m.riders))
	for _, rider := range m.riders {
		out = append(out, rider)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RiderCount returns the number of registered riders.
func (m *Manager) RiderCount() int { return len(m.riders) }

// UpdateScore writes one judge's score into the given run's slot and
// recomputes the rider's final score. Unknown rider ids and judge
// indices outside the current judge count are tolerated no-ops; the
// recomputation still runs because it is idempotent. A run outside
// {1, 2} is a caller bug and returns ErrInvalidRun.
func (m *Manager) UpdateScore(id, run, judgeIndex int, score float64) error {
	if run != 1 && run != 2 {
		return fmt.Errorf("run %d: %w", run, domain.ErrInvalidRun)
	}

	rider, ok := m.riders[id]
	if !ok {
		return nil
	}

	scores := rider.Run1Scores
	if run == 2 {
		scores = rider.Run2Scores
	}
	if judgeIndex >= 0 && judgeIndex < len(scores) {
		scores[judgeIndex] = score
	}

	rider.CalculateFinalScore()
	return nil
}

// SetNumJudges resizes every rider's score slices to n judge slots and
// recomputes every final score. Shrinking permanently drops the
// highest-indexed judges' scores; this is the API's one destructive
// operation. n below one is rejected.
func (m *Manager) SetNumJudges(n int) error {
	if n < 1 {
		verr := domain.NewValidationError("judges")
		verr.AddError("judge count must be positive")
		return verr
	}

	m.numJudges = n
	for _, rider := range m.riders {
		rider.ResizeScores(n)
		rider.CalculateFinalScore()
	}
	return nil
}

// NumJudges returns the current judge count.
func (m *Manager) NumJudges() int { return m.numJudges }

// CompetitionName returns the event's display name.
func (m *Manager) CompetitionName() string { return m.competitionName }

// SetCompetitionName updates the event's display name.
func (m *Manager) SetCompetitionName(name string) { m.competitionName = name }

// CompetitionDate returns the event date in YYYY-MM-DD form.
func (m *Manager) CompetitionDate() string { return m.competitionDate }

// SetCompetitionDate updates the event date.
func (m *Manager) SetCompetitionDate(date string) { m.competitionDate = date }

// TimerDuration returns the run countdown in seconds. The core persists
// this for the presentation layer and never ticks it.
func (m *Manager) TimerDuration() int { return m.timerDuration }

// SetTimerDuration updates the run countdown. Non-positive durations
// are rejected.
func (m *Manager) SetTimerDuration(seconds int) error {
	if seconds < 1 {
		verr := domain.NewValidationError("timer")
		verr.AddError("timer duration must be positive")
		return verr
	}
	m.timerDuration = seconds
	return nil
}

// Categories returns the owned category registry. Callers mutate it
// directly through the registry's own operations.
func (m *Manager) Categories() *domain.Categories { return m.categories }

// ClearAll empties the rider set, resets the id counter, and restores
// the default competition name and today's date. The category registry,
// judge count, and timer are deliberately preserved: they are
// competition-format configuration, not per-event data.
func (m *Manager) ClearAll() {
	m.riders = make(map[int]*domain.Rider)
	m.nextID = 1
	m.competitionName = DefaultCompetitionName
	m.competitionDate = today()
}
