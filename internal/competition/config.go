package competition

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when a configuration or a loaded event document omits
// the corresponding field.
const (
	// DefaultCompetitionName is used for new events and by ClearAll.
	DefaultCompetitionName = "Freestyle Scooter Competition"

	// DefaultNumJudges is the judge count for a fresh competition.
	DefaultNumJudges = 3

	// DefaultTimerDuration is the run countdown in seconds. The core
	// persists this value for the presentation layer but never ticks it.
	DefaultTimerDuration = 45
)

// Config describes the competition format: identity, judging setup, and
// the discipline/category seed the registry starts from. Format
// configuration is distinct from per-event data; ClearAll resets event
// data but leaves everything configured here intact.
type Config struct {
	// CompetitionName is the display name of the event.
	CompetitionName string `yaml:"competition_name" validate:"required,min=1,max=255"`

	// CompetitionDate is the event date in YYYY-MM-DD form. Empty means
	// "today at construction time".
	CompetitionDate string `yaml:"competition_date" validate:"omitempty,datetime=2006-01-02"`

	// NumJudges is the number of judge slots per run.
	NumJudges int `yaml:"num_judges" validate:"min=1,max=10"`

	// TimerDurationSeconds is the run countdown owned by the UI layer.
	TimerDurationSeconds int `yaml:"timer_duration_seconds" validate:"min=10,max=300"`

	// Disciplines seeds the category registry in declaration order.
	Disciplines []DisciplineConfig `yaml:"disciplines" validate:"dive"`
}

// DisciplineConfig seeds one discipline and its ordered categories.
type DisciplineConfig struct {
	// Name is the discipline name, unique within the configuration.
	Name string `yaml:"name" validate:"required,min=1,max=100"`

	// Categories lists the discipline's brackets in display order.
	Categories []string `yaml:"categories" validate:"dive,min=1,max=100"`
}

// DefaultConfig returns the stock competition format: the standard PARK
// and STREET brackets with three judges and a 45 second run timer.
func DefaultConfig() Config {
	return Config{
		CompetitionName:      DefaultCompetitionName,
		NumJudges:            DefaultNumJudges,
		TimerDurationSeconds: DefaultTimerDuration,
		Disciplines: []DisciplineConfig{
			{
				Name: "PARK",
				Categories: []string{
					"7 and Under",
					"10 and Under",
					"13 and Under",
					"15 and Under",
					"17 and Under",
					"Open Men",
					"Pro Men",
					"Junior Women",
					"Open Women",
					"Pro Women",
				},
			},
			{
				Name: "STREET",
				Categories: []string{
					"Junior Street",
					"Open Street",
				},
			},
		},
	}
}

// LoadConfig reads and validates a competition-format configuration from
// a YAML file. Unknown fields are rejected so typos do not silently
// fall back to defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	// Fields absent from the file keep their defaults; an explicitly
	// empty disciplines key replaces the default seed.
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	// Reject unknown fields so typos do not silently fall back.
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
