// Package domain contains the competition entities and the scoring rules
// that the rest of the system builds on: riders, the category registry,
// and the final-score aggregation invariant.
package domain

// Rider represents one competitor in the competition.
// A rider is created and exclusively owned by the competition manager,
// which assigns the immutable ID and keeps both score slices sized to
// the current judge count.
type Rider struct {
	// ID uniquely identifies the rider. It is assigned by the manager
	// and never reused, even after the rider is removed.
	ID int `json:"id"`

	// Name is the rider's display name. Never empty for a rider that
	// passed registration validation.
	Name string `json:"name"`

	// Age is the rider's age in years. Always positive.
	Age int `json:"age"`

	// Gender is free-form text, not an enumeration.
	Gender string `json:"gender"`

	// Discipline is advisory text; empty means unassigned. It need not
	// exist in the category registry.
	Discipline string `json:"discipline"`

	// Category is advisory text scoped to Discipline; may be empty.
	Category string `json:"category"`

	// Run1Scores holds one score per judge slot for the first run.
	Run1Scores []float64 `json:"run1_scores"`

	// Run2Scores holds one score per judge slot for the second run.
	Run2Scores []float64 `json:"run2_scores"`

	// FinalScore is derived: the better run's average. Stale until
	// CalculateFinalScore runs after a score or judge-count mutation.
	FinalScore float64 `json:"final_score"`
}

// CalculateFinalScore recomputes FinalScore as the higher of the two run
// averages and returns it. An empty score slice averages to zero, so the
// method never divides by zero.
func (r *Rider) CalculateFinalScore() float64 {
	r.FinalScore = max(mean(r.Run1Scores), mean(r.Run2Scores))
	return r.FinalScore
}

// Run1Average returns the arithmetic mean of the first run's judge
// scores, zero when no scores exist.
func (r *Rider) Run1Average() float64 { return mean(r.Run1Scores) }

// Run2Average returns the arithmetic mean of the second run's judge
// scores, zero when no scores exist.
func (r *Rider) Run2Average() float64 { return mean(r.Run2Scores) }

// ResizeScores adjusts both run slices to exactly n judge slots.
// Shrinking truncates the highest-indexed judges' scores; growing
// appends zeros. Existing prefix scores are preserved either way.
// The caller is responsible for recomputing the final score.
func (r *Rider) ResizeScores(n int) {
	r.Run1Scores = resize(r.Run1Scores, n)
	r.Run2Scores = resize(r.Run2Scores, n)
}

// NormalizeScores replaces nil score slices with empty ones so a rider
// deserialized from a document missing the optional score fields still
// satisfies the non-nil expectations of the scoring paths.
func (r *Rider) NormalizeScores() {
	if r.Run1Scores == nil {
		r.Run1Scores = []float64{}
	}
	if r.Run2Scores == nil {
		r.Run2Scores = []float64{}
	}
}

func resize(scores []float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	if len(scores) > n {
		return scores[:n:n]
	}
	for len(scores) < n {
		scores = append(scores, 0)
	}
	return scores
}

func mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
