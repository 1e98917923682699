package explainer

// ComplexityReport summarizes snippet-level complexity for presentation.
// It is derived from the same structural signals as the numeric scores and
// is fully deterministic.
type ComplexityReport struct {
	Label           string `json:"label"` // Low | Medium | High
	TimeComplexity  string `json:"timeComplexity"`
	SpaceComplexity string `json:"spaceComplexity"`
}

// Scorer computes structural complexity independent of the model.
// Scores are derived, recomputable values: the same unit set always
// produces bit-for-bit identical output.
type Scorer interface {
	// Score returns the weighted structural complexity of a single unit.
	Score(unit CodeUnit) float64

	// Aggregate combines per-unit scores into a snippet-level score.
	// The combination is order-independent.
	Aggregate(scores []float64) float64

	// Report classifies the whole snippet and estimates asymptotic
	// time and space behavior.
	Report(text string) ComplexityReport
}
