package contracts

// RuleOutcome records the result of a single scoring rule.
type RuleOutcome struct {
	Criterion string `json:"criterion"`
	Points    int    `json:"points"`
	Reason    string `json:"reason"`
}

// Breakdown is the ordered per-rule explanation of how a score was
// assembled. Every rule a scorer evaluates appears here, including
// zero-point outcomes, so the total is always reconstructible.
type Breakdown []RuleOutcome

// Total sums the points of every rule outcome.
func (b Breakdown) Total() int {
	total := 0
	for _, o := range b {
		total += o.Points
	}
	return total
}

// Get returns the outcome for a criterion.
func (b Breakdown) Get(criterion string) (RuleOutcome, bool) {
	for _, o := range b {
		if o.Criterion == criterion {
			return o, true
		}
	}
	return RuleOutcome{}, false
}

// ScoreResult is the outcome of scoring one symbol under one strategy.
// Immutable once produced.
type ScoreResult struct {
	RawScore  int       `json:"raw_score"`
	Score     int       `json:"score"` // normalized to [0,10]
	Breakdown Breakdown `json:"breakdown"`
}
