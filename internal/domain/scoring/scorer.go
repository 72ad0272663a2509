// Package scoring turns the counters of a finished game into points.
package scoring

// Scorer defines the interface for computing a game score
type Scorer interface {
	// Score maps moves and elapsed seconds to a non-negative score
	Score(moves, elapsedSeconds int) int
}

// defaultScorer is the standard implementation of the Scorer interface
type defaultScorer struct {
	params Params
}

// NewDefaultScorer creates a scorer with the default parameters
func NewDefaultScorer() Scorer {
	return &defaultScorer{params: NewDefaultParams()}
}

// NewScorerWithParams creates a scorer with custom parameters.
// Returns an error wrapping ErrInvalidParams unless every parameter is positive.
func NewScorerWithParams(params Params) (Scorer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &defaultScorer{params: params}, nil
}

// Score implements Scorer
func (s *defaultScorer) Score(moves, elapsedSeconds int) int {
	return Calculate(s.params, moves, elapsedSeconds)
}

// Calculate computes
//
//	max(0, Base - MovePenalty*moves - TimeStepPenalty*floor(elapsed/TimeStepSeconds))
//
// Negative inputs are treated as zero. A non-positive TimeStepSeconds
// disables the time penalty.
func Calculate(p Params, moves, elapsedSeconds int) int {
	if moves < 0 {
		moves = 0
	}
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}

	score := p.BaseScore - p.MovePenalty*moves
	if p.TimeStepSeconds > 0 {
		score -= p.TimeStepPenalty * (elapsedSeconds / p.TimeStepSeconds)
	}
	if score < 0 {
		return 0
	}
	return score
}
