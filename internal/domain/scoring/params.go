package scoring

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when scoring parameters are not all positive.
var ErrInvalidParams = errors.New("invalid scoring params")

// Params defines the configurable constants of the scoring formula
type Params struct {
	// BaseScore is awarded for a game finished in zero moves and zero seconds
	BaseScore int

	// MovePenalty is subtracted for every completed move
	MovePenalty int

	// TimeStepSeconds groups elapsed time into whole steps
	TimeStepSeconds int

	// TimeStepPenalty is subtracted for every whole time step
	TimeStepPenalty int
}

// ParamsConfig allows overriding the default parameters. Zero values keep the default.
type ParamsConfig struct {
	BaseScore       int
	MovePenalty     int
	TimeStepSeconds int
	TimeStepPenalty int
}

// NewDefaultParams returns 1000 base points, 10 per move and 5 per 5 seconds.
func NewDefaultParams() Params {
	return Params{
		BaseScore:       1000,
		MovePenalty:     10,
		TimeStepSeconds: 5,
		TimeStepPenalty: 5,
	}
}

// NewParams creates Params from config, falling back to defaults for unset fields
func NewParams(config ParamsConfig) (Params, error) {
	params := NewDefaultParams()

	if config.BaseScore != 0 {
		params.BaseScore = config.BaseScore
	}
	if config.MovePenalty != 0 {
		params.MovePenalty = config.MovePenalty
	}
	if config.TimeStepSeconds != 0 {
		params.TimeStepSeconds = config.TimeStepSeconds
	}
	if config.TimeStepPenalty != 0 {
		params.TimeStepPenalty = config.TimeStepPenalty
	}

	if err := params.Validate(); err != nil {
		return Params{}, err
	}
	return params, nil
}

// Validate requires every parameter to be positive so the formula stays
// monotonically non-increasing.
func (p Params) Validate() error {
	if p.BaseScore <= 0 || p.MovePenalty <= 0 || p.TimeStepSeconds <= 0 || p.TimeStepPenalty <= 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidParams, p)
	}
	return nil
}
