package domain

import "github.com/pkg/errors"

// Two error classes cross component boundaries: bad caller input and failed
// external collaborators. Degenerate numeric conditions (NaN, empty windows,
// zero divisors) never become errors, they resolve to neutral constants
// inside the indicator layer.
var (
	// ErrInvalidInput marks histories or parameters the engine cannot analyze.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream marks failures of external collaborators such as the data
	// provider, the sentiment and news feeds, or the trend model.
	ErrUpstream = errors.New("upstream failure")
)
