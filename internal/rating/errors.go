package rating

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrMissingElement is wrapped by SetupError.
	ErrMissingElement = errors.New("required element not found")
	// ErrNoSelection is returned by Submit when no rating was chosen.
	ErrNoSelection = errors.New("no rating selected")
	// ErrInvalidControl is returned when an element is not one of the
	// widget's rating controls or its text is not a value in 1..5.
	ErrInvalidControl = errors.New("invalid rating control")
	// ErrNotReady is returned by operations on a widget that failed to
	// initialize or has been closed.
	ErrNotReady = errors.New("rating widget not initialized")
)

// SetupError reports a required element missing at initialization.
type SetupError struct {
	Element  string // human name, e.g. "rating card"
	Selector string
	Hint     string // closest existing selector, if any
}

func (e *SetupError) Error() string {
	msg := fmt.Sprintf("%s not found (%s)", e.Element, e.Selector)
	if e.Hint != "" {
		msg += "; did you mean " + e.Hint + "?"
	}
	return msg
}

func (e *SetupError) Unwrap() error { return ErrMissingElement }

const maxHintDistance = 3

// closestName returns the candidate nearest to want by edit distance, if
// it is within maxHintDistance.
func closestName(want string, candidates []string) (string, bool) {
	best, bestDist := "", maxHintDistance+1
	for _, c := range candidates {
		if c == want {
			continue
		}
		d := levenshtein.ComputeDistance(strings.ToLower(want), strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}
