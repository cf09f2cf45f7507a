package tmdb

import (
	"context"
	"fmt"
)

// Outcome classifies a year lookup
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeNotFound
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not found"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Lookup is the result of asking TMDB for a release year.
// Year is set only for OutcomeFound, Err only for OutcomeFailed.
type Lookup struct {
	Outcome Outcome
	Year    string
	Err     error
}

func Found(year string) Lookup { return Lookup{Outcome: OutcomeFound, Year: year} }
func NotFound() Lookup         { return Lookup{Outcome: OutcomeNotFound} }
func Failed(err error) Lookup  { return Lookup{Outcome: OutcomeFailed, Err: err} }

// YearFinder resolves a title to a release year
type YearFinder interface {
	FindYear(ctx context.Context, title string) Lookup
}

var _ YearFinder = (*Client)(nil)
