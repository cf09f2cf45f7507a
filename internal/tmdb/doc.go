// Package tmdb is the minimal TMDB client used to stamp release years.
//
// Only the movie search endpoint is called. FindYear reads the release date of
// the first result and reports the outcome as a Lookup value rather than an
// error, so callers can tell "no such movie" apart from a failed request and
// carry on with the next title either way.
package tmdb
