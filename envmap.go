// Package envmap loads a desired set of environment variables into a map,
// merging with any optional defaults specified by the request. Missing
// variables with a default are written back into the environment; every
// other failure is collected and reported in a single aggregate error
// rather than failing on the first problem.
package envmap

import (
	"errors"

	"github.com/rs/zerolog/log"
)

// Request maps variable names to an optional default value. A nil default
// marks the variable as required. The resolver never mutates a Request.
type Request map[string]*string

// Default returns a pointer to value for use as a Request default.
//
// Example:
//
//	req := envmap.Request{
//		"DATABASE_URL": nil,                     // required
//		"PORT":         envmap.Default("8080"),  // optional with default
//	}
func Default(value string) *string {
	return &value
}

// Source supplies fallback values for variables that are absent from the
// store and carry no caller default. Fetch reports found=false on a clean
// miss; a non-nil error indicates the source itself failed.
type Source interface {
	Fetch(name string) (value string, found bool, err error)

	// Name returns a human-readable name for this source (for logging)
	Name() string
}

// Load resolves a request against the process environment. See Loader.Load
// for the full contract.
func Load(req Request) (map[string]string, error) {
	return LoadFrom(OS(), req)
}

// LoadFrom resolves a request against an arbitrary store, which makes the
// resolution logic testable with an injected in-memory store.
func LoadFrom(store Store, req Request) (map[string]string, error) {
	return NewLoader(store).Load(req)
}

// Loader resolves requests against a Store, optionally consulting fallback
// sources for required variables that are absent from the store.
type Loader struct {
	store   Store
	sources []Source
}

// NewLoader creates a Loader over the given store. Sources are consulted in
// the order given for absent variables that have no caller default.
func NewLoader(store Store, sources ...Source) *Loader {
	return &Loader{store: store, sources: sources}
}

// Load resolves each requested variable independently in a single pass:
//
//   - present with a valid value: recorded in the result map
//   - absent with a default: the default is written back into the store and
//     recorded in the result map
//   - absent without a default: a fallback source hit is written back and
//     recorded; otherwise the variable fails with ErrNotPresent
//   - present but not valid UTF-8: fails with ErrNotValidText regardless of
//     any default
//
// If every variable resolved, the complete result map is returned. Otherwise
// Load returns a *LoadError mapping each failing variable to its cause; all
// failures from the request are reported together. Defaults written back for
// other variables persist even when the call as a whole fails.
//
// An empty request yields an empty map and no error.
func (l *Loader) Load(req Request) (map[string]string, error) {
	resolved := make(map[string]string, len(req))
	failed := make(map[string]error)

	for name, def := range req {
		value, err := l.store.Lookup(name)
		switch {
		case err == nil:
			resolved[name] = value
		case errors.Is(err, ErrNotPresent):
			if def != nil {
				l.writeBack(name, *def)
				resolved[name] = *def
				continue
			}
			if fallback, ok := l.fetchFallback(name); ok {
				l.writeBack(name, fallback)
				resolved[name] = fallback
				continue
			}
			failed[name] = ErrNotPresent
		default:
			failed[name] = err
		}
	}

	if len(failed) > 0 {
		return nil, &LoadError{Vars: failed}
	}
	return resolved, nil
}

// writeBack persists a defaulted value into the store. The process store's
// Setenv cannot reasonably fail here and the returned mapping is correct
// either way, so a failure is logged rather than turned into a load failure.
func (l *Loader) writeBack(name, value string) {
	if err := l.store.Set(name, value); err != nil {
		log.Warn().
			Err(err).
			Str("env_var", name).
			Msg("Failed to write default back into environment store")
	}
}

// fetchFallback consults the fallback sources in order and returns the first
// hit. A source error is logged and treated as a miss for that source.
func (l *Loader) fetchFallback(name string) (string, bool) {
	for _, source := range l.sources {
		value, found, err := source.Fetch(name)
		if err != nil {
			log.Warn().
				Err(err).
				Str("env_var", name).
				Str("source", source.Name()).
				Msg("Fallback source lookup failed")
			continue
		}
		if !found {
			continue
		}
		log.Debug().
			Str("env_var", name).
			Str("source", source.Name()).
			Msg("Resolved variable from fallback source")
		return value, true
	}
	return "", false
}
