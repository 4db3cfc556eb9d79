package ai

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sys/execabs"

	"github.com/mrz1836/relay/internal/errors"
)

// PathLookup resolves an executable name against PATH.
type PathLookup func(file string) (string, error)

// Locator finds the first candidate executable that resolves on PATH.
//
// Platform suffixes are handled two ways: the candidate list carries explicit
// variants (claude.cmd, claude.exe, claude.bat), and on Windows the lookup
// itself also tries each PATHEXT extension for a bare name. Resolutions
// relative to the current directory are refused.
type Locator struct {
	lookPath PathLookup
	logger   zerolog.Logger
}

// LocatorOption is a functional option for configuring a Locator.
type LocatorOption func(*Locator)

// WithPathLookup replaces the PATH lookup, for tests.
func WithPathLookup(lookup PathLookup) LocatorOption {
	return func(l *Locator) {
		l.lookPath = lookup
	}
}

// WithLocatorLogger sets the logger used for lookup diagnostics.
func WithLocatorLogger(logger zerolog.Logger) LocatorOption {
	return func(l *Locator) {
		l.logger = logger
	}
}

// NewLocator creates a Locator backed by execabs.LookPath.
func NewLocator(opts ...LocatorOption) *Locator {
	l := &Locator{
		lookPath: execabs.LookPath,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate returns the resolved path of the first name found on PATH.
// If none resolves, the error wraps errors.ErrExecutableNotFound.
func (l *Locator) Locate(names []string) (string, error) {
	for _, name := range names {
		path, err := l.lookPath(name)
		if err == nil && path != "" {
			l.logger.Debug().Str("name", name).Str("path", path).Msg("executable resolved")
			return path, nil
		}
		l.logger.Debug().Str("name", name).Err(err).Msg("executable candidate not found")
	}
	return "", fmt.Errorf("%w: none of [%s] found in PATH", errors.ErrExecutableNotFound, strings.Join(names, ", "))
}
