// Package convert is the two-phase tree conversion engine: a primary
// depth-first pre-order pass mapping markup elements onto typed tree nodes
// (or back), followed by an additional depth-first post-order pass over
// the finally shaped tree for decisions that need full-tree context.
// Behavior per element tag and node kind comes from descriptors resolved
// through a Registry; content without a descriptor is preserved verbatim
// through the passthrough fallback.
package convert

import (
	"io"

	"github.com/charmbracelet/log"
)

// Converter runs conversions and reversions against one registry. It is
// stateless between runs; each run gets a fresh Context. A run is
// single-threaded and synchronous: cost is bounded by document size.
type Converter struct {
	reg    *Registry
	strict bool
	log    *log.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithStrict makes recoverable findings (malformed attributes, failing
// descriptors) fatal instead of degrading to passthrough plus diagnostic.
func WithStrict() Option {
	return func(c *Converter) { c.strict = true }
}

// WithLogger attaches a structured logger; conversion progress and
// diagnostics are reported through it.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) { c.log = l }
}

// New returns a converter over the given registry.
func New(reg *Registry, opts ...Option) *Converter {
	c := &Converter{
		reg: reg,
		log: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
