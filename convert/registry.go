package convert

import (
	"fmt"

	"github.com/gerunddev/mindbridge/markup"
)

// Registry maps markup tags to descriptors for conversion and node kinds
// to descriptors for reversion. It is built once, then treated as
// read-only for the duration of any run.
type Registry struct {
	tags     map[string]Descriptor
	variants map[string][]Descriptor
	kinds    map[string]Descriptor
	fallback Descriptor
}

// NewRegistry returns a registry with the attribute-preserving passthrough
// fallback installed.
func NewRegistry() *Registry {
	return &Registry{
		tags:     make(map[string]Descriptor),
		variants: make(map[string][]Descriptor),
		kinds:    make(map[string]Descriptor),
		fallback: unknown{},
	}
}

// Register adds a descriptor. Two descriptors for the same kind, or two
// non-matching descriptors for the same tag, are a conflict and fail
// rather than silently overwrite. Descriptors implementing ElementMatcher
// may share a tag; they are tried newest first before the plain tag
// descriptor.
func (r *Registry) Register(d Descriptor) error {
	kind := d.Kind()
	if _, dup := r.kinds[kind]; dup {
		return fmt.Errorf("%w for kind %q", ErrDuplicate, kind)
	}
	tag := d.Tag()
	if _, isVariant := d.(ElementMatcher); isVariant {
		r.variants[tag] = append(r.variants[tag], d)
	} else {
		if _, dup := r.tags[tag]; dup {
			return fmt.Errorf("%w for tag %q", ErrDuplicate, tag)
		}
		r.tags[tag] = d
	}
	r.kinds[kind] = d
	return nil
}

// MustRegister registers a sequence of descriptors and panics on conflict.
// Intended for building a fixed catalog at startup.
func (r *Registry) MustRegister(ds ...Descriptor) {
	for _, d := range ds {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
}

// DisableFallback removes the passthrough fallback, making unregistered
// tags and kinds fatal.
func (r *Registry) DisableFallback() {
	r.fallback = nil
}

// Fallback returns the configured fallback descriptor, nil when disabled.
func (r *Registry) Fallback() Descriptor { return r.fallback }

// ForElement resolves the descriptor for a markup element: matching
// variants newest first, then the plain tag descriptor, then the fallback.
// Returns nil only when the fallback is disabled.
func (r *Registry) ForElement(el *markup.Element) Descriptor {
	vs := r.variants[el.Tag]
	for i := len(vs) - 1; i >= 0; i-- {
		if vs[i].(ElementMatcher).MatchElement(el) {
			return vs[i]
		}
	}
	if d, ok := r.tags[el.Tag]; ok {
		return d
	}
	return r.fallback
}

// ForKind resolves the descriptor for a node kind, falling back like
// ForElement.
func (r *Registry) ForKind(kind string) Descriptor {
	if d, ok := r.kinds[kind]; ok {
		return d
	}
	return r.fallback
}
