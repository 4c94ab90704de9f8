package convert

import "fmt"

// Diagnostic is one recoverable finding from a degraded run: an attribute
// that failed its spec, an unresolved reference, a descriptor that was
// substituted by the passthrough fallback. Diagnostics are ordered by the
// traversal that produced them.
type Diagnostic struct {
	Path    string
	Tag     string
	Message string
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return fmt.Sprintf("<%s>: %s", d.Tag, d.Message)
	}
	return fmt.Sprintf("%s <%s>: %s", d.Path, d.Tag, d.Message)
}
