// Package diff renders the difference between a mind map file on disk and
// its normalized form, the document produced by converting the file to the
// typed tree and back. An empty diff means the file already is in
// canonical attribute, whitespace and child order.
package diff

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/mindbridge/convert"
	"github.com/gerunddev/mindbridge/freeplane"
)

// Normalization diffs a map file against its converted-and-reverted form.
// The returned string is empty when the file is already canonical.
func Normalization(path string, opts ...convert.Option) (string, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read map file: %w", err)
	}

	f := freeplane.NewFile(opts...)
	if err := f.ReadFrom(strings.NewReader(string(original))); err != nil {
		return "", fmt.Errorf("failed to convert %s: %w", path, err)
	}
	var normalized strings.Builder
	if err := f.WriteTo(&normalized); err != nil {
		return "", fmt.Errorf("failed to revert %s: %w", path, err)
	}

	name := filepath.Base(path)
	edits := myers.ComputeEdits(span.URIFromPath(name), string(original), normalized.String())
	if len(edits) == 0 {
		return "", nil
	}
	unified := fmt.Sprint(gotextdiff.ToUnified(name, name+" (normalized)", string(original), edits))
	return unified, nil
}

// Render wraps a unified diff in a markdown code fence and renders it for
// the terminal. Falls back to the plain diff when rendering fails.
func Render(unified string) string {
	if unified == "" {
		return ""
	}
	fenced := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return fenced
	}
	rendered, err := renderer.Render(fenced)
	if err != nil {
		return fenced
	}
	return rendered
}
