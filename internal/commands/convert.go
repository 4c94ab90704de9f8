package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gerunddev/mindbridge/freeplane"
	"github.com/gerunddev/mindbridge/styles"
)

// Convert reads a mind map file, converts it to the typed tree and writes
// the reverted document back out: attributes typed and validated, child
// order and whitespace normalized, unknown content preserved verbatim.
func Convert(args []string) {
	paths := positional(args)
	if len(paths) != 1 {
		fail("usage: mindbridge convert <file.mm> [-o <out.mm>] [--strict]")
	}
	in := paths[0]
	out := flagValue(args, "-o")

	cfg := loadConfig()
	l, cleanup := newLogger(cfg)
	defer cleanup()

	start := time.Now()
	l.ConvertStarted(in)

	f, err := freeplane.Load(in, convertOptions(cfg, hasFlag(args, "--strict"), l)...)
	if err != nil {
		l.ConversionError(in, err)
		fail("converting %s: %v", in, err)
	}
	printDiagnostics(f.Diags, cfg.Color)
	for _, d := range f.Diags {
		l.Diagnostic(in, d)
	}

	var sb strings.Builder
	if err := f.WriteTo(&sb); err != nil {
		l.ConversionError(in, err)
		fail("writing %s: %v", in, err)
	}

	switch out {
	case "", in:
		// In-place rewrite keeps a backup of the original when configured.
		if cfg.BackupSuffix != "" {
			orig, err := os.ReadFile(in)
			if err != nil {
				fail("reading %s: %v", in, err)
			}
			if err := os.WriteFile(in+cfg.BackupSuffix, orig, 0644); err != nil {
				fail("writing backup: %v", err)
			}
		}
		out = in
		fallthrough
	default:
		if err := os.WriteFile(out, []byte(sb.String()), 0644); err != nil {
			l.FileError(out, err)
			fail("writing %s: %v", out, err)
		}
	}

	l.ConvertCompleted(in, nodeCount(f.Map), len(f.Diags), time.Since(start))
	fmt.Printf("%s %s (%d nodes, %d warnings)\n",
		styles.SuccessStyle.Render("Converted"), out, nodeCount(f.Map), len(f.Diags))
}
