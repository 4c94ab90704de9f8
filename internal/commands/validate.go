package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/mindbridge/freeplane"
	"github.com/gerunddev/mindbridge/styles"
)

// Validate converts a map file and reports every finding. With --strict
// the first malformed attribute or failing element aborts the run.
func Validate(args []string) {
	paths := positional(args)
	if len(paths) != 1 {
		fail("usage: mindbridge validate <file.mm> [--strict]")
	}

	cfg := loadConfig()
	l, cleanup := newLogger(cfg)
	defer cleanup()

	f, err := freeplane.Load(paths[0], convertOptions(cfg, hasFlag(args, "--strict"), l)...)
	if err != nil {
		fail("%v", err)
	}
	printDiagnostics(f.Diags, cfg.Color)

	if len(f.Diags) > 0 {
		fmt.Printf("%s %s: %d warnings\n",
			styles.WarningStyle.Render("Degraded"), paths[0], len(f.Diags))
		os.Exit(1)
	}
	fmt.Printf("%s %s (%d nodes)\n",
		styles.SuccessStyle.Render("Valid"), paths[0], nodeCount(f.Map))
}
