package commands

import (
	"fmt"

	"github.com/gerunddev/mindbridge/diff"
	"github.com/gerunddev/mindbridge/styles"
)

// Diff shows what a conversion round trip would change in a map file
func Diff(args []string) {
	paths := positional(args)
	if len(paths) != 1 {
		fail("usage: mindbridge diff <file.mm> [--strict]")
	}

	cfg := loadConfig()
	l, cleanup := newLogger(cfg)
	defer cleanup()

	unified, err := diff.Normalization(paths[0], convertOptions(cfg, hasFlag(args, "--strict"), l)...)
	if err != nil {
		fail("%v", err)
	}
	if unified == "" {
		fmt.Printf("%s %s is already normalized\n", styles.SuccessStyle.Render("OK"), paths[0])
		return
	}
	if cfg.Color {
		fmt.Print(diff.Render(unified))
	} else {
		fmt.Print(unified)
	}
}
