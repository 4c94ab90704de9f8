package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/gerunddev/mindbridge/convert"
	"github.com/gerunddev/mindbridge/internal/config"
	"github.com/gerunddev/mindbridge/internal/logger"
	"github.com/gerunddev/mindbridge/markup"
	"github.com/gerunddev/mindbridge/styles"
	"github.com/gerunddev/mindbridge/tree"
)

// fail prints an error and exits with a non-zero status
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styles.ErrorStyle.Render("Error:"), fmt.Sprintf(format, args...))
	os.Exit(1)
}

// loadConfig reads the user configuration, falling back to defaults
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fail("reading config: %v", err)
	}
	return cfg
}

// newLogger builds the command logger: warnings to stderr, everything to
// the configured log file when one is set
func newLogger(cfg *config.Config) (*logger.Logger, func()) {
	stderr := logger.NewWithLevel(os.Stderr, log.WarnLevel)
	if cfg.LogFile == "" {
		return stderr, func() {}
	}
	fileLogger, cleanup, err := logger.NewFileLogger(cfg.LogFile)
	if err != nil {
		stderr.Warn("log file unavailable", "path", cfg.LogFile, "error", err)
		return stderr, func() {}
	}
	return fileLogger, cleanup
}

// convertOptions assembles converter options from config plus flags
func convertOptions(cfg *config.Config, strict bool, l *logger.Logger) []convert.Option {
	opts := []convert.Option{convert.WithLogger(l.Logger)}
	if strict || cfg.Strict {
		opts = append(opts, convert.WithStrict())
	}
	return opts
}

// printDiagnostics writes recoverable findings to stderr
func printDiagnostics(diags []convert.Diagnostic, color bool) {
	for _, d := range diags {
		if color {
			fmt.Fprintf(os.Stderr, "%s %s %s\n",
				styles.WarningStyle.Render("warning:"),
				styles.DiagPathStyle.Render(d.Path),
				styles.DiagMessageStyle.Render(d.Message))
		} else {
			fmt.Fprintf(os.Stderr, "warning: %s\n", d.String())
		}
	}
}

// nodeCount returns the number of nodes in a tree
func nodeCount(root *tree.Node) int {
	count := 0
	root.Walk(func(*tree.Node) bool {
		count++
		return true
	})
	return count
}

// hasFlag reports whether the flag is present in args
func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == name {
			return true
		}
	}
	return false
}

// flagValue returns the value following the flag, or ""
func flagValue(args []string, name string) string {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// positional returns the arguments that are not flags or flag values
func positional(args []string) []string {
	var out []string
	skip := false
	for _, a := range args {
		if skip {
			skip = false
			continue
		}
		if strings.HasPrefix(a, "-") {
			skip = a == "-o" || a == "--format" || a == "--depth"
			continue
		}
		out = append(out, a)
	}
	return out
}

// nodeLabel returns the display text of a map node. Rich text is flattened
// to its character data.
func nodeLabel(n *tree.Node) string {
	text := n.GetString("TEXT")
	if text == "" {
		text = n.GetString("LOCALIZED_TEXT")
	}
	if strings.Contains(text, "<") {
		if els, err := markup.ParseFragment(text); err == nil {
			var sb strings.Builder
			for _, el := range els {
				sb.WriteString(el.InnerText())
			}
			text = sb.String()
		}
	}
	return strings.Join(strings.Fields(text), " ")
}
