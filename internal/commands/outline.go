package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/mindbridge/freeplane"
	"github.com/gerunddev/mindbridge/styles"
	"github.com/gerunddev/mindbridge/tree"
)

// outlineNode is the serializable shape of one map node
type outlineNode struct {
	Text     string        `yaml:"text"`
	ID       string        `yaml:"id,omitempty"`
	Children []outlineNode `yaml:"children,omitempty"`
}

// Outline renders the node structure of a mind map file
func Outline(args []string) {
	paths := positional(args)
	if len(paths) != 1 {
		fail("usage: mindbridge outline <file.mm> [--format text|yaml|markdown] [--depth <n>]")
	}
	format := flagValue(args, "--format")
	if format == "" {
		format = "text"
	}
	depth := 0
	if v := flagValue(args, "--depth"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fail("invalid --depth %q", v)
		}
		depth = n
	}

	cfg := loadConfig()
	l, cleanup := newLogger(cfg)
	defer cleanup()

	f, err := freeplane.Load(paths[0], convertOptions(cfg, hasFlag(args, "--strict"), l)...)
	if err != nil {
		fail("converting %s: %v", paths[0], err)
	}
	printDiagnostics(f.Diags, cfg.Color)

	root := f.Root()
	if root == nil {
		fail("%s has no root node", paths[0])
	}

	switch format {
	case "text":
		printTextOutline(root, "", depth, 1, cfg.Color)
	case "yaml":
		data, err := yaml.Marshal(buildOutline(root, depth, 1))
		if err != nil {
			fail("rendering yaml: %v", err)
		}
		fmt.Print(string(data))
	case "markdown":
		md := markdownOutline(root, depth)
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(120),
		)
		if err != nil {
			fmt.Print(md)
			return
		}
		out, err := renderer.Render(md)
		if err != nil {
			fmt.Print(md)
			return
		}
		fmt.Print(out)
	default:
		fail("unknown format %q, expected text, yaml or markdown", format)
	}
}

func buildOutline(n *tree.Node, maxDepth, depth int) outlineNode {
	out := outlineNode{Text: nodeLabel(n), ID: n.GetString("ID")}
	if maxDepth > 0 && depth >= maxDepth {
		return out
	}
	for _, c := range n.FindAll(freeplane.KindNode) {
		out.Children = append(out.Children, buildOutline(c, maxDepth, depth+1))
	}
	return out
}

func printTextOutline(n *tree.Node, prefix string, maxDepth, depth int, color bool) {
	label := nodeLabel(n)
	id := n.GetString("ID")
	if color {
		fmt.Printf("%s%s %s\n", styles.BranchStyle.Render(prefix),
			styles.NodeTextStyle.Render(label), styles.NodeIDStyle.Render(id))
	} else {
		fmt.Printf("%s%s %s\n", prefix, label, id)
	}
	if maxDepth > 0 && depth >= maxDepth {
		return
	}
	children := n.FindAll(freeplane.KindNode)
	for i, c := range children {
		branch := "├── "
		if i == len(children)-1 {
			branch = "└── "
		}
		printTextOutline(c, childPrefix(prefix)+branch, maxDepth, depth+1, color)
	}
}

// childPrefix turns the branch of the current line into the indent its
// children hang under.
func childPrefix(prefix string) string {
	p := strings.ReplaceAll(prefix, "├── ", "│   ")
	return strings.ReplaceAll(p, "└── ", "    ")
}

func markdownOutline(root *tree.Node, maxDepth int) string {
	var sb strings.Builder
	sb.WriteString("# " + nodeLabel(root) + "\n\n")
	var walk func(n *tree.Node, indent string, depth int)
	walk = func(n *tree.Node, indent string, depth int) {
		if maxDepth > 0 && depth >= maxDepth {
			return
		}
		for _, c := range n.FindAll(freeplane.KindNode) {
			sb.WriteString(indent + "- " + nodeLabel(c) + "\n")
			walk(c, indent+"  ", depth+1)
		}
	}
	walk(root, "", 1)
	return sb.String()
}
