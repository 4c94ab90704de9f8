package freeplane

import (
	"fmt"
	"io"
	"os"

	"github.com/gerunddev/mindbridge/convert"
	"github.com/gerunddev/mindbridge/markup"
	"github.com/gerunddev/mindbridge/tree"
)

// File is the thin I/O collaborator around the conversion engine: it
// parses a .mm document into the typed tree, exposes the map and its root
// node to application code, and writes the tree back out.
type File struct {
	// Map is the converted document tree; application code may read and
	// mutate it freely between Read and Write.
	Map *tree.Node

	// Diags collects the diagnostics of every degraded run performed on
	// this file, in order.
	Diags []convert.Diagnostic

	conv *convert.Converter
}

// NewFile returns an empty file over the builtin catalog.
func NewFile(opts ...convert.Option) *File {
	return &File{conv: convert.New(MustRegistry(), opts...)}
}

// Load reads and converts a mind map file from disk.
func Load(path string, opts ...convert.Option) (*File, error) {
	f := NewFile(opts...)
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if err := f.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return f, nil
}

// ReadFrom parses and converts a mind map document.
func (f *File) ReadFrom(r io.Reader) error {
	el, err := markup.Parse(r)
	if err != nil {
		return err
	}
	node, diags, err := f.conv.Convert(el)
	f.Diags = append(f.Diags, diags...)
	if err != nil {
		return err
	}
	if node.Kind() != KindMap {
		return fmt.Errorf("document root is %s, expected a map", node.Kind())
	}
	f.Map = node
	return nil
}

// Root returns the root node of the map, nil for an empty file.
func (f *File) Root() *tree.Node {
	if f.Map == nil {
		return nil
	}
	return f.Map.FindFirst(KindNode)
}

// WriteTo reverts the tree and serializes the resulting document.
func (f *File) WriteTo(w io.Writer) error {
	if f.Map == nil {
		return fmt.Errorf("no map loaded")
	}
	el, diags, err := f.conv.Revert(f.Map)
	f.Diags = append(f.Diags, diags...)
	if err != nil {
		return err
	}
	return markup.Write(w, el)
}

// Save writes the map to disk.
func (f *File) Save(path string) error {
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return w.Close()
}

// NewMap builds a minimal map with a single root node, ready for
// application code to grow.
func (f *File) NewMap(rootText string) *tree.Node {
	m := tree.New(KindMap)
	m.Set("version", "freeplane 1.3.0")
	root := tree.New(KindNode)
	root.Set("ID", NewID())
	root.Set("TEXT", rootText)
	_ = m.Append(root)
	f.Map = m
	return m
}
