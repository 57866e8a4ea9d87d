// Package export writes snapshots of a tree to files: SVG and PNG images,
// a JSON document, a markdown report and a SQLite database.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/dsv/pkg/analysis"
	"github.com/vanderheijden86/dsv/pkg/layout"
	"github.com/vanderheijden86/dsv/pkg/model"
	"github.com/vanderheijden86/dsv/pkg/tree"
	"github.com/vanderheijden86/dsv/pkg/version"
)

// Format is an export file format.
type Format string

const (
	FormatSVG      Format = "svg"
	FormatPNG      Format = "png"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatSQLite   Format = "sqlite"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatSVG, FormatPNG, FormatJSON, FormatMarkdown, FormatSQLite}
}

// Ext is the file extension written for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("unsupported format %q (want svg, png, json, md or sqlite)", s)
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot infer format from %q: no extension", path)
	}
	return ParseFormat(ext)
}

// SnapshotOptions controls a single export.
type SnapshotOptions struct {
	Path      string         // Output path
	Format    Format         // Inferred from Path when empty
	Title     string         // Rendered in headers; defaults to "Binary Tree"
	Tree      tree.Tree      // Tree to export
	Layout    layout.Options // Pixel spacing; zero value means layout.DefaultOptions
	Order     model.Order    // Traversal shown in the image header
	Highlight int            // Slot drawn highlighted, or -1
	Now       time.Time      // Generation time; zero means time.Now
}

func (o SnapshotOptions) withDefaults() SnapshotOptions {
	if o.Title == "" {
		o.Title = "Binary Tree"
	}
	if o.Layout.StepX == 0 && o.Layout.StepY == 0 {
		width := o.Layout.ContainerWidth
		o.Layout = layout.DefaultOptions()
		o.Layout.ContainerWidth = width
	}
	if !o.Order.IsValid() {
		o.Order = model.OrderIn
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Document is everything a snapshot knows about a tree. It is the JSON
// export and the payload of the robot flags.
type Document struct {
	Title         string           `json:"title"`
	GeneratedAt   time.Time        `json:"generated_at"`
	Version       string           `json:"version"`
	Tree          string           `json:"tree"`
	Values        []int            `json:"values"`
	Levels        [][]int          `json:"levels"`
	LayoutOptions layout.Options   `json:"layout_options"`
	Layout        layout.Result    `json:"layout"`
	Traversals    map[string][]int `json:"traversals"`
	Stats         analysis.Stats   `json:"stats"`
	Order         model.Order      `json:"order"`
	Highlight     int              `json:"highlight"`
}

// NewDocument lays out and analyzes the tree in opts.
func NewDocument(opts SnapshotOptions) Document {
	opts = opts.withDefaults()
	t := opts.Tree

	values := make([]int, 0, t.Len())
	t.Walk(func(p tree.Position) bool {
		values = append(values, p.Value)
		return true
	})
	traversals := make(map[string][]int, len(model.Orders))
	for _, o := range model.Orders {
		traversals[string(o)] = t.Values(o)
		if traversals[string(o)] == nil {
			traversals[string(o)] = []int{}
		}
	}
	levels := t.Levels()
	if levels == nil {
		levels = [][]int{}
	}

	return Document{
		Title:         opts.Title,
		GeneratedAt:   opts.Now.UTC(),
		Version:       version.Version,
		Tree:          t.String(),
		Values:        values,
		Levels:        levels,
		LayoutOptions: opts.Layout,
		Layout:        layout.Compute(t, opts.Layout),
		Traversals:    traversals,
		Stats:         analysis.Compute(t),
		Order:         opts.Order,
		Highlight:     opts.Highlight,
	}
}

// SaveSnapshot writes one export. The parent directory is created as needed.
func SaveSnapshot(opts SnapshotOptions) error {
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	format := opts.Format
	if format == "" {
		f, err := FormatFromPath(opts.Path)
		if err != nil {
			return err
		}
		format = f
	} else {
		f, err := ParseFormat(string(format))
		if err != nil {
			return err
		}
		format = f
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	return writeFormat(opts.Path, format, NewDocument(opts))
}

func writeFormat(path string, format Format, doc Document) error {
	switch format {
	case FormatSVG:
		return renderSVG(path, doc)
	case FormatPNG:
		return renderPNG(path, doc)
	case FormatJSON:
		return writeJSON(path, doc)
	case FormatMarkdown:
		return writeMarkdown(path, doc)
	case FormatSQLite:
		return writeSQLite(path, doc)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

// treeFromDocument rebuilds the tree from its level-order values.
func treeFromDocument(doc Document) tree.Tree {
	return tree.FromValues(doc.Values...)
}
