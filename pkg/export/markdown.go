package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vanderheijden86/dsv/pkg/layout"
	"github.com/vanderheijden86/dsv/pkg/model"
)

// GenerateMarkdown creates a markdown report of the tree in doc
func GenerateMarkdown(doc Document) (string, error) {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# %s\n\n", doc.Title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", doc.GeneratedAt.Format(time.RFC1123)))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Nodes**: %d\n", doc.Stats.Nodes))
	sb.WriteString(fmt.Sprintf("- **Height**: %d\n", doc.Stats.Height))
	sb.WriteString(fmt.Sprintf("- **Leaves**: %d\n", doc.Stats.Leaves))
	sb.WriteString(fmt.Sprintf("- **Complete**: %t\n\n", doc.Stats.Complete))

	if len(doc.Values) == 0 {
		sb.WriteString("_The tree is empty._\n")
		return sb.String(), nil
	}

	// Terminal-style drawing, same cells as the TUI canvas
	sb.WriteString("## Tree\n\n")
	sb.WriteString("```text\n")
	grid := layout.Rasterize(layout.Compute(treeFromDocument(doc), layout.CellOptions(0)))
	sb.WriteString(grid.String())
	sb.WriteString("\n```\n\n")

	sb.WriteString("```mermaid\ngraph TD\n")
	for slot, v := range doc.Values {
		sb.WriteString(fmt.Sprintf("    n%d((%d))\n", slot, v))
	}
	for _, e := range doc.Layout.Edges {
		sb.WriteString(fmt.Sprintf("    n%d --> n%d\n", e.From, e.To))
	}
	sb.WriteString("```\n\n")

	sb.WriteString("## Levels\n\n")
	sb.WriteString("| Depth | Values |\n")
	sb.WriteString("|---|---|\n")
	for depth, level := range doc.Levels {
		sb.WriteString(fmt.Sprintf("| %d | %s |\n", depth, joinValues(level, ", ")))
	}
	sb.WriteString("\n")

	sb.WriteString("## Traversals\n\n")
	for _, o := range model.Orders {
		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", o.Label(), joinValues(doc.Traversals[string(o)], " → ")))
	}
	sb.WriteString("\n")

	sb.WriteString("## Statistics\n\n")
	sb.WriteString("| Min | Max | Mean | Median | Std Dev | Diameter | Center |\n")
	sb.WriteString("|---|---|---|---|---|---|---|\n")
	center := "-"
	if c := doc.Stats.Center; c >= 0 && c < len(doc.Values) {
		center = fmt.Sprintf("%d (slot %d)", doc.Values[c], c)
	}
	sb.WriteString(fmt.Sprintf("| %d | %d | %.2f | %.2f | %.2f | %d | %s |\n",
		doc.Stats.Min, doc.Stats.Max, doc.Stats.Mean, doc.Stats.Median, doc.Stats.StdDev,
		doc.Stats.Diameter, center))

	return sb.String(), nil
}

func writeMarkdown(path string, doc Document) error {
	content, err := GenerateMarkdown(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
