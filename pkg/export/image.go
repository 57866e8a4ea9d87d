package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/dsv/pkg/layout"
)

var (
	colorNode      = color.RGBA{0xdb, 0xea, 0xfe, 0xff}
	colorHighlight = color.RGBA{0xfc, 0xd3, 0x4d, 0xff}
	colorStroke    = color.RGBA{0x1e, 0x3a, 0x8a, 0xff}
	colorEdge      = color.RGBA{0x6b, 0x80, 0xbf, 0xff}
	colorText      = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle    = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorBackdrop  = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG  = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
)

const (
	nodeRadius   = 20.0
	headerHeight = 110.0
	canvasPad    = 40.0
)

// scene is a document in canvas pixels.
type scene struct {
	Width, Height int
	Nodes         []layout.Placement
	Edges         []layout.Edge
	Highlight     int
	Title         string
	Summary       string
	Readout       string
}

// buildScene places the layout on a canvas below the header. The canvas is
// at least the container width and wide enough for the whole tree; the
// tree stays centered either way.
func buildScene(doc Document) scene {
	lay := doc.Layout
	w := math.Max(doc.LayoutOptions.ContainerWidth, lay.Width+2*canvasPad)
	w = math.Max(w, 480)
	shift := 0.0
	if !lay.Empty() {
		shift = w/2 - (lay.MinX+lay.MaxX)/2
	}

	nodes := make([]layout.Placement, len(lay.Nodes))
	for i, n := range lay.Nodes {
		n.X += shift
		n.Y += headerHeight + nodeRadius
		nodes[i] = n
	}
	h := headerHeight + lay.Height + 2*nodeRadius + canvasPad

	readout := doc.Order.Label() + ": " + joinValues(doc.Traversals[string(doc.Order)], " → ")
	return scene{
		Width:     int(math.Ceil(w)),
		Height:    int(math.Ceil(h)),
		Nodes:     nodes,
		Edges:     lay.Edges,
		Highlight: doc.Highlight,
		Title:     doc.Title,
		Summary: fmt.Sprintf("nodes: %d  height: %d  leaves: %d  diameter: %d",
			doc.Stats.Nodes, doc.Stats.Height, doc.Stats.Leaves, doc.Stats.Diameter),
		Readout: truncate(readout, 90),
	}
}

func nodeColor(s scene, slot int) color.RGBA {
	if slot == s.Highlight {
		return colorHighlight
	}
	return colorNode
}

func renderPNG(path string, doc Document) error {
	s := buildScene(doc)
	dc := gg.NewContext(s.Width, s.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(s.Width)-32, headerHeight-24, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(s.Title, 32, 40, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(s.Summary, 32, 60, 0, 0.5)
	dc.DrawStringAnchored(s.Readout, 32, 80, 0, 0.5)

	dc.SetColor(colorEdge)
	dc.SetLineWidth(2)
	for _, e := range s.Edges {
		from, to := s.Nodes[e.From], s.Nodes[e.To]
		dc.DrawLine(from.X, from.Y, to.X, to.Y)
		dc.Stroke()
	}

	for _, n := range s.Nodes {
		dc.SetColor(nodeColor(s, n.Slot))
		dc.DrawCircle(n.X, n.Y, nodeRadius)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1.5)
		dc.DrawCircle(n.X, n.Y, nodeRadius)
		dc.Stroke()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(strconv.Itoa(n.Value), n.X, n.Y, 0.5, 0.35)
	}

	return dc.SavePNG(path)
}

func renderSVG(path string, doc Document) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return renderSVGToWriter(file, doc)
}

func renderSVGToWriter(w io.Writer, doc Document) error {
	s := buildScene(doc)
	canvas := svg.New(w)
	canvas.Start(s.Width, s.Height)
	canvas.Rect(0, 0, s.Width, s.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, s.Width-32, int(headerHeight-24), 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))

	canvas.Text(32, 44, s.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 64, s.Summary, fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))
	canvas.Text(32, 84, s.Readout, fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))

	for _, e := range s.Edges {
		from, to := s.Nodes[e.From], s.Nodes[e.To]
		canvas.Line(int(from.X), int(from.Y), int(to.X), int(to.Y),
			fmt.Sprintf("stroke:%s;stroke-width:2", css(colorEdge)))
	}

	for _, n := range s.Nodes {
		x, y := int(n.X), int(n.Y)
		canvas.Circle(x, y, int(nodeRadius),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", css(nodeColor(s, n.Slot)), css(colorStroke)))
		canvas.Text(x, y+5, strconv.Itoa(n.Value),
			fmt.Sprintf("fill:%s;font-size:14px;font-family:monospace;text-anchor:middle", css(colorText)))
	}

	canvas.End()
	return nil
}

func joinValues(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
