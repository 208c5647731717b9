// Package render draws a layout.View into a PNG for debugging. It only
// consumes views, the simulation never depends on it.
package render

import (
	"hash/fnv"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/suxatcode/depgraph-layout/layout"
)

type Options struct {
	Width      int
	Height     int
	Margin     float64
	NodeRadius float64
	LineWidth  float64
	// InvertColor draws on a black background.
	InvertColor bool
}

var DefaultOptions = Options{
	Width:      800,
	Height:     600,
	Margin:     20,
	NodeRadius: 3,
	LineWidth:  0.5,
}

// GroupColor returns a stable colour for group. Nodes without a group use
// the plain foreground colour.
func GroupColor(group string, invertColor bool) color.Color {
	if group == "" {
		if invertColor {
			return color.White
		}
		return color.Black
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(group))
	return colorful.Hsl(float64(h.Sum32()%360), 0.7, 0.5).Clamped()
}

// transform maps layout coordinates onto the image keeping the aspect ratio.
type transform struct {
	minX, minY, scale, offsetX, offsetY float64
}

func newTransform(nodes []layout.NodeView, opts Options) transform {
	if len(nodes) == 0 {
		return transform{scale: 1}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX, maxX = math.Min(minX, n.X), math.Max(maxX, n.X)
		minY, maxY = math.Min(minY, n.Y), math.Max(maxY, n.Y)
	}
	w := float64(opts.Width) - 2*opts.Margin
	h := float64(opts.Height) - 2*opts.Margin
	dx, dy := maxX-minX, maxY-minY
	scale := 1.0
	switch {
	case dx > 0 && dy > 0:
		scale = math.Min(w/dx, h/dy)
	case dx > 0:
		scale = w / dx
	case dy > 0:
		scale = h / dy
	}
	return transform{
		minX:    minX,
		minY:    minY,
		scale:   scale,
		offsetX: opts.Margin + (w-dx*scale)/2,
		offsetY: opts.Margin + (h-dy*scale)/2,
	}
}

func (t transform) apply(x, y float64) (float64, float64) {
	return t.offsetX + (x-t.minX)*t.scale, t.offsetY + (y-t.minY)*t.scale
}

// Draw renders edges as lines and nodes as dots coloured by group.
func Draw(v layout.View, opts Options) image.Image {
	dc := gg.NewContext(opts.Width, opts.Height)
	background, edgeColor := color.Color(color.White), color.Color(color.Gray{Y: 0xb0})
	if opts.InvertColor {
		background, edgeColor = color.Black, color.Gray{Y: 0x50}
	}
	dc.SetColor(background)
	dc.Clear()

	t := newTransform(v.Nodes, opts)
	dc.SetColor(edgeColor)
	dc.SetLineWidth(opts.LineWidth)
	for _, e := range v.Edges {
		if e.Source < 0 || e.Source >= len(v.Nodes) || e.Target < 0 || e.Target >= len(v.Nodes) {
			continue
		}
		x1, y1 := t.apply(v.Nodes[e.Source].X, v.Nodes[e.Source].Y)
		x2, y2 := t.apply(v.Nodes[e.Target].X, v.Nodes[e.Target].Y)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}
	for _, n := range v.Nodes {
		x, y := t.apply(n.X, n.Y)
		dc.SetColor(GroupColor(n.Group, opts.InvertColor))
		dc.DrawCircle(x, y, opts.NodeRadius)
		dc.Fill()
	}
	return dc.Image()
}

func WritePNG(w io.Writer, v layout.View, opts Options) error {
	dc := gg.NewContextForImage(Draw(v, opts))
	return errors.Wrap(dc.EncodePNG(w), "encode png")
}

func SavePNG(filename string, v layout.View, opts Options) error {
	dc := gg.NewContextForImage(Draw(v, opts))
	return errors.Wrapf(dc.SavePNG(filename), "save png '%s'", filename)
}
