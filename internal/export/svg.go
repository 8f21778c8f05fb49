package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
)

const (
	background   = "#0a0a0a"
	bodyColor    = "#00ff00"
	staticColor  = "#808080"
	defaultWidth = 4.0
)

func header(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// FrameSVG draws one sampled frame at canvas scale. Positions are relative
// to offset, which is also the pendulum pivot.
func FrameSVG(objects []object.State, size geom.Size, offset geom.Vec) string {
	if size.IsZero() {
		return ""
	}

	var sb strings.Builder
	header(&sb, size.Width, size.Height)

	pivot := offset
	for _, o := range objects {
		p := geom.Add(offset, o.Position)
		switch o.Kind {
		case object.KindLine:
			end := geom.Add(offset, o.End)
			w := o.Width
			if w <= 0 {
				w = defaultWidth
			}
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f" stroke-linecap="round"/>
`, p.X, p.Y, end.X, end.Y, staticColor, w))
		case object.KindBob:
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>
`, pivot.X, pivot.Y, p.X, p.Y, staticColor))
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, p.X, p.Y, o.Radius, bodyColor))
			pivot = p
		default:
			color := bodyColor
			if math.IsInf(o.Mass, 1) {
				color = staticColor
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, p.X, p.Y, o.Radius, color))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectorySVG creates an SVG path from trajectory data, fitted to the
// image with 10% padding and y pointing up.
func TrajectorySVG(points []geom.Vec, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	r := geom.Rect{Min: points[0], Max: points[0]}
	for _, p := range points {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}

	// Add padding
	rangeX, rangeY := geom.Width(r), geom.Height(r)
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	r = geom.Inflate(r, rangeX*0.1, rangeY*0.1)
	rangeX, rangeY = geom.Width(r), geom.Height(r)

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		x := (p.X - r.Min.X) / rangeX * float64(width)
		y := float64(height) - (p.Y-r.Min.Y)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
