package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
)

// Portrait is a 2D phase space trajectory. X is an angle and Y an angular
// velocity.
type Portrait struct {
	Points []geom.Vec
}

// Phase runs the chain and records angle against angular velocity of one bob.
func Phase(c Chain, bob, ticks int) (*Portrait, error) {
	if bob < 0 || bob >= len(c.Bobs) {
		return nil, fmt.Errorf("bob %d out of range: %w", bob, dynamo.ErrParameterBounds)
	}
	w, err := c.World()
	if err != nil {
		return nil, err
	}

	portrait := &Portrait{Points: make([]geom.Vec, 0, ticks)}
	for i := 0; i < ticks; i++ {
		w.Tick(c.Dt)
		b := w.Objects()[bob]
		portrait.Points = append(portrait.Points, geom.V(b.Angle, b.AngleVelocity))
	}
	return portrait, nil
}

// Poincare records the lower bob's angle and angular velocity each time the
// upper bob swings through the vertical moving right.
func Poincare(c Chain, ticks int) (*Portrait, error) {
	if len(c.Bobs) != 2 {
		return nil, fmt.Errorf("poincare section needs 2 bobs, got %d: %w", len(c.Bobs), dynamo.ErrInvalidConfig)
	}
	w, err := c.World()
	if err != nil {
		return nil, err
	}

	section := &Portrait{}
	prev := w.Objects()[0].Angle
	for i := 0; i < ticks; i++ {
		w.Tick(c.Dt)
		bobs := w.Objects()
		curr := bobs[0].Angle
		// positive-going crossing of the vertical
		if prev < 0 && curr >= 0 && bobs[0].AngleVelocity > 0 {
			section.Points = append(section.Points, geom.V(bobs[1].Angle, bobs[1].AngleVelocity))
		}
		prev = curr
	}
	return section, nil
}

func bounds(points []geom.Vec) geom.Rect {
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
	return geom.Inflate(r, rangeX*0.1, rangeY*0.1)
}

// Bounds is the padded bounding box of the portrait.
func (p *Portrait) Bounds() geom.Rect { return bounds(p.Points) }

// ASCII plots the portrait on a width x height grid with axes where they
// cross the visible area.
func (p *Portrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 {
		return "no points"
	}

	r := p.Bounds()
	rangeX, rangeY := geom.Width(r), geom.Height(r)

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, pt := range p.Points {
		col := int((pt.X - r.Min.X) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-r.Min.Y)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if r.Min.X <= 0 && r.Max.X >= 0 {
		col := int((0 - r.Min.X) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if r.Min.Y <= 0 && r.Max.Y >= 0 {
		row := height - 1 - int((0-r.Min.Y)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
