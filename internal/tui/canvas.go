package tui

import (
	"math"
	"strings"

	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/world"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

// Canvas rasterizes a world snapshot into a grid of runes.
type Canvas struct {
	cols, rows int
	cells      [][]rune
	scale      float64
	origin     geom.Vec
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{scale: 1}
	c.Resize(cols, rows)
	return c
}

func (c *Canvas) Resize(cols, rows int) {
	c.cols = max(cols, 1)
	c.rows = max(rows, 1)
	c.cells = make([][]rune, c.rows)
	for i := range c.cells {
		c.cells[i] = make([]rune, c.cols)
	}
	c.clear()
}

func (c *Canvas) Cols() int { return c.cols }
func (c *Canvas) Rows() int { return c.rows }

func (c *Canvas) clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = ' '
		}
	}
}

// fit chooses a uniform scale so the world canvas fills the grid.
func (c *Canvas) fit(size geom.Size) {
	c.origin = geom.Vec{}
	if size.IsZero() {
		c.scale = 1
		return
	}
	sx := float64(c.cols) / size.Width
	sy := float64(c.rows) * cellAspect / size.Height
	c.scale = math.Min(sx, sy)
}

// Cell maps a canvas point to a grid cell.
func (c *Canvas) Cell(p geom.Vec) (int, int) {
	x := (p.X - c.origin.X) * c.scale
	y := (p.Y - c.origin.Y) * c.scale / cellAspect
	return int(math.Floor(x)), int(math.Floor(y))
}

// Point maps a grid cell back to the canvas point at its centre.
func (c *Canvas) Point(col, row int) geom.Vec {
	return geom.Vec{
		X: c.origin.X + (float64(col)+0.5)/c.scale,
		Y: c.origin.Y + (float64(row)+0.5)*cellAspect/c.scale,
	}
}

func (c *Canvas) At(col, row int) rune {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return 0
	}
	return c.cells[row][col]
}

func (c *Canvas) set(x, y int, r rune) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.rows {
		c.cells[y][x] = r
	}
}

func (c *Canvas) line(x1, y1, x2, y2 int, r rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x1, y1, r)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (c *Canvas) segment(a, b geom.Vec, r rune) {
	x1, y1 := c.Cell(a)
	x2, y2 := c.Cell(b)
	c.line(x1, y1, x2, y2, r)
}

// circle draws an outline once the radius spans more than a cell,
// otherwise a single glyph.
func (c *Canvas) circle(centre geom.Vec, radius float64, glyph rune) {
	cx, cy := c.Cell(centre)
	rx := radius * c.scale
	if rx < 1.5 {
		c.set(cx, cy, glyph)
		return
	}
	steps := int(math.Ceil(2 * math.Pi * rx))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		p := geom.Add(centre, geom.Scale(radius, geom.V(math.Cos(a), math.Sin(a))))
		x, y := c.Cell(p)
		c.set(x, y, '.')
	}
	c.set(cx, cy, glyph)
}

// Draw renders snap. Arrows go first so bodies stay visible on top of them.
func (c *Canvas) Draw(snap world.Snapshot) {
	c.clear()
	c.fit(snap.CanvasSize)

	for _, a := range snap.Arrows() {
		r := '\''
		if a.Kind == world.ArrowForce {
			r = '*'
		}
		c.segment(a.From, a.To, r)
	}

	pivot := snap.Offset
	anchored := false
	for _, o := range snap.Objects {
		p := geom.Add(snap.Offset, o.Position)
		switch o.Kind {
		case object.KindLine:
			r := '='
			if !o.Finalized {
				r = '-'
			}
			c.segment(p, geom.Add(snap.Offset, o.End), r)
		case object.KindBob:
			c.segment(pivot, p, '|')
			if !anchored {
				x, y := c.Cell(pivot)
				c.set(x, y, '+')
				anchored = true
			}
			c.circle(p, o.Radius, 'O')
			pivot = p
		default:
			glyph := 'o'
			if math.IsInf(o.Mass, 1) {
				glyph = '#'
			}
			c.circle(p, o.Radius, glyph)
		}
	}
}

// Mark overlays a single glyph, used for the cursor.
func (c *Canvas) Mark(col, row int, r rune) { c.set(col, row, r) }

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
