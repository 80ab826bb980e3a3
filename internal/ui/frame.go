package ui

import "strings"

// Rect is a rectangular area of the terminal, in cells.
type Rect struct {
	Height int
	Width  int
	X      int
	Y      int
}

// Frame is the draw target for one render pass. Components write their
// rendered block into their assigned area; the App joins the rows into
// the final view string.
type Frame struct {
	height int
	lines  []string
	width  int
}

// NewFrame creates an empty frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{
		height: height,
		lines:  make([]string, height),
		width:  width,
	}
}

// Width returns the frame width in cells.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in rows.
func (f *Frame) Height() int { return f.height }

// SetContent writes a rendered block into the rows covered by area.
// Content taller than the area is clipped; rows the content does not
// reach keep their previous value. Lines may carry ANSI styling, so the
// X offset is applied as a plain space prefix.
func (f *Frame) SetContent(area Rect, content string) {
	prefix := strings.Repeat(" ", area.X)
	for i, line := range strings.Split(content, "\n") {
		if i >= area.Height {
			break
		}
		row := area.Y + i
		if row < 0 || row >= f.height {
			continue
		}
		f.lines[row] = prefix + line
	}
}

// Render joins the frame rows into the view string.
func (f *Frame) Render() string {
	return strings.Join(f.lines, "\n")
}
