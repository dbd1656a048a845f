package particles

import (
	"fmt"
	"strings"
)

// Background colors of the two themes.
const (
	DarkBackground  = "#0a0e27"
	LightBackground = "#f5f7fb"
)

// SVGSurface renders a frame as a standalone SVG document.
type SVGSurface struct {
	background string
	b          strings.Builder
}

// NewSVGSurface creates an SVG surface. An empty background leaves it transparent.
func NewSVGSurface(background string) *SVGSurface {
	return &SVGSurface{background: background}
}

func (s *SVGSurface) Clear(width, height float64) {
	s.b.Reset()
	fmt.Fprintf(&s.b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`,
		width, height, width, height)
	if s.background != "" {
		fmt.Fprintf(&s.b, `<rect width="100%%" height="100%%" fill="%s"/>`, s.background)
	}
}

func (s *SVGSurface) FillCircle(x, y, radius float64, c Color, alpha float64) {
	fmt.Fprintf(&s.b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`, x, y, radius, c.RGBA(alpha))
}

func (s *SVGSurface) Line(x1, y1, x2, y2, width float64, c Color, alpha float64) {
	fmt.Fprintf(&s.b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%g"/>`,
		x1, y1, x2, y2, c.RGBA(alpha), width)
}

// String returns the finished document.
func (s *SVGSurface) String() string {
	return s.b.String() + "</svg>"
}
