package particles

import "fmt"

// Color is an opaque RGB color; alpha is passed per draw call.
type Color struct {
	R, G, B uint8
}

// RGBA formats c with alpha as a CSS rgba() value.
func (c Color) RGBA(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3f)", c.R, c.G, c.B, alpha)
}

// Surface is a drawing target that is fully cleared every frame.
type Surface interface {
	Clear(width, height float64)
	FillCircle(x, y, radius float64, c Color, alpha float64)
	Line(x1, y1, x2, y2, width float64, c Color, alpha float64)
}
