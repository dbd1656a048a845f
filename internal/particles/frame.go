package particles

// Circle is a filled circle in a Frame.
type Circle struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"r"`
	Opacity float64 `json:"o"`
}

// Segment is a connection line in a Frame.
type Segment struct {
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Opacity float64 `json:"o"`
}

// Frame is one rendered frame in a form browsers can draw on a canvas.
type Frame struct {
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Color   Color     `json:"-"`
	Circles []Circle  `json:"circles"`
	Lines   []Segment `json:"lines"`
}

// FrameSurface records draw calls into a Frame.
type FrameSurface struct {
	frame Frame
}

func NewFrameSurface() *FrameSurface {
	return &FrameSurface{}
}

func (f *FrameSurface) Clear(width, height float64) {
	f.frame = Frame{Width: width, Height: height, Circles: f.frame.Circles[:0], Lines: f.frame.Lines[:0]}
}

func (f *FrameSurface) FillCircle(x, y, radius float64, c Color, alpha float64) {
	f.frame.Color = c
	f.frame.Circles = append(f.frame.Circles, Circle{X: x, Y: y, Radius: radius, Opacity: alpha})
}

func (f *FrameSurface) Line(x1, y1, x2, y2, _ float64, c Color, alpha float64) {
	f.frame.Color = c
	f.frame.Lines = append(f.frame.Lines, Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Opacity: alpha})
}

// Frame returns a copy of the recorded frame.
func (f *FrameSurface) Frame() Frame {
	out := f.frame
	out.Circles = append([]Circle{}, f.frame.Circles...)
	out.Lines = append([]Segment{}, f.frame.Lines...)
	return out
}
