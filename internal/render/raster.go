package render

// Fill selects between a solid shape and its outline.
type Fill int

const (
	Outline Fill = iota
	Filled
)

// Direction is the way a triangle widens from its vertical leg towards its apex.
type Direction int

const (
	Rightward Direction = iota
	Leftward
)

// hypotenuseInset scales a triangle margin vertically (1+√2) so the inset
// hypotenuse runs parallel to the outer one for the 45° slopes drawn here.
const hypotenuseInset = 2.4142

// DirectionOf derives the direction of a triangle from the order of its x
// coordinates.
func DirectionOf(x1, x2 int) Direction {
	if x2 >= x1 {
		return Rightward
	}
	return Leftward
}

// DrawRect draws the inclusive box (x1,y1)-(x2,y2).
func (r *Region) DrawRect(fill Fill, x1, y1, x2, y2 int, c ColorIndex) {
	if fill == Filled {
		for y := y1; y <= y2; y++ {
			for x := x1; x <= x2; x++ {
				r.set(x, y, c)
			}
		}
		return
	}
	for y := y1; y <= y2; y++ {
		r.set(x1, y, c)
		r.set(x2, y, c)
	}
	for x := x1; x <= x2; x++ {
		r.set(x, y1, c)
		r.set(x, y2, c)
	}
}

// DrawTriangle draws a triangle whose vertical leg is x1 over y1..y2 and
// whose apex is (x2, y1+(y2-y1)/2). Each half grows one pixel per scanline.
func (r *Region) DrawTriangle(fill Fill, dir Direction, x1, y1, x2, y2 int, c ColorIndex) {
	step := 1
	if dir == Leftward {
		step = -1
	}
	mid := y1 + (y2-y1)/2
	for y := y1; y <= mid; y++ {
		h := y - y1
		if fill == Filled {
			for x := x1; step*(x-x1) <= h && step*(x2-x) >= 0; x += step {
				r.set(x, y, c)
				r.set(x, y2-h, c)
			}
			continue
		}
		r.set(x1, y, c)
		r.set(x1+step*h, y, c)
		r.set(x1, y2-h, c)
		r.set(x1+step*h, y2-h, c)
	}
}

// DrawRectInset draws the box shrunk by margin (at least 1) on every side.
// Nothing is drawn if the inset box would be empty or inverted.
func (r *Region) DrawRectInset(fill Fill, x1, y1, x2, y2, margin int, c ColorIndex) {
	if margin < 1 {
		margin = 1
	}
	if x1+2*margin >= x2 || y1+2*margin >= y2 {
		return
	}
	r.DrawRect(fill, x1+margin, y1+margin, x2-margin, y2-margin, c)
}

// DrawTriangleInset draws the triangle shrunk by margin (at least 1). The
// vertical inset is scaled by hypotenuseInset; the horizontal one follows dir.
// Nothing is drawn if the inset triangle would be empty or inverted.
func (r *Region) DrawTriangleInset(fill Fill, dir Direction, x1, y1, x2, y2 int, margin float64, c ColorIndex) {
	if margin < 1 {
		margin = 1
	}
	xm := int(margin)
	span := x2 - x1
	if dir == Leftward {
		xm = -xm
		span = -span
	}
	if 2*margin >= float64(span) || float64(y1)+2*margin >= float64(y2) {
		return
	}
	top := int(float64(y1) + hypotenuseInset*margin)
	bottom := int(float64(y2) - hypotenuseInset*margin)
	if top >= bottom {
		return
	}
	r.DrawTriangle(fill, dir, x1+xm, top, x2-xm, bottom, c)
}
