package imop

import (
	"image"
	"math"

	"github.com/esimov/doodle/utils"
)

// Porter-Duff composition operators.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

var compositeOps = []string{
	Clear, Copy, Dst, SrcOver, DstOver, SrcIn,
	DstIn, SrcOut, DstOut, SrcAtop, DstAtop, Xor,
}

// Bitmap holds the result of a composition.
type Bitmap struct {
	Img *image.NRGBA
}

// Composite holds the currently active composition operator.
type Composite struct {
	current string
}

// NewBitmap allocates a transparent bitmap of the given size.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// InitOp returns a Composite with SrcOver as the active operator.
func InitOp() *Composite {
	return &Composite{current: SrcOver}
}

// Set activates cop. Unsupported operators are ignored.
func (op *Composite) Set(cop string) {
	if utils.Contains(compositeOps, cop) {
		op.current = cop
	}
}

// Get returns the active operator.
func (op *Composite) Get() string {
	return op.current
}

// factors returns the Porter-Duff source and destination weights.
func (op *Composite) factors(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Clear:
		return 0, 0
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 1, 1 - as
}

// Draw composes src over the dst backdrop into bitmap using the active operator.
// If blend is not nil, the source colors are mixed with the backdrop by the
// blend mode before the composition. The three images must share the same bounds;
// a nil bitmap is allocated on the fly and returned.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA, blend *Blend) *Bitmap {
	if bitmap == nil {
		bitmap = NewBitmap(src.Bounds())
	}
	rect := src.Bounds().Intersect(dst.Bounds()).Intersect(bitmap.Img.Bounds())

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			si := src.PixOffset(x, y)
			di := dst.PixOffset(x, y)
			oi := bitmap.Img.PixOffset(x, y)

			s := toColor(src.Pix[si : si+4])
			b := toColor(dst.Pix[di : di+4])

			if blend != nil && blend.OpType != "" {
				m := blend.Apply(s, b)
				// The blended color only applies where the backdrop is present.
				s.R = (1-b.A)*s.R + b.A*m.R
				s.G = (1-b.A)*s.G + b.A*m.G
				s.B = (1-b.A)*s.B + b.A*m.B
			}

			fa, fb := op.factors(s.A, b.A)
			ao := s.A*fa + b.A*fb

			var r, g, bl float64
			if ao > 0 {
				r = (s.R*s.A*fa + b.R*b.A*fb) / ao
				g = (s.G*s.A*fa + b.G*b.A*fb) / ao
				bl = (s.B*s.A*fa + b.B*b.A*fb) / ao
			}

			out := bitmap.Img.Pix[oi : oi+4]
			out[0] = toByte(r)
			out[1] = toByte(g)
			out[2] = toByte(bl)
			out[3] = toByte(ao)
		}
	}
	return bitmap
}

// toColor converts a non-premultiplied pixel to normalized float components.
func toColor(p []uint8) Color {
	return Color{
		R: float64(p[0]) / 255,
		G: float64(p[1]) / 255,
		B: float64(p[2]) / 255,
		A: float64(p[3]) / 255,
	}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(utils.Clamp(v, 0, 1) * 255))
}
