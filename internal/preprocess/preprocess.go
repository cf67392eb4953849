// Package preprocess turns an arbitrary-size drawing into the 28×28
// intensity vector the digit network consumes.
//
// Pipeline:
//
//	RGB(A) raster → grayscale [0,1] → bounding box of ink (> Threshold)
//	→ uniform nearest-neighbour scale into 28×28 → centre → flatten row-major
package preprocess

import (
	"errors"
	"image"
	"image/color"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Canvas geometry and thresholds.
const (
	Size      = 28          // output frame side
	InputSize = Size * Size // length of the flattened vector
	Threshold = 0.01        // intensity above which a pixel counts as ink

	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Common errors.
var (
	ErrNilImage  = errors.New("preprocess: nil image")
	ErrNoContent = errors.New("preprocess: no drawable content")
)

// Box is an inclusive pixel rectangle in grayscale-matrix coordinates.
type Box struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Width returns the number of columns covered by the box.
func (b Box) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the number of rows covered by the box.
func (b Box) Height() int { return b.MaxY - b.MinY + 1 }

// Grayscale converts img into an H×W intensity matrix in [0,1].
//
// Each pixel becomes (R*0.299 + G*0.587 + B*0.114) / 255 using
// non-premultiplied 8-bit channels; alpha is ignored.
func Grayscale(img image.Image) (*matrix.Matrix[float64], error) {
	if img == nil {
		return nil, ErrNilImage
	}
	bounds := img.Bounds()
	gray, err := matrix.New[float64](bounds.Dy(), bounds.Dx())
	if err != nil {
		return nil, err
	}

	for row := 0; row < bounds.Dy(); row++ {
		for col := 0; col < bounds.Dx(); col++ {
			px := color.NRGBAModel.Convert(img.At(bounds.Min.X+col, bounds.Min.Y+row)).(color.NRGBA)
			v := (float64(px.R)*lumaR + float64(px.G)*lumaG + float64(px.B)*lumaB) / 255.0
			gray.Set(row, col, v)
		}
	}
	return gray, nil
}

// BoundingBox finds the tight box around pixels brighter than Threshold.
//
// The second result is false when no pixel qualifies.
func BoundingBox(gray *matrix.Matrix[float64]) (Box, bool) {
	box := Box{MinX: gray.Cols() - 1, MinY: gray.Rows() - 1}
	found := false

	for row := 0; row < gray.Rows(); row++ {
		for col := 0; col < gray.Cols(); col++ {
			if gray.At(row, col) <= Threshold {
				continue
			}
			found = true
			box.MinX = min(box.MinX, col)
			box.MinY = min(box.MinY, row)
			box.MaxX = max(box.MaxX, col)
			box.MaxY = max(box.MaxY, row)
		}
	}
	return box, found
}

// Fit resamples the boxed region of gray into a centred Size×Size canvas.
//
// The longer side of the box maps onto Size pixels and the shorter side keeps
// the aspect ratio; lookup is nearest-neighbour. Sizes and source indices use
// integer arithmetic, so a box whose longer side is m always fills exactly
// Size pixels along it. A side never shrinks below one pixel, so hairline
// strokes survive.
func Fit(gray *matrix.Matrix[float64], box Box) *matrix.Matrix[float64] {
	m := max(box.Width(), box.Height())
	newW := max(box.Width()*Size/m, 1)
	newH := max(box.Height()*Size/m, 1)

	canvas := matrix.MustNew[float64](Size, Size)
	offX := (Size - newW) / 2
	offY := (Size - newH) / 2

	for y := 0; y < newH; y++ {
		srcY := min(box.MinY+y*m/Size, box.MaxY)
		for x := 0; x < newW; x++ {
			srcX := min(box.MinX+x*m/Size, box.MaxX)
			canvas.Set(y+offY, x+offX, gray.At(srcY, srcX))
		}
	}
	return canvas
}

// Flatten reshapes a Size×Size canvas into an InputSize×1 column vector,
// vector[row*Size+col] = canvas[row,col].
func Flatten(canvas *matrix.Matrix[float64]) (*matrix.Matrix[float64], error) {
	return matrix.FromSlice(InputSize, 1, canvas.Data())
}

// Normalize runs the full pipeline and returns a 784×1 vector in [0,1].
//
// A blank drawing returns ErrNoContent instead of a degenerate scale.
func Normalize(img image.Image) (*matrix.Matrix[float64], error) {
	gray, err := Grayscale(img)
	if err != nil {
		return nil, err
	}

	box, ok := BoundingBox(gray)
	if !ok {
		return nil, ErrNoContent
	}

	return Flatten(Fit(gray, box))
}
