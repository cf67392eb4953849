package idx

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

// side is the width and height of a sample image.
const side = 28

// Gray renders a sample back into a 28×28 grayscale image.
func (s Sample) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, side, side))
	for i := 0; i < ImageSize; i++ {
		v := math.Round(s.Image.At(i, 0) * 255)
		img.Pix[i] = uint8(min(max(v, 0), 255))
	}
	return img
}

// ExportPNG writes the first n samples of ds into dir as
// mnist_image{i}_label_{digit}.png. n <= 0 exports every sample.
//
// Returns the paths written.
func ExportPNG(dir string, ds *Dataset, n int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	n = clamp(n, ds.Len())
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s := ds.Samples[i]
		path := filepath.Join(dir, fmt.Sprintf("mnist_image%d_label_%d.png", i, s.Digit))
		if err := writePNG(path, s.Gray()); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
