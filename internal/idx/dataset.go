package idx

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/petar/GoMNIST"
)

// Network geometry the loader produces samples for.
const (
	ImageSize  = 784 // 28×28 pixels
	NumClasses = 10
)

// Conventional MNIST file names.
const (
	TrainImagesFile = "train-images-idx3-ubyte"
	TrainLabelsFile = "train-labels-idx1-ubyte"
	TestImagesFile  = "t10k-images-idx3-ubyte"
	TestLabelsFile  = "t10k-labels-idx1-ubyte"
)

// Sample is one (image, label) pair ready for the network.
type Sample struct {
	Image *matrix.Matrix[float64] // 784×1, values in [0,1]
	Label *matrix.Matrix[float64] // 10×1 one-hot
	Digit int
}

// Dataset is an ordered, fully in-memory list of samples in file order.
type Dataset struct {
	Samples []Sample
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Samples) }

// OneHot encodes digit as a 10×1 vector with a single 1 at index digit.
func OneHot(digit int) (*matrix.Matrix[float64], error) {
	if digit < 0 || digit >= NumClasses {
		return nil, fmt.Errorf("one-hot %d: %w", digit, ErrInvalidLabel)
	}
	v := matrix.MustNew[float64](NumClasses, 1)
	v.Set(digit, 0, 1)
	return v, nil
}

// NewSample normalizes raw pixel bytes (divided by 255) and one-hot encodes
// the label.
func NewSample(pixels []byte, label byte) (Sample, error) {
	if len(pixels) != ImageSize {
		return Sample{}, fmt.Errorf("sample has %d pixels, want %d: %w", len(pixels), ImageSize, ErrImageSize)
	}
	oneHot, err := OneHot(int(label))
	if err != nil {
		return Sample{}, err
	}

	values := make([]float64, ImageSize)
	for i, p := range pixels {
		values[i] = float64(p) / 255.0
	}
	return Sample{Image: matrix.Vector(values), Label: oneHot, Digit: int(label)}, nil
}

// Load reads the first k image/label pairs from a paired IDX image and label
// file, in file order.
//
// k <= 0 or k larger than the file loads every pair. Files whose name ends
// in ".gz" are read as gzip-compressed IDX. If the two files declare
// different counts, ErrDatasetMismatch is returned and nothing is loaded.
func Load(imagesPath, labelsPath string, k int) (*Dataset, error) {
	if isGzip(imagesPath) || isGzip(labelsPath) {
		return loadGzip(imagesPath, labelsPath, k)
	}

	imgFile, err := os.Open(imagesPath)
	if err != nil {
		return nil, fmt.Errorf("open images: %w", err)
	}
	defer imgFile.Close()

	lblFile, err := os.Open(labelsPath)
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer lblFile.Close()

	imgReader := bufio.NewReader(imgFile)
	lblReader := bufio.NewReader(lblFile)

	imgHeader, err := ReadImageHeader(imgReader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", imagesPath, err)
	}
	lblHeader, err := ReadLabelHeader(lblReader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", labelsPath, err)
	}

	if imgHeader.Count != lblHeader.Count {
		return nil, fmt.Errorf("%d images vs %d labels: %w", imgHeader.Count, lblHeader.Count, ErrDatasetMismatch)
	}
	if imgHeader.Size() != ImageSize {
		return nil, fmt.Errorf("%dx%d images: %w", imgHeader.Rows, imgHeader.Cols, ErrImageSize)
	}

	n := clamp(k, imgHeader.Count)
	images, err := ReadImageData(imgReader, n, imgHeader.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", imagesPath, err)
	}
	labels, err := ReadLabelData(lblReader, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", labelsPath, err)
	}

	return build(images, labels)
}

// Paths resolves the training (train=true) or test image and label paths in
// dir, preferring uncompressed files and falling back to their ".gz" variants.
func Paths(dir string, train bool) (images, labels string) {
	imageFile, labelFile := TestImagesFile, TestLabelsFile
	if train {
		imageFile, labelFile = TrainImagesFile, TrainLabelsFile
	}

	images = filepath.Join(dir, imageFile)
	labels = filepath.Join(dir, labelFile)
	if _, err := os.Stat(images); errors.Is(err, fs.ErrNotExist) {
		images += ".gz"
		labels += ".gz"
	}
	return images, labels
}

// LoadDir loads the first k samples of the training or test pair in dir.
func LoadDir(dir string, train bool, k int) (*Dataset, error) {
	images, labels := Paths(dir, train)
	return Load(images, labels, k)
}

func isGzip(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

// loadGzip reads compressed IDX files through GoMNIST, which validates the
// magic numbers and decompresses the whole file.
func loadGzip(imagesPath, labelsPath string, k int) (*Dataset, error) {
	for _, path := range []string{imagesPath, labelsPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
	}

	rows, cols, rawImages, err := GoMNIST.ReadImageFile(imagesPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", imagesPath, err)
	}
	rawLabels, err := GoMNIST.ReadLabelFile(labelsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", labelsPath, err)
	}

	if len(rawImages) != len(rawLabels) {
		return nil, fmt.Errorf("%d images vs %d labels: %w", len(rawImages), len(rawLabels), ErrDatasetMismatch)
	}
	if rows*cols != ImageSize {
		return nil, fmt.Errorf("%dx%d images: %w", rows, cols, ErrImageSize)
	}

	n := clamp(k, len(rawImages))
	images := make([][]byte, n)
	labels := make([]byte, n)
	for i := 0; i < n; i++ {
		images[i] = rawImages[i]
		labels[i] = byte(rawLabels[i])
	}
	return build(images, labels)
}

func build(images [][]byte, labels []byte) (*Dataset, error) {
	ds := &Dataset{Samples: make([]Sample, len(images))}
	for i := range images {
		s, err := NewSample(images[i], labels[i])
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		ds.Samples[i] = s
	}
	return ds, nil
}
