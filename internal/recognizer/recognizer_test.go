package recognizer

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/digitnet/internal/idx"
	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
	"github.com/born-ml/digitnet/internal/parallel"
	"github.com/born-ml/digitnet/internal/preprocess"
	"github.com/born-ml/digitnet/internal/serialization"
)

// canvas returns a black w×h drawing with a white vertical stroke at column x.
func canvas(w, h, x int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			c := color.NRGBA{A: 255}
			if px >= x && px < x+3 && py > h/4 && py < 3*h/4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(px, py, c)
		}
	}
	return img
}

// halfFilled lights the left or right half of a square canvas. A single
// pixel in the opposite corner stretches the bounding box to the full frame.
func halfFilled(size int, left bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			img.SetNRGBA(px, py, color.NRGBA{A: 255})
			if (px < size/2) == left {
				img.SetNRGBA(px, py, white)
			}
		}
	}
	if left {
		img.SetNRGBA(size-1, size-1, white)
	} else {
		img.SetNRGBA(0, 0, white)
	}
	return img
}

func newTestRecognizer(t *testing.T) *Recognizer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ImagesPath, cfg.LabelsPath = "", ""
	cfg.Parallel = parallel.Sequential()
	r, err := New(cfg)
	require.NoError(t, err)
	return r
}

func TestNew_Defaults(t *testing.T) {
	r, err := New(Config{})
	require.NoError(t, err)

	assert.Equal(t, 0.01, r.Config().LearningRate)
	assert.Equal(t, uint64(DefaultSeed), r.Config().Seed)
	require.NoError(t, r.Snapshot().Validate())

	_, err = New(Config{LearningRate: -1})
	require.ErrorIs(t, err, ErrInvalidLearning)
}

func TestNew_SameSeedSameWeights(t *testing.T) {
	a, err := New(Config{Seed: 7})
	require.NoError(t, err)
	b, err := New(Config{Seed: 7})
	require.NoError(t, err)

	assert.True(t, matrix.Equal(a.Snapshot().W1, b.Snapshot().W1))
}

func TestPredict_Idempotent(t *testing.T) {
	r := newTestRecognizer(t)
	img := canvas(120, 90, 40)

	first, err := r.Predict(img)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := r.Predict(img)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
	assert.Zero(t, r.Steps())
}

func TestPredict_BlankCanvas(t *testing.T) {
	r := newTestRecognizer(t)

	_, err := r.Predict(image.NewNRGBA(image.Rect(0, 0, 50, 50)))
	require.ErrorIs(t, err, preprocess.ErrNoContent)
}

func TestClassify_Probabilities(t *testing.T) {
	r := newTestRecognizer(t)

	res, err := r.Classify(canvas(60, 60, 20))
	require.NoError(t, err)
	require.Len(t, res.Probabilities, nn.OutputSize)

	var sum float64
	best := 0
	for i, p := range res.Probabilities {
		sum += p
		if p > res.Probabilities[best] {
			best = i
		}
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Equal(t, best, res.Digit)
}

func TestPredictVector(t *testing.T) {
	r := newTestRecognizer(t)

	_, err := r.PredictVector(matrix.MustNew[float64](28, 28))
	require.ErrorIs(t, err, nn.ErrInputShape)

	digit, err := r.PredictVector(matrix.MustNew[float64](nn.InputSize, 1))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, digit, 0)
	assert.Less(t, digit, 10)
}

func TestTrainOnLabeled_Learns(t *testing.T) {
	r := newTestRecognizer(t)
	left, right := halfFilled(56, true), halfFilled(56, false)

	for i := 0; i < 150; i++ {
		_, err := r.TrainOnLabeled(left, 1)
		require.NoError(t, err)
		_, err = r.TrainOnLabeled(right, 0)
		require.NoError(t, err)
	}

	got, err := r.Predict(left)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = r.Predict(right)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
	assert.Equal(t, 300, r.Steps())
}

func TestTrainOnLabeled_InvalidLabel(t *testing.T) {
	r := newTestRecognizer(t)
	before := r.Snapshot()

	for _, label := range []int{-1, 10, 42} {
		_, err := r.TrainOnLabeled(canvas(40, 40, 10), label)
		require.ErrorIs(t, err, ErrInvalidLabel)
	}
	assert.Same(t, before, r.Snapshot())
}

func TestTrainOnLabeled_BlankCanvas(t *testing.T) {
	r := newTestRecognizer(t)

	_, err := r.TrainOnLabeled(image.NewNRGBA(image.Rect(0, 0, 10, 10)), 3)
	require.ErrorIs(t, err, preprocess.ErrNoContent)
	assert.Zero(t, r.Steps())
}

func TestTrainOnLast(t *testing.T) {
	r := newTestRecognizer(t)

	_, err := r.TrainOnLast(2)
	require.ErrorIs(t, err, ErrNoInput)

	img := canvas(80, 80, 30)
	_, err = r.Predict(img)
	require.NoError(t, err)

	x, err := preprocess.Normalize(img)
	require.NoError(t, err)
	before := r.Snapshot().Clone()

	for i := 0; i < 100; i++ {
		_, err = r.TrainOnLast(6)
		require.NoError(t, err)
	}

	assert.Equal(t, 6, nn.Predict(r.Snapshot(), x))
	assert.Equal(t, 6, nn.Predict(r.Snapshot(), x))
	assert.Greater(t, nn.Forward(r.Snapshot(), x).A2.At(6, 0), nn.Forward(before, x).A2.At(6, 0))
}

func TestTrainOnVector(t *testing.T) {
	r := newTestRecognizer(t)

	_, err := r.TrainOnVector(matrix.MustNew[float64](3, 1), 1)
	require.ErrorIs(t, err, nn.ErrInputShape)

	_, err = r.TrainOnVector(matrix.MustNew[float64](nn.InputSize, 1), 11)
	require.ErrorIs(t, err, ErrInvalidLabel)

	_, err = r.TrainOnVector(matrix.MustNew[float64](nn.InputSize, 1), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Steps())
}

func TestSnapshot_CopyOnWrite(t *testing.T) {
	r := newTestRecognizer(t)
	snap := r.Snapshot()
	frozen := snap.Clone()

	_, err := r.TrainOnLabeled(canvas(50, 50, 10), 9)
	require.NoError(t, err)

	assert.NotSame(t, snap, r.Snapshot())
	for i, m := range snap.List() {
		assert.True(t, matrix.Equal(frozen.List()[i], m))
	}
}

func TestConcurrentPredictDuringTraining(t *testing.T) {
	r := newTestRecognizer(t)
	img := canvas(64, 64, 20)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				digit, err := r.Predict(img)
				assert.NoError(t, err)
				assert.True(t, digit >= 0 && digit < 10)
			}
		}()
	}
	for i := 0; i < 50; i++ {
		_, err := r.TrainOnLabeled(img, 5)
		require.NoError(t, err)
	}
	wg.Wait()

	assert.Equal(t, 50, r.Steps())
}

func writeIDX(t *testing.T, dir string, labels []byte) (string, string) {
	t.Helper()

	var imgs bytes.Buffer
	require.NoError(t, binary.Write(&imgs, binary.BigEndian, []uint32{idx.ImageMagic, uint32(len(labels)), 28, 28}))
	for _, l := range labels {
		// Label 1: left half lit; anything else: right half lit.
		for row := 0; row < 28; row++ {
			for col := 0; col < 28; col++ {
				v := byte(0)
				if (l == 1) == (col < 14) {
					v = 255
				}
				imgs.WriteByte(v)
			}
		}
	}

	var lbls bytes.Buffer
	require.NoError(t, binary.Write(&lbls, binary.BigEndian, []uint32{idx.LabelMagic, uint32(len(labels))}))
	lbls.Write(labels)

	imagesPath := filepath.Join(dir, "images")
	labelsPath := filepath.Join(dir, "labels")
	require.NoError(t, os.WriteFile(imagesPath, imgs.Bytes(), 0o600))
	require.NoError(t, os.WriteFile(labelsPath, lbls.Bytes(), 0o600))
	return imagesPath, labelsPath
}

func TestTrainOnDataset(t *testing.T) {
	labels := make([]byte, 200)
	for i := range labels {
		labels[i] = byte(1 + 6*(i%2)) // 1, 7, 1, 7, ...
	}
	imagesPath, labelsPath := writeIDX(t, t.TempDir(), labels)

	cfg := DefaultConfig()
	cfg.ImagesPath, cfg.LabelsPath = imagesPath, labelsPath
	r, err := New(cfg)
	require.NoError(t, err)

	calls := 0
	report, err := r.TrainOnDataset(1000, func(step int, _ float64, _ bool) {
		calls++
		assert.Equal(t, calls, step)
	})
	require.NoError(t, err)
	assert.Equal(t, 200, report.Samples)
	assert.Equal(t, 200, calls)
	assert.Equal(t, 200, r.Steps())

	ds, err := idx.Load(imagesPath, labelsPath, 0)
	require.NoError(t, err)
	eval := r.Evaluate(ds)
	assert.Equal(t, 200, eval.Samples)
	assert.Equal(t, 1.0, eval.Accuracy())
}

func TestTrainOnDataset_Errors(t *testing.T) {
	r := newTestRecognizer(t)
	_, err := r.TrainOnDataset(10, nil)
	require.ErrorIs(t, err, ErrNoDataset)

	dir := t.TempDir()
	imagesPath, _ := writeIDX(t, dir, []byte{1, 2, 3})
	_, shortLabels := writeIDX(t, t.TempDir(), []byte{1, 2})

	cfg := DefaultConfig()
	cfg.ImagesPath, cfg.LabelsPath = imagesPath, shortLabels
	r, err = New(cfg)
	require.NoError(t, err)

	_, err = r.TrainOnDataset(1, nil)
	require.ErrorIs(t, err, idx.ErrDatasetMismatch)
	assert.Zero(t, r.Steps())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	trained := newTestRecognizer(t)
	for i := 0; i < 20; i++ {
		_, err := trained.TrainOnLabeled(canvas(40, 40, 12), 4)
		require.NoError(t, err)
	}
	require.NoError(t, trained.Save(path))

	fresh, err := New(Config{Seed: 99})
	require.NoError(t, err)
	require.NoError(t, fresh.Load(path))
	for i, m := range trained.Snapshot().List() {
		assert.True(t, matrix.Equal(m, fresh.Snapshot().List()[i]))
	}

	opened, err := Open(Config{}, path)
	require.NoError(t, err)
	img := canvas(40, 40, 12)
	want, err := trained.Predict(img)
	require.NoError(t, err)
	got, err := opened.Predict(img)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.Error(t, fresh.Load(filepath.Join(t.TempDir(), "missing.json")))
}

func TestOpen_ResumesStepCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	trained := newTestRecognizer(t)
	for i := 0; i < 7; i++ {
		_, err := trained.TrainOnLabeled(canvas(40, 40, 12), 2)
		require.NoError(t, err)
	}
	require.NoError(t, trained.Save(path))

	opened, err := Open(DefaultConfig(), path)
	require.NoError(t, err)
	assert.Equal(t, 7, opened.Steps())

	_, err = opened.TrainOnLabeled(canvas(40, 40, 12), 2)
	require.NoError(t, err)
	assert.Equal(t, 8, opened.Steps())

	resumed := filepath.Join(t.TempDir(), "resumed.json")
	require.NoError(t, opened.Save(resumed))
	_, meta, err := serialization.Load(resumed)
	require.NoError(t, err)
	assert.Equal(t, 8, meta.Steps)

	fresh := newTestRecognizer(t)
	require.NoError(t, fresh.Load(path))
	assert.Equal(t, 7, fresh.Steps())
}

func TestOpen_KeepsParallelEvaluation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, newTestRecognizer(t).Save(path))

	opened, err := Open(DefaultConfig(), path)
	require.NoError(t, err)
	assert.Equal(t, parallel.DefaultConfig(), opened.Config().Parallel)
}
