package recognizer_test

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/digitnet/recognizer"
)

func TestRecognizer_PublicAPI(t *testing.T) {
	r, err := recognizer.New(recognizer.Config{Seed: 3})
	require.NoError(t, err)

	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 5; y < 35; y++ {
		img.SetNRGBA(20, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	}

	for i := 0; i < 100; i++ {
		_, err = r.TrainOnLabeled(img, 1)
		require.NoError(t, err)
	}
	digit, err := r.Predict(img)
	require.NoError(t, err)
	assert.Equal(t, 1, digit)

	_, err = r.TrainOnLast(12)
	require.ErrorIs(t, err, recognizer.ErrInvalidLabel)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, r.Save(path))

	reopened, err := recognizer.Open(recognizer.Config{}, path)
	require.NoError(t, err)
	digit, err = reopened.Predict(img)
	require.NoError(t, err)
	assert.Equal(t, 1, digit)
}
