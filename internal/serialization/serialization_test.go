package serialization

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
)

func testParams() *nn.Parameters {
	p := nn.NewParameters(rand.NewSource(9))
	// Non-zero biases so they round-trip too.
	p.B1 = matrix.Apply(p.B1, func(float64) float64 { return 0.125 })
	p.B2 = matrix.Apply(p.B2, func(float64) float64 { return -1.0 / 3.0 })
	return p
}

func requireSameParams(t *testing.T, want, got *nn.Parameters) {
	t.Helper()
	for i, m := range want.List() {
		assert.True(t, matrix.Equal(m, got.List()[i]), "parameter %d differs", i)
	}
}

// TestEncodeDecode_RoundTrip tests bit-exact parameter persistence.
func TestEncodeDecode_RoundTrip(t *testing.T) {
	p := testParams()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, p, Metadata{CreatedAt: created, LearningRate: 0.01, Steps: 42}))

	got, meta, err := Decode(&buf)
	require.NoError(t, err)
	requireSameParams(t, p, got)
	assert.Equal(t, 0.01, meta.LearningRate)
	assert.Equal(t, 42, meta.Steps)
	assert.True(t, created.Equal(meta.CreatedAt))
}

// TestEncode_FieldNamed tests that the document is human-readable JSON.
func TestEncode_FieldNamed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testParams(), Metadata{}))

	text := buf.String()
	for _, field := range []string{`"format_version": 1`, `"created_at"`, `"tensors"`, `"checksum"`, `"name": "Weights1"`, `"name": "Biases2"`} {
		assert.Contains(t, text, field)
	}

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Tensors, 4)
	assert.Equal(t, []int{64, 784}, doc.Tensors[0].Shape)
	assert.Equal(t, []int{64, 1}, doc.Tensors[1].Shape)
	assert.Equal(t, []int{10, 64}, doc.Tensors[2].Shape)
	assert.Equal(t, []int{10, 1}, doc.Tensors[3].Shape)
	assert.False(t, doc.CreatedAt.IsZero())
}

// TestEncode_InvalidParameters tests that malformed parameters are not written.
func TestEncode_InvalidParameters(t *testing.T) {
	p := testParams()
	p.W2 = matrix.Transpose(p.W2)

	var buf bytes.Buffer
	require.ErrorIs(t, Encode(&buf, p, Metadata{}), nn.ErrParameterShape)
	assert.Zero(t, buf.Len())
}

func encodeDoc(t *testing.T, mutate func(*Document)) *bytes.Buffer {
	t.Helper()
	doc, err := NewDocument(testParams(), Metadata{})
	require.NoError(t, err)
	mutate(doc)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(doc))
	return &buf
}

// TestDecode_Rejects tests that corrupted documents fail to load.
func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Document)
		wantErr error
	}{
		{
			name:    "tampered value",
			mutate:  func(d *Document) { d.Tensors[2].Data[7] += 1e-9 },
			wantErr: ErrChecksumMismatch,
		},
		{
			name: "wrong shape",
			mutate: func(d *Document) {
				d.Tensors[3].Shape = []int{1, 10}
				d.Checksum = ChecksumHex(d.Tensors)
			},
			wantErr: ErrShapeMismatch,
		},
		{
			name: "missing tensor",
			mutate: func(d *Document) {
				d.Tensors = d.Tensors[1:]
				d.Checksum = ChecksumHex(d.Tensors)
			},
			wantErr: ErrMissingTensor,
		},
		{
			name:    "future version",
			mutate:  func(d *Document) { d.FormatVersion = 2 },
			wantErr: ErrUnsupportedVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, err := Decode(encodeDoc(t, tt.mutate))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, p)
		})
	}
}

// TestDecode_Malformed tests non-JSON input.
func TestDecode_Malformed(t *testing.T) {
	_, _, err := Decode(strings.NewReader("{not json"))
	require.Error(t, err)
}

// TestSaveLoad tests file persistence.
func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	p := testParams()

	require.NoError(t, Save(path, p, Metadata{LearningRate: 0.01, Steps: 3}))

	got, meta, err := Load(path)
	require.NoError(t, err)
	requireSameParams(t, p, got)
	assert.Equal(t, 3, meta.Steps)

	// No temporary files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "model.json", entries[0].Name())
}

// TestSave_InvalidLeavesNothing tests that a failed save does not create the file.
func TestSave_InvalidLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	p := testParams()
	p.B1 = nil

	require.Error(t, Save(filepath.Join(dir, "model.json"), p, Metadata{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestLoad_Missing tests a missing file.
func TestLoad_Missing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}
