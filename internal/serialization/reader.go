package serialization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
)

// Decode reads a document from r and rebuilds the parameters.
//
// The version, the tensor set, every shape and the checksum are validated
// before any matrix is built.
func Decode(r io.Reader) (*nn.Parameters, Metadata, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, Metadata{}, fmt.Errorf("decode parameters: %w", err)
	}
	return FromDocument(&doc)
}

// FromDocument validates doc and converts it to parameters.
func FromDocument(doc *Document) (*nn.Parameters, Metadata, error) {
	if doc.FormatVersion != FormatVersion {
		return nil, Metadata{}, fmt.Errorf("version %d: %w", doc.FormatVersion, ErrUnsupportedVersion)
	}
	if err := ValidateTensors(doc.Tensors); err != nil {
		return nil, Metadata{}, err
	}
	if err := ValidateChecksum(doc.Tensors, doc.Checksum); err != nil {
		return nil, Metadata{}, err
	}

	byName := make(map[string]*matrix.Matrix[float64], len(doc.Tensors))
	for _, t := range doc.Tensors {
		m, err := matrix.FromSlice(t.Shape[0], t.Shape[1], t.Data)
		if err != nil {
			return nil, Metadata{}, fmt.Errorf("tensor %q: %w", t.Name, err)
		}
		byName[t.Name] = m
	}

	p := &nn.Parameters{
		W1: byName[nn.NameWeights1],
		B1: byName[nn.NameBiases1],
		W2: byName[nn.NameWeights2],
		B2: byName[nn.NameBiases2],
	}
	if err := p.Validate(); err != nil {
		return nil, Metadata{}, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}

	meta := Metadata{
		CreatedAt:    doc.CreatedAt,
		LearningRate: doc.LearningRate,
		Steps:        doc.Steps,
	}
	return p, meta, nil
}

// Load reads the parameters saved at path.
func Load(path string) (*nn.Parameters, Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p, meta, err := Decode(f)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, meta, nil
}
