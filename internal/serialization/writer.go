package serialization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/born-ml/digitnet/internal/nn"
)

// NewDocument builds the document for p.
//
// A zero meta.CreatedAt is replaced by the current time.
func NewDocument(p *nn.Parameters, meta Metadata) (*Document, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	named := p.Named()
	tensors := make([]TensorRecord, 0, len(named))
	for _, name := range nn.ParameterNames() {
		m := named[name]
		tensors = append(tensors, TensorRecord{
			Name:  name,
			Shape: []int{m.Rows(), m.Cols()},
			Data:  m.Data(),
		})
	}

	created := meta.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return &Document{
		FormatVersion: FormatVersion,
		CreatedAt:     created,
		LearningRate:  meta.LearningRate,
		Steps:         meta.Steps,
		Tensors:       tensors,
		Checksum:      ChecksumHex(tensors),
	}, nil
}

// Encode writes p as an indented JSON document to w.
func Encode(w io.Writer, p *nn.Parameters, meta Metadata) error {
	doc, err := NewDocument(p, meta)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode parameters: %w", err)
	}
	return nil
}

// Save writes p to path.
//
// The document is written to a temporary file in the same directory and
// renamed into place, so a reader never sees a half-written file.
func Save(path string, p *nn.Parameters, meta Metadata) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Encode(tmp, p, meta); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
