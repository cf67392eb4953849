// Package recognizer is the training and inference surface of the digit
// network, shared by every front end.
//
// A Recognizer owns one parameter set. Training calls are serialized; at
// most one mutation is in flight at a time. Inference never takes the
// training lock: it reads the most recently published parameter snapshot,
// and since training replaces the parameter set wholesale, a snapshot is
// never observed half-updated.
package recognizer

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/rand"

	"github.com/born-ml/digitnet/internal/idx"
	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
	"github.com/born-ml/digitnet/internal/preprocess"
	"github.com/born-ml/digitnet/internal/serialization"
)

// Errors returned by Recognizer.
var (
	ErrInvalidLabel    = errors.New("recognizer: label must be a digit 0-9")
	ErrNoDataset       = errors.New("recognizer: no dataset configured")
	ErrNoInput         = errors.New("recognizer: no previous input to train on")
	ErrInvalidLearning = errors.New("recognizer: learning rate must be positive")
)

// Result is the outcome of classifying one input.
type Result struct {
	Digit         int
	Probabilities []float64 // Softmax output, indexed by digit
}

// Recognizer classifies handwritten digits and learns from labelled examples.
//
// All methods are safe for concurrent use.
type Recognizer struct {
	cfg Config

	mu  sync.Mutex // serializes training and parameter replacement
	net *nn.Network

	params atomic.Pointer[nn.Parameters] // published snapshot for inference

	lastMu sync.Mutex
	last   *matrix.Matrix[float64] // last preprocessed input
}

// New creates a Recognizer with freshly initialized weights.
func New(cfg Config) (*Recognizer, error) {
	cfg = cfg.withDefaults()
	return NewWithParameters(cfg, nn.NewParameters(rand.NewSource(cfg.Seed)))
}

// NewWithParameters creates a Recognizer starting from p.
func NewWithParameters(cfg Config, p *nn.Parameters) (*Recognizer, error) {
	cfg = cfg.withDefaults()
	if cfg.LearningRate < 0 {
		return nil, fmt.Errorf("%v: %w", cfg.LearningRate, ErrInvalidLearning)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r := &Recognizer{
		cfg: cfg,
		net: nn.NewNetwork(p, cfg.network()),
	}
	r.params.Store(p)
	return r, nil
}

// Config returns the effective configuration.
func (r *Recognizer) Config() Config {
	return r.cfg
}

// Snapshot returns the current parameters. The value is immutable and stays
// valid after later training.
func (r *Recognizer) Snapshot() *nn.Parameters {
	return r.params.Load()
}

// Steps returns the number of training steps applied so far.
func (r *Recognizer) Steps() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.net.Steps()
}

// LastLoss returns the loss of the most recent training step.
func (r *Recognizer) LastLoss() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.net.LastLoss()
}

// Predict preprocesses img and returns the recognized digit.
//
// A blank image fails with preprocess.ErrNoContent. The preprocessed input is
// remembered for TrainOnLast.
func (r *Recognizer) Predict(img image.Image) (int, error) {
	res, err := r.Classify(img)
	if err != nil {
		return 0, err
	}
	return res.Digit, nil
}

// Classify is Predict with the full probability vector.
func (r *Recognizer) Classify(img image.Image) (Result, error) {
	x, err := preprocess.Normalize(img)
	if err != nil {
		return Result{}, err
	}
	r.remember(x)
	return r.classify(x), nil
}

// PredictVector classifies an already-normalized 784×1 input.
func (r *Recognizer) PredictVector(x *matrix.Matrix[float64]) (int, error) {
	if err := nn.CheckInput(x); err != nil {
		return 0, err
	}
	return nn.Predict(r.Snapshot(), x), nil
}

func (r *Recognizer) classify(x *matrix.Matrix[float64]) Result {
	act := nn.Forward(r.Snapshot(), x)
	return Result{
		Digit:         act.Prediction(),
		Probabilities: act.A2.Data(),
	}
}

func (r *Recognizer) remember(x *matrix.Matrix[float64]) {
	r.lastMu.Lock()
	defer r.lastMu.Unlock()
	r.last = x
}

// TrainOnLabeled preprocesses img, runs one training step towards label and
// returns the prediction made with the updated parameters.
func (r *Recognizer) TrainOnLabeled(img image.Image, label int) (int, error) {
	y, err := target(label)
	if err != nil {
		return 0, err
	}
	x, err := preprocess.Normalize(img)
	if err != nil {
		return 0, err
	}
	r.remember(x)
	return r.train(x, y)
}

// TrainOnLast trains on the input most recently seen by Predict, Classify or
// TrainOnLabeled, so a front end can predict first and correct afterwards.
func (r *Recognizer) TrainOnLast(label int) (int, error) {
	y, err := target(label)
	if err != nil {
		return 0, err
	}

	r.lastMu.Lock()
	x := r.last
	r.lastMu.Unlock()
	if x == nil {
		return 0, ErrNoInput
	}
	return r.train(x, y)
}

// TrainOnVector runs one training step on an already-normalized input.
func (r *Recognizer) TrainOnVector(x *matrix.Matrix[float64], label int) (int, error) {
	y, err := target(label)
	if err != nil {
		return 0, err
	}
	if err := nn.CheckInput(x); err != nil {
		return 0, err
	}
	return r.train(x, y)
}

func target(label int) (*matrix.Matrix[float64], error) {
	if label < 0 || label >= nn.OutputSize {
		return nil, fmt.Errorf("got %d: %w", label, ErrInvalidLabel)
	}
	return idx.OneHot(label)
}

func (r *Recognizer) train(x, y *matrix.Matrix[float64]) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.net.TrainStep(x, y); err != nil {
		return 0, err
	}
	p := r.net.Parameters()
	r.params.Store(p)
	return nn.Predict(p, x), nil
}

// TrainOnDataset loads the first k pairs of the configured dataset and
// trains on them in file order. k beyond the dataset trains on every pair.
func (r *Recognizer) TrainOnDataset(k int, progress nn.ProgressFunc) (nn.TrainReport, error) {
	if r.cfg.ImagesPath == "" || r.cfg.LabelsPath == "" {
		return nn.TrainReport{}, ErrNoDataset
	}
	ds, err := idx.Load(r.cfg.ImagesPath, r.cfg.LabelsPath, k)
	if err != nil {
		return nn.TrainReport{}, fmt.Errorf("load dataset: %w", err)
	}
	return r.TrainOnSamples(ds, k, progress)
}

// TrainOnSamples trains on the first k samples of an already-loaded dataset.
//
// The snapshot is republished after every step, so concurrent inference
// follows training progress.
func (r *Recognizer) TrainOnSamples(ds *idx.Dataset, k int, progress nn.ProgressFunc) (nn.TrainReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.net.TrainDataset(ds, k, func(step int, loss float64, correct bool) {
		r.params.Store(r.net.Parameters())
		if progress != nil {
			progress(step, loss, correct)
		}
	})
}

// Evaluate scores the current snapshot on ds without blocking training.
func (r *Recognizer) Evaluate(ds *idx.Dataset) nn.EvalReport {
	return nn.Evaluate(r.Snapshot(), ds, r.cfg.Parallel)
}

// Save writes the current parameters to path.
func (r *Recognizer) Save(path string) error {
	r.mu.Lock()
	p, steps := r.net.Parameters(), r.net.Steps()
	r.mu.Unlock()

	return serialization.Save(path, p, serialization.Metadata{
		LearningRate: r.cfg.LearningRate,
		Steps:        steps,
	})
}

// Load replaces the parameters with those saved at path.
func (r *Recognizer) Load(path string) error {
	p, meta, err := serialization.Load(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.net.SetParameters(p); err != nil {
		return err
	}
	r.net.SetSteps(meta.Steps)
	r.params.Store(p)
	return nil
}

// Open creates a Recognizer from parameters saved at path.
func Open(cfg Config, path string) (*Recognizer, error) {
	p, meta, err := serialization.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.LearningRate == 0 {
		cfg.LearningRate = meta.LearningRate
	}
	r, err := NewWithParameters(cfg, p)
	if err != nil {
		return nil, err
	}
	r.net.SetSteps(meta.Steps)
	return r, nil
}
