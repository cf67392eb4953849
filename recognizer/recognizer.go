// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package recognizer is the public training and inference API of digitnet.
//
// # Basic Usage
//
//	import "github.com/born-ml/digitnet/recognizer"
//
//	func main() {
//	    r, err := recognizer.New(recognizer.DefaultConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Bulk training from the configured MNIST files
//	    report, err := r.TrainOnDataset(60000, nil)
//
//	    // Inference on any image.Image
//	    digit, err := r.Predict(img)
//
//	    // Correct the last guess
//	    digit, err = r.TrainOnLast(7)
//	}
//
// A Recognizer is safe for concurrent use: training is serialized and
// inference reads an immutable parameter snapshot.
package recognizer

import (
	"github.com/born-ml/digitnet/internal/recognizer"
)

// Recognizer classifies handwritten digits and learns from labelled examples.
type Recognizer = recognizer.Recognizer

// Config configures a Recognizer.
type Config = recognizer.Config

// Result is the outcome of classifying one input.
type Result = recognizer.Result

// Errors.
var (
	ErrInvalidLabel    = recognizer.ErrInvalidLabel
	ErrNoDataset       = recognizer.ErrNoDataset
	ErrNoInput         = recognizer.ErrNoInput
	ErrInvalidLearning = recognizer.ErrInvalidLearning
)

// DefaultConfig returns η = 0.01, seed 1 and the MNIST training files in the
// working directory.
func DefaultConfig() Config {
	return recognizer.DefaultConfig()
}

// New creates a Recognizer with freshly initialized weights.
func New(cfg Config) (*Recognizer, error) {
	return recognizer.New(cfg)
}

// Open creates a Recognizer from parameters saved with Recognizer.Save.
func Open(cfg Config, path string) (*Recognizer, error) {
	return recognizer.Open(cfg, path)
}
