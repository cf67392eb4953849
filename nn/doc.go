// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the two-layer digit network and its building blocks.
//
// # Overview
//
// This package contains:
//   - Parameters: W1 (64×784), b1 (64×1), W2 (10×64), b2 (10×1)
//   - Activations: ReLU, ReLUDerivative, Softmax
//   - Loss functions: CrossEntropy, MaxProbabilityLoss
//   - Gradients: Backward, for driving an optimizer from package optim by hand
//   - Training: Network with single-step and whole-dataset SGD
//   - Data: LoadDataset, LoadDir
//   - Evaluation: accuracy and confusion matrix over a dataset
//
// # Basic Usage
//
//	import "github.com/born-ml/digitnet/nn"
//
//	func main() {
//	    params := nn.NewParameters(42)
//	    net := nn.NewNetwork(params, nn.DefaultConfig())
//
//	    // One training step on a normalized 784×1 input and one-hot label
//	    res, err := net.TrainStep(x, y)
//
//	    // Inference
//	    digit := net.Predict(x)
//	}
//
// # Architecture
//
// The architecture is fixed:
//
//	Z1 = W1·x + b1,  A1 = ReLU(Z1)
//	Z2 = W2·A1 + b2, A2 = Softmax(Z2)
//
// Gradients are computed in closed form and applied with plain SGD at a
// fixed learning rate. Every step produces a new parameter set, so a
// *Parameters obtained earlier is never modified.
package nn
