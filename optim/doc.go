// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the parameter-update rule for the digit network.
//
// # Overview
//
// This package contains:
//   - SGD: plain gradient descent with a fixed learning rate
//   - Optimizer interface for update rules
//
// Updates never write into their inputs; Step returns new matrices.
//
// # Basic Usage
//
//	import "github.com/born-ml/digitnet/optim"
//
//	func main() {
//	    sgd := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//
//	    next, err := sgd.Step(params.List(), grads.List())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	}
package optim
