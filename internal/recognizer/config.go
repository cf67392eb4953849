package recognizer

import (
	"github.com/born-ml/digitnet/internal/nn"
	"github.com/born-ml/digitnet/internal/optim"
	"github.com/born-ml/digitnet/internal/parallel"
)

// DefaultSeed seeds weight initialization when Config.Seed is left at zero.
const DefaultSeed = 1

// Config configures a Recognizer.
type Config struct {
	LearningRate float64     // SGD step size (default: 0.01)
	Seed         uint64      // Weight initialization seed (default: DefaultSeed)
	Loss         nn.LossKind // Loss reported during training

	// Dataset used by TrainOnDataset. Either file may be gzip-compressed
	// when its name ends in ".gz".
	ImagesPath string
	LabelsPath string

	// Parallel controls how Evaluate splits a dataset across goroutines.
	Parallel parallel.Config
}

// DefaultConfig returns the standard setup: η = 0.01, cross-entropy loss,
// seed 1, the training MNIST files in the working directory and CPU-sized
// parallel evaluation.
func DefaultConfig() Config {
	return Config{
		LearningRate: optim.DefaultLR,
		Seed:         DefaultSeed,
		Loss:         nn.LossCrossEntropy,
		ImagesPath:   "train-images-idx3-ubyte",
		LabelsPath:   "train-labels-idx1-ubyte",
		Parallel:     parallel.DefaultConfig(),
	}
}

func (c Config) withDefaults() Config {
	if c.LearningRate == 0 {
		c.LearningRate = optim.DefaultLR
	}
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	return c
}

func (c Config) network() nn.Config {
	return nn.Config{LearningRate: c.LearningRate, Loss: c.Loss}
}
