package nn

import (
	"github.com/born-ml/digitnet/internal/idx"
)

// ProgressFunc is called after every training step of a bulk run.
//
// step counts from 1. correct reports whether the pre-update guess was right.
type ProgressFunc func(step int, loss float64, correct bool)

// TrainReport summarizes a bulk training run.
type TrainReport struct {
	Samples  int
	Correct  int     // Pre-update guesses that matched the label
	MeanLoss float64 // Mean of the per-step reported loss
}

// Accuracy returns Correct/Samples, or 0 for an empty run.
func (r TrainReport) Accuracy() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Samples)
}

// TrainDataset runs one training step per sample over the first k samples of
// ds, strictly in order: no shuffling, no batching, no early stopping.
//
// k <= 0 or k beyond the dataset trains on every sample. progress may be nil.
func (n *Network) TrainDataset(ds *idx.Dataset, k int, progress ProgressFunc) (TrainReport, error) {
	if k <= 0 || k > ds.Len() {
		k = ds.Len()
	}

	var report TrainReport
	var lossSum float64
	for i := 0; i < k; i++ {
		s := ds.Samples[i]
		res, err := n.TrainStep(s.Image, s.Label)
		if err != nil {
			return report, err
		}

		report.Samples++
		if res.Correct {
			report.Correct++
		}
		lossSum += res.Loss
		report.MeanLoss = lossSum / float64(report.Samples)

		if progress != nil {
			progress(i+1, res.Loss, res.Correct)
		}
	}
	return report, nil
}
