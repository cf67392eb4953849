package nn

import (
	"sync"

	"github.com/born-ml/digitnet/internal/idx"
	"github.com/born-ml/digitnet/internal/parallel"
)

// EvalReport summarizes inference over a labelled dataset.
type EvalReport struct {
	Samples  int
	Correct  int
	MeanLoss float64 // Mean cross-entropy

	// Confusion[label][prediction] counts every scored sample.
	Confusion [OutputSize][OutputSize]int
}

// Accuracy returns Correct/Samples, or 0 for an empty dataset.
func (r EvalReport) Accuracy() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Samples)
}

// Evaluate scores p on every sample of ds.
//
// p is only read, so the samples are split into chunks and scored
// concurrently according to cfg.
func Evaluate(p *Parameters, ds *idx.Dataset, cfg parallel.Config) EvalReport {
	var (
		mu      sync.Mutex
		report  EvalReport
		lossSum float64
	)

	parallel.ForRange(ds.Len(), func(start, end int) {
		var part EvalReport
		var partLoss float64
		for i := start; i < end; i++ {
			s := ds.Samples[i]
			act := Forward(p, s.Image)
			guess := act.Prediction()

			part.Samples++
			part.Confusion[s.Digit][guess]++
			if guess == s.Digit {
				part.Correct++
			}
			partLoss += CrossEntropy(act.A2, s.Digit)
		}

		mu.Lock()
		defer mu.Unlock()
		report.Samples += part.Samples
		report.Correct += part.Correct
		lossSum += partLoss
		for label := range part.Confusion {
			for guess, c := range part.Confusion[label] {
				report.Confusion[label][guess] += c
			}
		}
	}, cfg)

	if report.Samples > 0 {
		report.MeanLoss = lossSum / float64(report.Samples)
	}
	return report
}
