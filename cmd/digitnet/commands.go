package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"

	// Image decoders for predict and label.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/born-ml/digitnet/internal/idx"
	"github.com/born-ml/digitnet/internal/nn"
	"github.com/born-ml/digitnet/internal/recognizer"
)

// datasetFlags are shared by every command that reads MNIST files.
type datasetFlags struct {
	dir    string
	images string
	labels string
	test   bool
	n      int
}

func (d *datasetFlags) register(set *flag.FlagSet, defaultTest bool) {
	set.StringVar(&d.dir, "data", ".", "Directory containing the MNIST files (plain or .gz)")
	set.StringVar(&d.images, "images", "", "IDX image file (overrides -data)")
	set.StringVar(&d.labels, "labels", "", "IDX label file (overrides -data)")
	set.BoolVar(&d.test, "test", defaultTest, "Use the t10k test files instead of the training files")
	set.IntVar(&d.n, "n", 0, "Number of samples to use (0 = all)")
}

// paths resolves the image and label file paths.
func (d *datasetFlags) paths() (string, string) {
	if d.images != "" && d.labels != "" {
		return d.images, d.labels
	}
	return idx.Paths(d.dir, !d.test)
}

func (d *datasetFlags) load() (*idx.Dataset, error) {
	var (
		ds  *idx.Dataset
		err error
	)
	if d.images != "" && d.labels != "" {
		ds, err = idx.Load(d.images, d.labels, d.n)
	} else {
		ds, err = idx.LoadDir(d.dir, !d.test, d.n)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w\n\nDownload the MNIST files (train-images-idx3-ubyte.gz, ...) into -data, or pass -images and -labels", err)
		}
		return nil, err
	}
	return ds, nil
}

func newFlagSet(name string, stdout io.Writer) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.SetOutput(stdout)
	return set
}

// openOrNew loads the model at path, or creates fresh weights when path does
// not exist yet.
func openOrNew(cfg recognizer.Config, path string) (*recognizer.Recognizer, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return recognizer.Open(cfg, path)
		}
	}
	return recognizer.New(cfg)
}

func runTrain(args []string, stdout io.Writer) error {
	set := newFlagSet("train", stdout)
	var data datasetFlags
	data.register(set, false)
	model := set.String("model", "model.json", "Where to save the trained model")
	resume := set.Bool("resume", false, "Continue training the model at -model if it exists")
	seed := set.Uint64("seed", recognizer.DefaultSeed, "Weight initialization seed")
	lr := set.Float64("lr", 0.01, "Learning rate")
	lossName := set.String("loss", nn.LossCrossEntropy.String(), "Reported loss: cross-entropy or max-probability")
	logEvery := set.Int("log-every", 100, "Print progress every N samples (0 = never)")
	if err := set.Parse(args); err != nil {
		return err
	}

	loss, err := nn.ParseLossKind(*lossName)
	if err != nil {
		return err
	}

	cfg := recognizer.DefaultConfig()
	cfg.Seed = *seed
	cfg.LearningRate = *lr
	cfg.Loss = loss
	cfg.ImagesPath, cfg.LabelsPath = data.paths()

	var r *recognizer.Recognizer
	if *resume {
		r, err = openOrNew(cfg, *model)
	} else {
		r, err = recognizer.New(cfg)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Training on %s (lr=%g, loss=%s)\n", cfg.ImagesPath, r.Config().LearningRate, loss)

	correct := 0
	var lossSum float64
	report, err := r.TrainOnDataset(data.n, func(step int, l float64, ok bool) {
		lossSum += l
		if ok {
			correct++
		}
		if *logEvery > 0 && step%*logEvery == 0 {
			fmt.Fprintf(stdout, "step %6d: accuracy %6.2f%%  loss %.4f\n",
				step, 100*float64(correct)/float64(step), lossSum/float64(step))
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Trained on %d samples: running accuracy %.2f%%, mean loss %.4f\n",
		report.Samples, 100*report.Accuracy(), report.MeanLoss)

	if err := r.Save(*model); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Saved model to %s\n", *model)
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func runPredict(args []string, stdout io.Writer) error {
	set := newFlagSet("predict", stdout)
	model := set.String("model", "model.json", "Trained model file")
	verbose := set.Bool("v", false, "Print the probability of every digit")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() == 0 {
		return fmt.Errorf("predict: no image files given: %w", errUsage)
	}

	r, err := recognizer.Open(recognizer.DefaultConfig(), *model)
	if err != nil {
		return err
	}

	for _, path := range set.Args() {
		img, err := decodeImage(path)
		if err != nil {
			return err
		}
		res, err := r.Classify(img)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		fmt.Fprintf(stdout, "%s: %d\n", path, res.Digit)
		if *verbose {
			for digit, p := range res.Probabilities {
				fmt.Fprintf(stdout, "  %d  %.4f\n", digit, p)
			}
		}
	}
	return nil
}

func runLabel(args []string, stdout io.Writer) error {
	set := newFlagSet("label", stdout)
	model := set.String("model", "model.json", "Model file to update (created if missing)")
	label := set.Int("digit", -1, "Correct digit for the image")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() != 1 {
		return fmt.Errorf("label: exactly one image file required: %w", errUsage)
	}

	img, err := decodeImage(set.Arg(0))
	if err != nil {
		return err
	}

	r, err := openOrNew(recognizer.DefaultConfig(), *model)
	if err != nil {
		return err
	}

	before, err := r.Predict(img)
	if err != nil {
		return err
	}
	after, err := r.TrainOnLast(*label)
	if err != nil {
		return err
	}
	if err := r.Save(*model); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: guessed %d, trained as %d, now %d\n", set.Arg(0), before, *label, after)
	return nil
}

func runEval(args []string, stdout io.Writer) error {
	set := newFlagSet("eval", stdout)
	var data datasetFlags
	data.register(set, true)
	model := set.String("model", "model.json", "Trained model file")
	confusion := set.Bool("confusion", false, "Print the confusion matrix")
	if err := set.Parse(args); err != nil {
		return err
	}

	r, err := recognizer.Open(recognizer.DefaultConfig(), *model)
	if err != nil {
		return err
	}
	ds, err := data.load()
	if err != nil {
		return err
	}

	report := r.Evaluate(ds)
	fmt.Fprintf(stdout, "Accuracy: %.2f%% (%d/%d)\n", 100*report.Accuracy(), report.Correct, report.Samples)
	fmt.Fprintf(stdout, "Mean loss: %.4f\n", report.MeanLoss)

	if *confusion {
		fmt.Fprint(stdout, "\nlabel\\guess")
		for guess := 0; guess < nn.OutputSize; guess++ {
			fmt.Fprintf(stdout, "%6d", guess)
		}
		fmt.Fprintln(stdout)
		for label, row := range report.Confusion {
			fmt.Fprintf(stdout, "%11d", label)
			for _, c := range row {
				fmt.Fprintf(stdout, "%6d", c)
			}
			fmt.Fprintln(stdout)
		}
	}
	return nil
}

func runExport(args []string, stdout io.Writer) error {
	set := newFlagSet("export", stdout)
	var data datasetFlags
	data.register(set, false)
	out := set.String("out", "mnist_png", "Output directory")
	if err := set.Parse(args); err != nil {
		return err
	}
	if data.n == 0 {
		data.n = 10
	}

	ds, err := data.load()
	if err != nil {
		return err
	}
	paths, err := idx.ExportPNG(*out, ds, data.n)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d images to %s\n", len(paths), *out)
	return nil
}
