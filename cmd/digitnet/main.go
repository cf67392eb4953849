// Package main provides the digitnet CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

const version = "v0.1.0-dev"

var errUsage = errors.New("usage")

func main() {
	log.SetFlags(0)
	log.SetPrefix("digitnet: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, errUsage) {
			log.Print(err)
			os.Exit(2)
		}
		log.Fatalf("%v", err)
	}
}

// run dispatches a subcommand. Output goes to stdout; errors are returned.
func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		printUsage(stdout)
		return errUsage
	}

	switch args[0] {
	case "train":
		return runTrain(args[1:], stdout)
	case "predict":
		return runPredict(args[1:], stdout)
	case "label":
		return runLabel(args[1:], stdout)
	case "eval":
		return runEval(args[1:], stdout)
	case "export":
		return runExport(args[1:], stdout)
	case "version":
		fmt.Fprintf(stdout, "digitnet %s\n", version)
		return nil
	case "help", "-h", "-help", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stdout)
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "digitnet - handwritten digit recognition (784-64-10 MLP)")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train      Train on the first N MNIST samples and save the model")
	fmt.Fprintln(w, "  predict    Recognize the digit in one or more image files")
	fmt.Fprintln(w, "  label      Train one step on an image with its correct digit")
	fmt.Fprintln(w, "  eval       Measure accuracy on an MNIST file pair")
	fmt.Fprintln(w, "  export     Write MNIST samples out as PNG files")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "\nRun 'digitnet <command> -h' for command flags.")
}
