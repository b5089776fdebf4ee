// Package main trains a small classifier on a synthetic 2-D dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/born-ml/mlp/internal/datasets"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
	"github.com/born-ml/mlp/internal/train"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("mlp %s\n", version)
		return
	}

	dataset := flag.String("dataset", "spiral", "Synthetic dataset: spiral or vertical")
	dataFile := flag.String("data", "", "Load a CSV dataset instead of generating one")
	export := flag.String("export", "", "Write the dataset to this CSV file and exit")
	samples := flag.Int("samples", 100, "Samples per class")
	classes := flag.Int("classes", 3, "Number of classes")
	hidden := flag.Int("hidden", 64, "Hidden layer width")
	epochs := flag.Int("epochs", 10001, "Number of training epochs")
	logEvery := flag.Int("log-every", 100, "Log every N epochs")
	seed := flag.Uint64("seed", 0, "Random seed")
	optimizer := flag.String("optimizer", "adam", "Optimizer: sgd, adagrad, rmsprop or adam")
	lr := flag.Float64("lr", 0, "Learning rate (0 = optimizer default)")
	decay := flag.Float64("decay", 0, "Inverse-time learning rate decay")
	momentum := flag.Float64("momentum", 0, "SGD momentum")
	set := flag.String("set", "", "Extra hyperparameters as name=value,... (e.g. beta_1=0.8,epsilon=1e-8)")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))

	data, err := loadData(*dataFile, *dataset, *samples, *classes, rng)
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	if *export != "" {
		if err := writeData(*export, data); err != nil {
			log.Fatalf("Failed to export data: %v", err)
		}
		fmt.Printf("Wrote %d samples to %s\n", data.Samples(), *export)
		return
	}

	kind, err := optim.ParseKind(*optimizer)
	if err != nil {
		log.Fatal(err)
	}
	values, err := parseSet(*set)
	if err != nil {
		log.Fatalf("Invalid -set: %v", err)
	}
	for name, v := range map[string]float64{optim.LearningRate: *lr, optim.Decay: *decay, optim.Momentum: *momentum} {
		if v != 0 {
			values[name] = v
		}
	}
	opt, err := optim.New(kind, values)
	if err != nil {
		log.Fatalf("Failed to create optimizer: %v", err)
	}

	model, err := train.NewClassifier(data.Features(), *hidden, data.Classes, nn.RandomNormal(rng, nn.DefaultWeightScale))
	if err != nil {
		log.Fatalf("Failed to create model: %v", err)
	}

	fmt.Printf("Data: %d samples, %d features, %d classes\n", data.Samples(), data.Features(), data.Classes)
	fmt.Printf("Model: %s (%d parameters)\n", model, model.NumParameters())
	fmt.Printf("Optimizer: %s %v\n", kind, opt.Hyperparameters())

	trainer, err := train.NewTrainer(model, opt, train.Config{Epochs: *epochs, LogEvery: *logEvery}, log.New(os.Stdout, "", 0))
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	history, err := trainer.Run(ctx, data)
	if err != nil && ctx.Err() == nil {
		log.Fatalf("Training failed: %v", err)
	}
	if len(history) == 0 {
		return
	}

	final := history[len(history)-1]
	fmt.Printf("\nFinal: loss=%.4f accuracy=%.2f%% after %d epochs\n", final.Loss, final.Accuracy*100, len(history))
}

func loadData(file, name string, samples, classes int, rng *rand.Rand) (*datasets.Dataset, error) {
	if file != "" {
		return datasets.LoadCSV(file, 0)
	}
	gen, err := datasets.Lookup(name)
	if err != nil {
		return nil, err
	}
	return gen(samples, classes, rng)
}

func writeData(path string, d *datasets.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := datasets.WriteCSV(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// parseSet parses "name=value,name=value".
func parseSet(s string) (map[string]float64, error) {
	values := make(map[string]float64)
	if s == "" {
		return values, nil
	}
	for _, pair := range strings.Split(s, ",") {
		name, raw, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("%q: want name=value", pair)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		values[name] = v
	}
	return values, nil
}
