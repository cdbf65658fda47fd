// Package main provides the sprout CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/born-ml/sprout/internal/backend/cpu"
	"github.com/born-ml/sprout/internal/config"
	"github.com/born-ml/sprout/internal/kernel"
	"github.com/born-ml/sprout/internal/nn"
	"github.com/born-ml/sprout/internal/tensor"
	"github.com/born-ml/sprout/internal/train"
)

const version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 0
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "sprout %s\n", version)
		return 0
	case "train":
		if err := trainCommand(args[1:], stderr); err != nil {
			fmt.Fprintf(stderr, "sprout: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(stderr, "sprout: unknown command %q\n\n", args[0])
		usage(stderr)
		return 1
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "sprout %s - small neural networks with explicit backward\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                     Show version")
	fmt.Fprintln(w, "  train -config run.yaml      Train a model on a synthetic batch")
}

func trainCommand(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to the YAML run description (required)")
	steps := fs.Int("steps", 0, "override the number of training steps")
	lr := fs.Float64("lr", 0, "override the learning rate")
	verbose := fs.Bool("v", false, "log kernel allocation events")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return fmt.Errorf("train: -config is required")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *steps > 0 {
		cfg.Steps = *steps
	}
	if *lr > 0 {
		cfg.LearningRate = float32(*lr)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return runTraining(cfg, logger)
}

func runTraining(cfg *config.Config, logger *slog.Logger) error {
	k := kernel.New(kernel.Config{
		MaxBytes: cfg.MaxBytes,
		Seed:     cfg.Seed,
		Observer: func(e kernel.Event) {
			logger.Debug("kernel", "event", e.Kind.String(), "id", e.ID, "bytes", e.Bytes, "used", e.Used)
		},
	})

	input, target, err := syntheticBatch(k, cfg)
	if err != nil {
		return fmt.Errorf("synthetic data: %w", err)
	}

	model, err := cfg.BuildModel()
	if err != nil {
		return err
	}
	opt, err := cfg.BuildOptimizer(model.Parameters())
	if err != nil {
		return err
	}
	trainer := train.New(model, nn.NewMSE(), train.Config{
		LearningRate: cfg.LearningRate,
		Optimizer:    opt,
	})

	logger.Info("training",
		"seed", cfg.Seed,
		"layers", model.Len(),
		"parameters", len(model.Parameters()),
		"steps", cfg.Steps,
		"lr", trainer.LearningRate(),
		"batch", cfg.BatchSize)

	every := max(cfg.Steps/10, 1)
	history, err := trainer.Fit(input, target, cfg.Steps, func(step int, loss float32) {
		if step%every == 0 || step == cfg.Steps-1 {
			logger.Info("step", "step", step, "loss", loss, "lr", trainer.LearningRate())
		}
	})
	if err != nil {
		return err
	}

	final, err := trainer.Evaluate(input, target)
	if err != nil {
		return err
	}
	stats := k.Stats()
	logger.Info("done",
		"first_loss", history[0],
		"final_loss", final,
		"kernel_used", stats.Used,
		"kernel_live", stats.Live)
	return nil
}

// syntheticBatch draws a deterministic regression problem from the kernel:
// targets are softmax (or sigmoid for a single output) of the inputs
// projected through a fixed random matrix.
func syntheticBatch(k *kernel.Kernel, cfg *config.Config) (input, target *tensor.Tensor, err error) {
	out := cfg.OutputDim()

	in := cfg.InputDim()
	if in == 0 {
		// The model starts with an embedding: feed indices within the table.
		num := cfg.Model[0].Num
		rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // synthetic data
		ids := make([]float32, cfg.BatchSize)
		for i := range ids {
			ids[i] = float32(rng.Intn(num))
		}
		if input, err = tensor.FromSlice(ids, tensor.Shape{cfg.BatchSize}); err != nil {
			return nil, nil, err
		}
		features, err := k.CreateTensor(tensor.Shape{num, out}, tensor.F32, kernel.WithName("features"))
		if err != nil {
			return nil, nil, err
		}
		defer k.Release(features.ID) //nolint:errcheck // owned by this function
		// Rows of the feature table stand in for projected inputs.
		proj := tensor.Zeros(tensor.Shape{cfg.BatchSize, out})
		for i, id := range ids {
			copy(proj.Data[i*out:(i+1)*out], features.Data[int(id)*out:(int(id)+1)*out])
		}
		target, err = squash(k, proj)
		return input, target, err
	}

	input, err = k.CreateTensor(tensor.Shape{cfg.BatchSize, in}, tensor.F32, kernel.WithName("input"))
	if err != nil {
		return nil, nil, err
	}
	// Xavier values are small; widen them so the problem is not trivial.
	cpu.Scal(4, input.Data)

	weights, err := k.CreateTensor(tensor.Shape{in, out}, tensor.F32, kernel.WithName("projection"))
	if err != nil {
		return nil, nil, err
	}
	defer k.Release(weights.ID) //nolint:errcheck // owned by this function

	proj, err := k.MatMul(input, weights)
	if err != nil {
		return nil, nil, err
	}
	defer k.Release(proj.ID) //nolint:errcheck // owned by this function

	target, err = squash(k, proj)
	return input, target, err
}

func squash(k *kernel.Kernel, proj *tensor.Tensor) (*tensor.Tensor, error) {
	if proj.Shape[1] > 1 {
		return k.Softmax(proj, -1)
	}
	target := tensor.Zeros(proj.Shape)
	cpu.Sigmoid(target.Data, proj.Data)
	return target, nil
}
