// Command aqctl works with air-quality model artifacts from the command line.
//
// Usage:
//
//	aqctl genmodel --out model.json --kind tree_ensemble
//	aqctl inspect --model model.json
//	aqctl predict --model model.json --co 2.6 --benzene 11.88 --nox 166 \
//	  --no2 113 --temp 13.6 --rh 48.87 --ah 0.75
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/couchcryptid/air-quality-predictor/internal/domain"
	"github.com/couchcryptid/air-quality-predictor/internal/model"
	"github.com/couchcryptid/air-quality-predictor/internal/observability"
	"github.com/couchcryptid/air-quality-predictor/internal/predictor"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "aqctl",
		Usage:     "Air quality model tooling",
		Version:   version,
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			predictCommand(),
			genModelCommand(),
			inspectCommand(),
		},
	}
}

func modelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "model",
		Value:   "model.json",
		Usage:   "Path to the model artifact",
		EnvVars: []string{"MODEL_PATH"},
	}
}

func predictCommand() *cli.Command {
	flags := []cli.Flag{
		modelFlag(),
		&cli.StringFlag{Name: "output", Value: "text", Usage: "Output format: text, json"},
	}
	for _, name := range domain.FeatureNames {
		flags = append(flags, &cli.StringFlag{Name: name, Usage: "Reading for " + name})
	}

	return &cli.Command{
		Name:  "predict",
		Usage: "Predict the pollution index for one set of readings",
		Flags: flags,
		Action: func(c *cli.Context) error {
			m, err := model.Load(c.String("model"))
			if err != nil {
				return err
			}

			fields := domain.FieldMap{}
			for _, name := range domain.FeatureNames {
				if c.IsSet(name) {
					fields[name] = c.String(name)
				}
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			svc := predictor.New(m, logger, observability.NewUnregisteredMetrics())
			p, err := svc.Predict(context.Background(), fields)
			if err != nil {
				return err
			}
			return printPrediction(c.App.Writer, c.String("output"), p)
		},
	}
}

func printPrediction(w io.Writer, format string, p domain.Prediction) error {
	switch format {
	case "text":
		_, err := fmt.Fprintln(w, p.Text())
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"features":      p.Features.Named(),
			"value":         p.Value,
			"display_value": p.DisplayValue(),
			"severity":      p.Severity,
			"label":         p.Severity.Label(),
		})
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func genModelCommand() *cli.Command {
	return &cli.Command{
		Name:  "genmodel",
		Usage: "Write a sample model artifact for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "model.json", Usage: "Output path"},
			&cli.StringFlag{Name: "kind", Value: model.KindLinear, Usage: "Artifact kind: linear, tree_ensemble"},
			&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing file"},
		},
		Action: func(c *cli.Context) error {
			kind := c.String("kind")
			if kind != model.KindLinear && kind != model.KindTreeEnsemble {
				return fmt.Errorf("unknown kind %q", kind)
			}
			a := model.SampleArtifact(kind)
			if _, err := model.Compile(a); err != nil {
				return fmt.Errorf("sample artifact invalid: %w", err)
			}

			path := c.String("out")
			flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			if !c.Bool("force") {
				flag |= os.O_EXCL
			}
			f, err := os.OpenFile(path, flag, 0o644)
			if errors.Is(err, os.ErrExist) {
				return fmt.Errorf("%s already exists, pass --force to overwrite", path)
			}
			if err != nil {
				return err
			}
			if err := model.Write(f, a); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "wrote %s model to %s\n", kind, path)
			return nil
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Validate a model artifact and print its summary",
		Flags: []cli.Flag{modelFlag()},
		Action: func(c *cli.Context) error {
			path := c.String("model")
			m, err := model.Load(path)
			if err != nil {
				return err
			}
			info := m.Info()
			w := c.App.Writer
			fmt.Fprintf(w, "path:     %s\n", path)
			fmt.Fprintf(w, "name:     %s\n", info.Name)
			fmt.Fprintf(w, "version:  %s\n", info.Version)
			fmt.Fprintf(w, "kind:     %s\n", info.Kind)
			fmt.Fprintf(w, "features: %v\n", domain.FeatureNames)
			if te, ok := m.(*model.TreeEnsemble); ok {
				fmt.Fprintf(w, "trees:    %d\n", te.Trees())
			}
			return nil
		},
	}
}
