package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chrissnell/wildfire/internal/constants"
	"github.com/chrissnell/wildfire/internal/log"
	"github.com/chrissnell/wildfire/pkg/behave"
	"github.com/chrissnell/wildfire/pkg/config"
	"github.com/chrissnell/wildfire/pkg/report"
	"github.com/chrissnell/wildfire/pkg/responseformat"
	"github.com/chrissnell/wildfire/pkg/sensitivity"
	"github.com/google/uuid"
)

// result is the encoded output of one run
type result struct {
	ID     string                     `json:"id"`
	Name   string                     `json:"name,omitempty"`
	State  *behave.State              `json:"state"`
	Report *sensitivity.Report        `json:"report,omitempty"`
	Sample *sensitivity.SampleSummary `json:"sample,omitempty"`
}

type options struct {
	config      string
	backend     string
	sensitivity bool
	samples     int
	seed        uint64
	workers     int
	format      string
	debug       bool
	logFile     string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("firebehave", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.config, "config", "scenario.yaml", "Path to the scenario file (YAML, or the key = mean [stdv] text format)")
	fs.StringVar(&opts.backend, "backend", "", "Scenario backend: 'yaml' or 'text'; inferred from the file extension when empty")
	fs.BoolVar(&opts.sensitivity, "sensitivity", false, "Propagate the scenario's input uncertainty to ros, efw and sdr")
	fs.IntVar(&opts.samples, "mc", 0, "Run a Monte Carlo cross-check with this many samples")
	fs.Uint64Var(&opts.seed, "seed", 1, "Monte Carlo random seed")
	fs.IntVar(&opts.workers, "workers", 0, "Monte Carlo workers (0 uses the scenario's server.workers)")
	fs.StringVar(&opts.format, "format", "text", "Output format: text, json or msgpack")
	fs.BoolVar(&opts.debug, "debug", false, "Turn on debugging output")
	fs.StringVar(&opts.logFile, "log", "", "Also write logs to this file, rotated by size")
	showVersion := fs.Bool("version", false, "Show version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "firebehave %s\n", constants.Version)
		return 0
	}

	var err error
	if opts.logFile != "" {
		err = log.InitFile(opts.debug, opts.logFile)
	} else {
		err = log.Init(opts.debug)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	if err := solve(context.Background(), opts, stdout); err != nil {
		fmt.Fprintf(stderr, "firebehave: %v\n", err)
		return 1
	}
	return 0
}

func solve(ctx context.Context, opts options, w io.Writer) error {
	filename, _ := filepath.Abs(opts.config)
	provider, err := config.NewProvider(opts.backend, filename)
	if err != nil {
		return err
	}
	sd, err := provider.LoadScenario()
	if err != nil {
		return fmt.Errorf("error reading scenario. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	logger := log.GetSugaredLogger()
	solver := behave.NewSolver(sd.SolverConfig(), logger)
	fuel, env := sd.FuelComplex(), sd.Env()
	st, err := solver.Solve(fuel, env)
	if err != nil {
		return err
	}
	res := result{ID: uuid.NewString(), Name: sd.Name, State: st}

	if opts.sensitivity || opts.samples > 0 {
		in, err := sd.SensitivityInput()
		if err != nil {
			return err
		}
		engine := sensitivity.NewEngine(logger)

		if opts.sensitivity {
			res.Report, err = engine.Propagate(st, in)
			if err != nil {
				return err
			}
		}
		if opts.samples > 0 {
			workers := opts.workers
			if workers == 0 {
				workers = sd.Server.Workers
			}
			res.Sample, err = engine.Sample(ctx, solver, fuel, env, in, sensitivity.SampleOptions{
				N:       opts.samples,
				Seed:    opts.seed,
				Workers: workers,
			})
			if err != nil {
				return err
			}
		}
	}

	return write(w, opts.format, res)
}

func write(w io.Writer, format string, res result) error {
	if format == "text" {
		if err := report.WriteState(w, res.Name, res.State); err != nil {
			return err
		}
		if res.Report != nil {
			if err := report.WriteSensitivity(w, res.State, res.Report); err != nil {
				return err
			}
		}
		if res.Sample != nil {
			return report.WriteSample(w, res.Sample)
		}
		return nil
	}

	f, err := responseformat.ParseFormat(format)
	if err != nil {
		return err
	}
	return responseformat.NewFormatter().Indented().Encode(w, f, res)
}
