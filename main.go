package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/crillab/gophercast/pbcheck"
	"github.com/crillab/gophercast/solver"
)

const (
	exitInfeasible = 1
	exitError      = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}
}

// exitCode returns the process status for err, reporting it on w unless it is the infeasible outcome.
func exitCode(err error, w io.Writer) int {
	if errors.Is(err, solver.ErrInfeasible) {
		return exitInfeasible
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return exitError
}

// flags are the command-line options. They override the content of the configuration file.
type flags struct {
	basic       bool
	bound       string
	noOptimCut  bool
	noFeasCut   bool
	quiet       bool
	verbose     bool
	debug       bool
	verify      bool
	configPath  string
	metricsPath string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		fl     flags
		logger *zap.Logger
	)
	cmd := &cobra.Command{
		Use:   "gophercast [options] [file.txt|file.json]",
		Short: "Picks a minimum cost set of actors covering all groups",
		Long: `gophercast reads a covering problem, on stdin or in the given file, and finds
a minimum cost selection of exactly n actors such that every group has at least
one chosen actor, using an exact branch and bound search.

The text input format is "l m n" followed, for each of the m actors, by
"cost s g_1 ... g_s". Files with a .json suffix are read as JSON documents.

The ids of the chosen actors are printed on one line, followed by the total cost.
If no selection exists, "Inviavel" is printed and the exit status is 1.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zapcore.WarnLevel
			if fl.verbose {
				level = zapcore.InfoLevel
			}
			if fl.debug {
				level = zapcore.DebugLevel
			}
			enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
			logger = zap.New(zapcore.NewCore(enc, zapcore.AddSync(stderr), level))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, fl)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), cfg, path, stdin, stdout, stderr, logger)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	f := cmd.Flags()
	f.BoolVarP(&fl.basic, "basic", "a", false, "use the basic bound instead of the improved one")
	f.StringVar(&fl.bound, "bound", "", `lower bound, "basic" or "improved" (default "improved")`)
	f.BoolVarP(&fl.noOptimCut, "no-optimality-cut", "o", false, "disable the optimality cut")
	f.BoolVarP(&fl.noFeasCut, "no-feasibility-cut", "f", false, "disable the feasibility cut")
	f.BoolVarP(&fl.quiet, "quiet", "q", false, "do not print search statistics on stderr")
	f.BoolVarP(&fl.verbose, "verbose", "v", false, "log search summary on stderr")
	f.BoolVar(&fl.debug, "debug", false, "log every step of the search on stderr")
	f.BoolVar(&fl.verify, "verify", false, "check the result against gophersat's MAXSAT solver")
	f.StringVar(&fl.configPath, "config", "", "path to a YAML configuration file")
	f.StringVar(&fl.metricsPath, "metrics-file", "", "write search metrics to this file, in the Prometheus text format")
	cmd.MarkFlagsMutuallyExclusive("basic", "bound")
	return cmd
}

// parse reads a problem from path, or from stdin if path is empty.
func parse(path string, stdin io.Reader) (*solver.Problem, error) {
	if path == "" {
		pb, err := solver.ParseText(stdin)
		if err != nil {
			return nil, fmt.Errorf("could not parse problem: %w", err)
		}
		return pb, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()
	var pb *solver.Problem
	if strings.HasSuffix(path, ".json") {
		pb, err = solver.ParseJSON(f)
	} else {
		pb, err = solver.ParseText(f)
	}
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", path, err)
	}
	return pb, nil
}

func run(ctx context.Context, cfg Config, path string, stdin io.Reader, stdout, stderr io.Writer, logger *zap.Logger) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	pb, err := parse(path, stdin)
	if err != nil {
		return err
	}
	logger.Info("problem loaded",
		zap.Int("groups", pb.NbGroups),
		zap.Int("actors", pb.NbActors()),
		zap.Int("picks", pb.NbPicks),
		zap.String("bound", fmt.Sprint(opts.Bound)),
		zap.Bool("optimalityCut", opts.OptimalityCut),
		zap.Bool("feasibilityCut", opts.FeasibilityCut))
	s := solver.New(pb, opts)
	s.Logger = logger.Named("solver")
	res, err := s.SolveContext(ctx)
	if err != nil {
		return fmt.Errorf("search interrupted: %w", err)
	}
	if err := res.Write(stdout); err != nil {
		return fmt.Errorf("could not write result: %w", err)
	}
	if res.Status == solver.Feasible && !cfg.Quiet {
		if err := res.WriteStats(stderr); err != nil {
			return fmt.Errorf("could not write statistics: %w", err)
		}
	}
	if cfg.MetricsFile != "" {
		if err := writeMetrics(cfg.MetricsFile, res); err != nil {
			return err
		}
	}
	if cfg.Verify {
		if err := pbcheck.Verify(pb, res); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("result verified")
	}
	return res.Err()
}
