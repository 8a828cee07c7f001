// Command primes estimates the prime-counting function pi(x) from the
// nontrivial zeros of the Riemann zeta function via Riemann's explicit
// formula, and compares the estimate against exact sieve counts.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkilfoyle/Primes/internal/config"
	"github.com/dkilfoyle/Primes/internal/explicit"
	"github.com/dkilfoyle/Primes/internal/report"
	"github.com/dkilfoyle/Primes/internal/sieve"
	"github.com/dkilfoyle/Primes/internal/specfunc"
	"github.com/dkilfoyle/Primes/internal/zetazeros"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "primes",
	Short: "Estimate pi(x) from Riemann zeta zeros",
	Long: `Estimates the prime-counting function pi(x) using Riemann's explicit
formula: J(x) is evaluated from a list of nontrivial zeta zeros, then
inverted through the Mobius function across the fractional roots of x.
Exact sieve counts provide the ground-truth column of the report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		// Slice flags do not survive the viper round trip; apply by hand.
		if cmd.Flags().Changed("x") {
			xs, err := cmd.Flags().GetFloat64Slice("x")
			if err != nil {
				return err
			}
			cfg.Estimate.Xs = xs
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
		}
		return run(cfg)
	},
	SilenceUsage: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "primes.yaml", "Configuration file path")

	rootCmd.PersistentFlags().Float64Slice("x", nil, "Sample points to estimate pi(x) at (overrides config)")
	rootCmd.PersistentFlags().Int("terms", 0, "Number of zero pairs to sum (overrides config)")
	rootCmd.PersistentFlags().Int("max-n", 0, "Root-iteration bound for the Mobius inversion (overrides config)")
	rootCmd.PersistentFlags().String("tail", "", "Tail strategy: constant or integral (overrides config)")
	rootCmd.PersistentFlags().String("zeros", "", "External zero-list file (default: embedded 1000-zero table)")
	rootCmd.PersistentFlags().String("output-dir", "", "Report output directory (overrides config)")
	rootCmd.PersistentFlags().Int("ground-truth-limit", 0, "Sieve limit for the exact column (overrides config)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose output")

	v.BindPFlag("estimate.zero_terms", rootCmd.PersistentFlags().Lookup("terms"))
	v.BindPFlag("estimate.max_n", rootCmd.PersistentFlags().Lookup("max-n"))
	v.BindPFlag("estimate.tail", rootCmd.PersistentFlags().Lookup("tail"))
	v.BindPFlag("estimate.zeros_file", rootCmd.PersistentFlags().Lookup("zeros"))
	v.BindPFlag("output.directory", rootCmd.PersistentFlags().Lookup("output-dir"))
	v.BindPFlag("ground_truth.sieve_limit", rootCmd.PersistentFlags().Lookup("ground-truth-limit"))
	v.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	v.SetEnvPrefix("PRIMES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.SaveDefault(configPath); err != nil {
			fmt.Printf("Warning: could not save default config: %v\n", err)
		}
	}
	return config.Load(v, configPath)
}

func setupLogger(cfg config.OutputConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		if cfg.Verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}
	}
	return logger
}

func run(cfg *config.Config) error {
	logger := setupLogger(cfg.Output)

	// Zero list: read fully up front, before any estimate.
	zeros := zetazeros.Default()
	if cfg.Estimate.ZerosFile != "" {
		loaded, err := zetazeros.Load(cfg.Estimate.ZerosFile)
		if err != nil {
			return fmt.Errorf("failed to load zero list: %w", err)
		}
		zeros = loaded
	}
	if len(zeros) == 0 {
		return fmt.Errorf("zero list %s contains no zeros", cfg.Estimate.ZerosFile)
	}
	logger.Infof("zero list ready: %d zeros, first %.6f, last %.6f",
		len(zeros), zeros[0], zeros[len(zeros)-1])

	var tail explicit.TailStrategy
	switch cfg.Estimate.Tail {
	case "integral":
		tail = explicit.IntegralTail{}
	default:
		tail = explicit.ConstantTail{}
	}

	gw := specfunc.NewLibrary()
	eval := explicit.NewEvaluator(gw, zeros, cfg.Estimate.ZeroTerms, tail)
	logger.Infof("explicit formula: %d zero pairs, %s tail, maxN=%d",
		eval.Terms(), tail.Name(), cfg.Estimate.MaxN)

	var ground *sieve.Sieve
	if cfg.GroundTruth.Enabled {
		s, err := sieve.New(cfg.GroundTruth.SieveLimit)
		if err != nil {
			return fmt.Errorf("failed to build sieve: %w", err)
		}
		ground = s
		logger.Infof("ground-truth sieve ready up to %d", ground.Limit())
	}

	workers := cfg.Performance.Workers
	if workers <= 0 {
		workers = min(len(cfg.Estimate.Xs), runtime.NumCPU())
	}
	builder := report.NewBuilder(eval.JFromZeros, eval.Terms(), cfg.Estimate.MaxN,
		tail.Name(), ground, workers, logger).
		KeepBreakdowns(cfg.Output.Breakdowns)

	rep := builder.Build(cfg.Estimate.Xs)
	printTable(rep)

	storage, err := report.NewStorage(cfg.Output.Directory, cfg.Output.FilenamePrefix, logger)
	if err != nil {
		return err
	}
	if cfg.Output.SaveCSV {
		if _, err := storage.WriteCSV(rep); err != nil {
			return err
		}
	}
	if cfg.Output.SaveJSON {
		if _, err := storage.WriteJSON(rep); err != nil {
			return err
		}
	}
	return nil
}

func printTable(rep *report.Report) {
	fmt.Printf("%14s %14s %16s %12s %12s\n", "x", "pi(x)", "estimate", "abs err", "rel err")
	for _, row := range rep.Rows {
		if row.Err != "" {
			fmt.Printf("%14g %14s %16s  %s\n", row.X, "-", "-", row.Err)
			continue
		}
		truth := "-"
		absErr, relErr := "-", "-"
		if row.GroundTruth != nil {
			truth = fmt.Sprintf("%d", *row.GroundTruth)
			absErr = fmt.Sprintf("%.3f", row.AbsErr)
			relErr = fmt.Sprintf("%.2e", row.RelErr)
		}
		fmt.Printf("%14g %14s %16.4f %12s %12s\n", row.X, truth, row.Estimate, absErr, relErr)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
