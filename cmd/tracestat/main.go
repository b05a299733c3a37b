// Command tracestat summarizes a stack VM execution report: the plan, op and stack
// distributions, the hottest program counters with their disassembly, and timing.
//
// Usage:
//
//	tracestat [report-file]     # reads stdin when no file or "-" is given
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tracestat/internal/config"
	"tracestat/internal/logging"
	"tracestat/internal/pipeline"
	"tracestat/internal/render"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Report flags
	topPCs      int
	contextSize int
	exitCodes   bool
	showProgram bool

	cfg  *config.Config
	logs *logging.Factory
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tracestat [report-file]",
	Short: "Summarize a stack VM execution report",
	Long: `Parses a stack VM execution report (plan, program listing, per-step trace and
optional timing) and prints:
  - the plan text and trace length
  - stack_index and op distributions
  - the hottest program counters, each with its disassembly context
  - per-op clock statistics when the trace carries op_time lines

The report is read from the named file, or from stdin when no file or "-" is given.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logs, err = logging.New(cfg.Logging, verbose, cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logs.Get(logging.CategoryBoot).Debug("Config loaded",
			zap.String("path", configPath),
			zap.Int("top_pcs", cfg.Report.TopPCs),
			zap.Int("context", cfg.Report.Context))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logs.Sync()
	},
	RunE: runReport,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "Config file")

	rootCmd.Flags().IntVar(&topPCs, "top", 10, "Number of hottest program counters to show")
	rootCmd.Flags().IntVar(&contextSize, "context", 3, "Instructions shown around each hot program counter")
	rootCmd.Flags().BoolVar(&exitCodes, "exit-codes", false, "Show the exit code distribution")
	rootCmd.Flags().BoolVar(&showProgram, "show-program", false, "Print the full program listing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlagOverrides copies explicitly set flags over config values.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("top") {
		cfg.Report.TopPCs = topPCs
	}
	if flags.Changed("context") {
		cfg.Report.Context = contextSize
	}
	if flags.Changed("exit-codes") {
		cfg.Report.ExitCodes = exitCodes
	}
	if flags.Changed("show-program") {
		cfg.Report.ShowProgram = showProgram
	}
}

// runReport analyzes one report and writes the summary to stdout.
func runReport(cmd *cobra.Command, args []string) error {
	in, closeIn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeIn()

	p, err := pipeline.New(in, logs)
	if err != nil {
		return err
	}
	analysis, err := p.Run()
	if err != nil {
		return err
	}

	opts := render.Options{
		TopPCs:      cfg.Report.TopPCs,
		Context:     cfg.Report.Context,
		ExitCodes:   cfg.Report.ExitCodes,
		ShowProgram: cfg.Report.ShowProgram,
	}
	return render.New(cmd.OutOrStdout(), opts, logs.Get(logging.CategoryReport)).Render(analysis)
}

func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open report: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
