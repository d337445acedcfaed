package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wdm0006/edachain/pkg/analysis"
	"github.com/wdm0006/edachain/pkg/chart"
	"github.com/wdm0006/edachain/pkg/config"
	"github.com/wdm0006/edachain/pkg/dataset"
	"github.com/wdm0006/edachain/pkg/eda"
	"github.com/wdm0006/edachain/pkg/logging"
	"github.com/wdm0006/edachain/pkg/metrics"
	"github.com/wdm0006/edachain/pkg/profile"
	"github.com/wdm0006/edachain/pkg/report"
	"github.com/wdm0006/edachain/pkg/transform/impute"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the EDA pipeline over a table",
		Long: `Run loads the input table and passes it through the enabled stages in order:
summary, impute, univariate, bivariate, correlation. The first rows of the
resulting table are printed to stdout.

Settings come from built-in defaults, a config file (edachain.yaml, .toml or
.json in the working directory or the XDG config directories), a .env file,
EDA_* environment variables and finally these flags.

Examples:
  edachain run --input titanic.csv
  edachain run -i titanic.parquet --strategy median --stages summary,impute
  edachain run -c edachain.yaml --report out/report.md --metrics out/eda.prom`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	cmd.Flags().StringP("config", "c", "", "Configuration file path")
	cmd.Flags().StringP("input", "i", "", "Input table (csv, jsonl, parquet, xlsx; .gz accepted)")
	cmd.Flags().String("target", "", "Binary target column for the bivariate stage")
	cmd.Flags().String("strategy", "", "Numeric imputation strategy: mean or median")
	cmd.Flags().StringToString("fill", nil, "Fixed fill values per column, e.g. deck=U,age=0")
	cmd.Flags().StringSlice("stages", nil, "Stages to run (default all)")
	cmd.Flags().String("plots-dir", "", "Directory for PNG plots")
	cmd.Flags().Bool("no-plots", false, "Do not write plot files")
	cmd.Flags().StringP("output", "o", "", "Write the final table (csv, jsonl or parquet)")
	cmd.Flags().String("report", "", "Write a Markdown report")
	cmd.Flags().String("metrics", "", "Write stage metrics in Prometheus text format")
	cmd.Flags().Int("preview", -1, "Rows of the final table to print")
	return cmd
}

func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runPipeline(ctx, cfg, logger, cmd.OutOrStdout()); err != nil {
		logger.Error("an error occurred during pipeline execution", "error", err)
		return err
	}
	return nil
}

// buildConfig layers flags that were set explicitly over the loaded config.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	fl := cmd.Flags()
	path, _ := fl.GetString("config")
	cfg, err := config.Read(path)
	if err != nil {
		return nil, err
	}

	str := func(name string, dst *string) {
		if fl.Changed(name) {
			*dst, _ = fl.GetString(name)
		}
	}
	str("input", &cfg.Input.Path)
	str("target", &cfg.Target)
	str("strategy", &cfg.Strategy)
	str("output", &cfg.Output)
	str("report", &cfg.Report)
	str("metrics", &cfg.Metrics)
	if fl.Changed("plots-dir") {
		cfg.Plots.Dir, _ = fl.GetString("plots-dir")
		cfg.Plots.Enabled = true
	}
	if noPlots, _ := fl.GetBool("no-plots"); noPlots {
		cfg.Plots.Enabled = false
	}
	if fl.Changed("fill") {
		fill, _ := fl.GetStringToString("fill")
		if cfg.FillValues == nil {
			cfg.FillValues = map[string]string{}
		}
		for k, v := range fill {
			cfg.FillValues[k] = v
		}
	}
	if fl.Changed("stages") {
		cfg.Stages, _ = fl.GetStringSlice("stages")
	}
	if fl.Changed("preview") {
		cfg.Preview, _ = fl.GetInt("preview")
	}
	if verbose, _ := fl.GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}
	if cfg.Logging.RunID == "" {
		cfg.Logging.RunID = uuid.NewString()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildStages returns the enabled stages in pipeline order.
func buildStages(cfg *config.Config, plotter chart.Plotter, logger *slog.Logger) ([]eda.Stage, error) {
	var stages []eda.Stage
	for _, name := range config.AllStages {
		if !cfg.HasStage(name) {
			continue
		}
		switch name {
		case "summary":
			stages = append(stages, &analysis.Summary{Logger: logger})
		case "impute":
			m, err := impute.NewMissing(cfg.Strategy, logger)
			if err != nil {
				return nil, err
			}
			stages = append(stages, impute.Constants(cfg.FillValues, logger)...)
			stages = append(stages, m)
		case "univariate":
			stages = append(stages, &analysis.Univariate{Plotter: plotter, Bins: cfg.Bins, Logger: logger})
		case "bivariate":
			stages = append(stages, &analysis.Bivariate{Target: cfg.Target, Plotter: plotter, Logger: logger})
		case "correlation":
			stages = append(stages, &analysis.Correlation{MaxCardinality: cfg.MaxCardinality, Plotter: plotter, Logger: logger})
		}
	}
	return stages, nil
}

func runPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	logger.Info("Starting EDA Pipeline ...", "input", source(cfg.Input), "stages", cfg.Stages)

	f, err := dataset.Load(ctx, cfg.Input)
	if err != nil {
		return err
	}
	logger.Info("loaded dataset", "rows", f.Rows(), "columns", f.Cols())

	var plotter chart.Plotter = &chart.Recorder{}
	var pngs *chart.PNG
	if cfg.Plots.Enabled {
		if pngs, err = chart.NewPNG(cfg.Plots.Dir); err != nil {
			return err
		}
		plotter = pngs
	}

	stages, err := buildStages(cfg, plotter, logger)
	if err != nil {
		return err
	}
	m := metrics.New()
	p := eda.NewPipeline(eda.WithLogger(logger), eda.WithObserver(m.Observe))
	for _, s := range stages {
		p.Add(s)
	}
	final, err := p.Run(ctx, f)
	if err != nil {
		return err
	}
	m.ObserveFrame(final)

	if cfg.Preview > 0 {
		dataset.WriteHead(stdout, final, cfg.Preview)
	}
	if cfg.Output != "" {
		if err := dataset.Write(cfg.Output, final); err != nil {
			return err
		}
		logger.Info("wrote table", "path", cfg.Output)
	}
	if cfg.Report != "" {
		d := report.Data{
			Source:   source(cfg.Input),
			RunID:    cfg.Logging.RunID,
			Strategy: cfg.Strategy,
			Target:   cfg.Target,
			Rows:     final.Rows(),
			Cols:     final.Cols(),
			Profiles: profile.Describe(final),
			Timings:  m.Timings(),
		}
		if pngs != nil {
			d.Plots = pngs.Files()
		}
		if err := writeReport(cfg.Report, d); err != nil {
			return err
		}
		logger.Info("wrote report", "path", cfg.Report)
	}
	if cfg.Metrics != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Metrics), 0o755); err != nil {
			return err
		}
		if err := m.WriteTextfile(cfg.Metrics); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.Info("wrote metrics", "path", cfg.Metrics)
	}

	logger.Info("EDA Pipeline Completed Successfully!")
	return nil
}

func writeReport(path string, d report.Data) (err error) {
	w, err := dataset.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return report.Markdown(w, d, filepath.Dir(path))
}

func source(in config.InputConfig) string {
	if in.Path != "" {
		return in.Path
	}
	return in.Driver + " query"
}
