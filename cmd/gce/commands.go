package main

import (
	"fmt"
	"strings"

	"github.com/drakos74/go-calibration/calibration"
	"github.com/drakos74/go-calibration/internal/config"
	"github.com/drakos74/go-calibration/internal/eval"
	"github.com/drakos74/go-calibration/internal/metrics"
	"github.com/drakos74/go-calibration/internal/storage"
	jsonstorage "github.com/drakos74/go-calibration/internal/storage/file/json"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type evaluateOptions struct {
	config      string
	out         string
	metricsFile string
	parallelism int
	bins        bool
}

func newRootCmd() *cobra.Command {
	var level string
	rootCmd := &cobra.Command{
		Use:           "gce",
		Short:         "Calibration error of classifier predictions",
		Long:          `Computes the generalized calibration error (ECE, RMSCE, SCE, ACE, TACE and custom variants) of predicted class probabilities against their true labels.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := zerolog.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("invalid log level '%s': %w", level, err)
			}
			zerolog.SetGlobalLevel(l)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&level, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(newEvaluateCmd(), newPresetsCmd())
	return rootCmd
}

func newEvaluateCmd() *cobra.Command {
	opts := evaluateOptions{}
	cmd := &cobra.Command{
		Use:   "evaluate [dataset.json ...]",
		Short: "Evaluates the calibration of one or more prediction datasets",
		Long:  `Each dataset is a json file with 'probs' (rows of class probabilities, or positive class probabilities) and 'labels'. Without a config all presets are evaluated.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "Evaluation config yaml")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Directory to store the json reports in")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "File to write prometheus metrics to")
	cmd.Flags().IntVarP(&opts.parallelism, "parallelism", "p", 1, "Number of datasets evaluated at the same time")
	cmd.Flags().BoolVar(&opts.bins, "bins", false, "Keep the per-bin statistics in the reports")
	return cmd
}

func runEvaluate(cmd *cobra.Command, paths []string, opts evaluateOptions) error {
	cfg := config.Default()
	if opts.config != "" {
		c, err := config.Load(opts.config)
		if err != nil {
			return err
		}
		cfg = c
	}

	m := metrics.New()
	runner := eval.NewRunner(cfg).
		WithMetrics(m).
		WithParallelism(opts.parallelism).
		WithBins(opts.bins)
	if opts.out != "" {
		runner = runner.WithStorage(jsonstorage.NewJsonBlob(opts.out, storage.ReportDir, true))
	}

	reports, err := runner.Run(cmd.Context(), paths...)
	if err != nil {
		log.Error().Err(err).Strs("datasets", paths).Msg("evaluation failed")
		return err
	}

	failed := 0
	for _, rep := range reports {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d examples, %d classes) %s\n", rep.Dataset, rep.Examples, rep.Classes, rep.ID)
		rep.Render(cmd.OutOrStdout())
		failed += rep.Failed()
	}

	if opts.metricsFile != "" {
		if err := m.WriteTextfile(opts.metricsFile); err != nil {
			return err
		}
		log.Info().Str("path", opts.metricsFile).Msg("wrote metrics")
	}

	if failed > 0 {
		return fmt.Errorf("%d evaluations failed", failed)
	}
	return nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Lists the preset metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"preset", "config"})
			for _, name := range calibration.Presets() {
				cfg, err := calibration.Preset(name)
				if err != nil {
					return err
				}
				table.Append([]string{strings.ToUpper(name), cfg.String()})
			}
			table.Render()
			return nil
		},
	}
}
