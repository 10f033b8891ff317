package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"govos/internal/platform/config"
	"govos/internal/platform/privacy"
	"govos/internal/scenario"
	"govos/internal/scenario/provider"
)

func newScenarioCmd() *cobra.Command {
	var (
		day     int
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Generate one scenario with the configured provider",
		Long: `Generates the scenario for a day using SCENARIO_PROVIDER (and the
optional GOVOS_CONFIG file) and prints it as YAML. The back part of the
national id is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			model, err := provider.New(cmd.Context(), cfg.Scenario)
			if err != nil {
				return err
			}

			opts := []scenario.Option{scenario.WithTimeout(cfg.Scenario.Timeout)}
			if cfg.Scenario.Seed != 0 {
				opts = append(opts, scenario.WithSeed(uint64(cfg.Scenario.Seed)))
			}
			if verbose {
				opts = append(opts, scenario.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))))
			}
			sc, err := scenario.NewDirector(model, opts...).Generate(cmd.Context(), day)
			if err != nil {
				return err
			}

			if sc.Profile.RRNBack != "" {
				sc.Profile.RRNBack = privacy.MaskedBack
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(sc)
		},
	}
	cmd.Flags().IntVar(&day, "day", 1, "workday to generate for")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log model calls to stderr")
	return cmd
}
