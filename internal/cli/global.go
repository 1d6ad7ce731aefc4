package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/config"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/service"
)

type GlobalOptions struct {
	RulesFile  string
	Efficiency float64
	CacheSize  int

	settings *config.Settings
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		CacheSize: -1,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.RulesFile, "rules", "r", o.RulesFile, "YAML or JSON file overriding validation rules, fleet limits and defaults (env: POND_CALC_RULES_FILE)")
	fs.Float64Var(&o.Efficiency, "efficiency", o.Efficiency, "Efficiency factor in (0, 1] applied to every equipment rate (env: POND_CALC_EFFICIENCY)")
}

// Complete fills unset options from the environment and loads the settings file.
func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}
	if o.RulesFile == "" {
		o.RulesFile = cfg.Service.RulesFile
	}
	if o.Efficiency == 0 {
		o.Efficiency = cfg.Estimation.Efficiency
	}
	if o.CacheSize < 0 {
		o.CacheSize = cfg.Estimation.CacheSize
	}

	settings, err := config.LoadSettings(o.RulesFile)
	if err != nil {
		return err
	}
	o.settings = settings
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.Efficiency <= 0 || o.Efficiency > 1 {
		return fmt.Errorf("efficiency must be in (0, 1], got %v", o.Efficiency)
	}
	return nil
}

// Settings returns the settings loaded by Complete.
func (o *GlobalOptions) Settings() config.Settings {
	if o.settings == nil {
		return config.DefaultSettings()
	}
	return *o.settings
}

func (o *GlobalOptions) Service() *service.EstimationService {
	return service.NewEstimationService(o.Settings(),
		service.WithEfficiency(o.Efficiency),
		service.WithCacheSize(o.CacheSize),
	)
}
