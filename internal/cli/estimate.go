package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/config"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/fleet"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/service"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/validation"
)

// ErrInvalidInput is returned after the field problems have been printed.
var ErrInvalidInput = errors.New("input is invalid")

type EstimateOptions struct {
	GlobalOptions

	Output      string
	File        string
	Excavators  []string
	Trucks      []string
	Drop        []string
	WorkHours   string
	Length      string
	Width       string
	Depth       string
	ShowMetrics bool

	out    io.Writer
	errOut io.Writer
}

func DefaultEstimateOptions() *EstimateOptions {
	return &EstimateOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdEstimate() *cobra.Command {
	o := DefaultEstimateOptions()
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate how many working days a pond excavation takes.",
		Example: `  pondcalc estimate --length 50 --width 30 --depth 6
  pondcalc estimate --excavator 2.5:2 --truck 12:15 --truck 12:15 --work-hours 10
  pondcalc estimate -f project.yaml -o json
  pondcalc estimate -f project.yaml --drop spare-truck`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *EstimateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.StringVarP(&o.File, "file", "f", o.File, "YAML or JSON project file with project, excavators and trucks")
	fs.StringArrayVar(&o.Excavators, "excavator", o.Excavators, "Excavator as BUCKET_YD3:CYCLE_MIN[:off]. Repeat for a fleet.")
	fs.StringArrayVar(&o.Trucks, "truck", o.Trucks, "Truck as CAPACITY_YD3:ROUND_TRIP_MIN[:off]. Repeat for a fleet.")
	fs.StringArrayVar(&o.Drop, "drop", o.Drop, "Id of an excavator or truck to leave out of the project file's fleet. The last unit of a kind is always kept.")
	fs.StringVar(&o.WorkHours, "work-hours", o.WorkHours, "Working hours per day")
	fs.StringVar(&o.Length, "length", o.Length, "Pond length in feet")
	fs.StringVar(&o.Width, "width", o.Width, "Pond width in feet")
	fs.StringVar(&o.Depth, "depth", o.Depth, "Pond depth in feet")
	fs.BoolVar(&o.ShowMetrics, "show-metrics", o.ShowMetrics, "Print calculator metrics to stderr when done")
}

func (o *EstimateOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	o.out = cmd.OutOrStdout()
	o.errOut = cmd.ErrOrStderr()
	return nil
}

func (o *EstimateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := validateOutput(o.Output); err != nil {
		return err
	}
	if o.File != "" && (len(o.Excavators) > 0 || len(o.Trucks) > 0) {
		return fmt.Errorf("--file cannot be combined with --excavator or --truck")
	}
	for _, spec := range append(append([]string{}, o.Excavators...), o.Trucks...) {
		if _, err := parseUnitSpec(spec); err != nil {
			return err
		}
	}
	return nil
}

func (o *EstimateOptions) Run(ctx context.Context, args []string) error {
	req, err := o.request()
	if err != nil {
		return err
	}

	out, err := o.Service().EstimateFleet(ctx, req)
	if o.ShowMetrics {
		defer func() { _ = dumpMetrics(o.errOut) }()
	}
	if err != nil {
		return reportFailure(o.errOut, err)
	}

	if o.Output != "" {
		return printStructured(o.out, out, o.Output)
	}
	printOutcome(o.out, out)
	return nil
}

func (o *EstimateOptions) request() (service.FleetRequest, error) {
	settings := o.Settings()
	var req service.FleetRequest

	if o.File != "" {
		loaded, err := readRequest(o.File)
		if err != nil {
			return req, err
		}
		req = *loaded
	}

	if req.Project == (validation.RawProject{}) {
		req.Project = fleet.DefaultProject(settings)
	}
	for dst, flag := range map[*string]string{
		&req.Project.WorkHours:  o.WorkHours,
		&req.Project.PondLength: o.Length,
		&req.Project.PondWidth:  o.Width,
		&req.Project.PondDepth:  o.Depth,
	} {
		if flag != "" {
			*dst = flag
		}
	}

	var err error
	if len(req.Excavators) == 0 {
		if req.Excavators, err = excavatorsFromSpecs(o.Excavators, settings); err != nil {
			return req, err
		}
	}
	if len(req.Trucks) == 0 {
		if req.Trucks, err = trucksFromSpecs(o.Trucks, settings); err != nil {
			return req, err
		}
	}
	for _, id := range o.Drop {
		req.Excavators = fleet.Remove(req.Excavators, id)
		req.Trucks = fleet.Remove(req.Trucks, id)
	}
	return req, nil
}

func excavatorsFromSpecs(specs []string, settings config.Settings) ([]validation.RawExcavator, error) {
	if len(specs) == 0 {
		return fleet.DefaultExcavators(settings), nil
	}

	var units []validation.RawExcavator
	for _, arg := range specs {
		spec, err := parseUnitSpec(arg)
		if err != nil {
			return nil, err
		}
		if units, err = fleet.AddExcavator(units, settings); err != nil {
			return nil, err
		}
		unit := units[len(units)-1]
		unit.BucketCapacity, unit.CycleTime = spec.capacity, spec.minutes
		if units, err = fleet.Update(units, unit, estimation.KindExcavator); err != nil {
			return nil, err
		}
		if units, err = fleet.SetActive(units, unit.ID, spec.active, estimation.KindExcavator); err != nil {
			return nil, err
		}
	}
	return units, nil
}

func trucksFromSpecs(specs []string, settings config.Settings) ([]validation.RawTruck, error) {
	if len(specs) == 0 {
		return fleet.DefaultTrucks(settings), nil
	}

	var units []validation.RawTruck
	for _, arg := range specs {
		spec, err := parseUnitSpec(arg)
		if err != nil {
			return nil, err
		}
		if units, err = fleet.AddTruck(units, settings); err != nil {
			return nil, err
		}
		unit := units[len(units)-1]
		unit.Capacity, unit.RoundTripTime = spec.capacity, spec.minutes
		if units, err = fleet.Update(units, unit, estimation.KindTruck); err != nil {
			return nil, err
		}
		if units, err = fleet.SetActive(units, unit.ID, spec.active, estimation.KindTruck); err != nil {
			return nil, err
		}
	}
	return units, nil
}

func readRequest(path string) (*service.FleetRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file %q: %w", path, err)
	}
	var req service.FleetRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decoding project file %q: %w", path, err)
	}
	return &req, nil
}

// reportFailure prints field problems as a table and returns ErrInvalidInput,
// or returns calculation and fleet errors unchanged.
func reportFailure(w io.Writer, err error) error {
	if issues := validation.Issues(err); len(issues) > 0 {
		printIssues(w, issues)
		return ErrInvalidInput
	}
	if service.IsCalculationUnavailable(err) {
		return fmt.Errorf("calculation unavailable: %w", err)
	}
	return err
}
