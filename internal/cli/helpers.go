package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/common/expfmt"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation/calculators"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/service"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/validation"
	"github.com/Meshed/PondDiggingCalculator-sub003/pkg/metrics"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"

	inactiveSuffix = "off"
)

var (
	legalOutputTypes = []string{jsonFormat, yamlFormat}
)

func validateOutput(output string) error {
	if len(output) > 0 && !funk.Contains(legalOutputTypes, output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

// unitSpec is "capacity:minutes" with an optional ":off" marking the unit inactive.
type unitSpec struct {
	capacity string
	minutes  string
	active   bool
}

func parseUnitSpec(arg string) (unitSpec, error) {
	parts := strings.Split(arg, ":")
	switch {
	case len(parts) == 2:
		return unitSpec{capacity: parts[0], minutes: parts[1], active: true}, nil
	case len(parts) == 3 && strings.EqualFold(strings.TrimSpace(parts[2]), inactiveSuffix):
		return unitSpec{capacity: parts[0], minutes: parts[1], active: false}, nil
	default:
		return unitSpec{}, fmt.Errorf("invalid unit %q: expected CAPACITY:MINUTES[:off]", arg)
	}
}

func printStructured(w io.Writer, v any, output string) error {
	switch output {
	case jsonFormat:
		marshalled, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling output: %w", err)
		}
		fmt.Fprintf(w, "%s\n", string(marshalled))
	case yamlFormat:
		marshalled, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshalling output: %w", err)
		}
		fmt.Fprintf(w, "%s\n", string(marshalled))
	}
	return nil
}

func printOutcome(w io.Writer, out *service.Outcome) {
	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	r := out.Result
	fmt.Fprintf(tw, "Timeline\t%d working day(s)\n", r.TimelineInDays)
	fmt.Fprintf(tw, "Total hours\t%.2f\n", r.TotalHours)
	fmt.Fprintf(tw, "Pond volume\t%.2f yd3\n", out.PondVolume)
	for _, name := range []string{calculators.ExcavationFleetName, calculators.HaulingFleetName} {
		if est, ok := out.Breakdown[name]; ok {
			fmt.Fprintf(tw, "%s\t%.2f yd3/h\t%s\n", name, est.Rate, est.Reason)
		}
	}
	fmt.Fprintf(tw, "Bottleneck\t%s\n", r.Bottleneck)
	fmt.Fprintf(tw, "Confidence\t%s\n", r.Confidence)
	_ = tw.Flush()

	printList(w, "Assumptions", r.Assumptions)
	printList(w, "Warnings", r.Warnings)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func printIssues(w io.Writer, issues []validation.Issue) {
	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	fmt.Fprintln(tw, "ENTRY\tFIELD\tPROBLEM\tHOW TO FIX")
	for _, issue := range issues {
		entry := "-"
		if issue.Entry > 0 {
			entry = fmt.Sprintf("%d", issue.Entry)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", entry, issue.Field, issue.Message, issue.Guidance)
	}
	_ = tw.Flush()
}

func dumpMetrics(w io.Writer) error {
	families, err := metrics.Registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}
	return nil
}
