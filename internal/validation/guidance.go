package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// fieldDomain describes what a field measures so error messages can speak the user's language.
type fieldDomain struct {
	subject string
	unit    string
	typical string
}

var (
	excavatorCapacityDomain = fieldDomain{
		subject: "Excavator bucket capacity",
		unit:    "cubic yards",
		typical: "Most excavator buckets hold between 0.5 and 15 cubic yards.",
	}
	cycleTimeDomain = fieldDomain{
		subject: "Excavator cycle time",
		unit:    "minutes",
		typical: "A full excavator dig-swing-dump cycle usually takes 0.5 to 10 minutes.",
	}
	truckCapacityDomain = fieldDomain{
		subject: "Truck capacity",
		unit:    "cubic yards",
		typical: "Dump trucks on pond sites typically carry 5 to 30 cubic yards per load.",
	}
	roundTripDomain = fieldDomain{
		subject: "Truck round-trip time",
		unit:    "minutes",
		typical: "Include loading, hauling, dumping and the return drive; 5 to 60 minutes is common.",
	}
	workHoursDomain = fieldDomain{
		subject: "Work day length",
		unit:    "hours",
		typical: "A work day cannot exceed 24 hours; most crews work 8 to 10.",
	}
	pondDomain = fieldDomain{
		subject: "Pond dimension",
		unit:    "feet",
		typical: "Measure the pond length, width and depth in feet.",
	}
	genericDomain = fieldDomain{
		subject: "Value",
	}
)

// domainFor infers the field domain from its label.
func domainFor(label string) fieldDomain {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "cycle"):
		return cycleTimeDomain
	case strings.Contains(l, "round") || strings.Contains(l, "trip"):
		return roundTripDomain
	case strings.Contains(l, "truck"):
		return truckCapacityDomain
	case strings.Contains(l, "excavator") || strings.Contains(l, "bucket"):
		return excavatorCapacityDomain
	case strings.Contains(l, "hour"):
		return workHoursDomain
	case strings.Contains(l, "pond") || strings.Contains(l, "length") ||
		strings.Contains(l, "width") || strings.Contains(l, "depth"):
		return pondDomain
	default:
		return genericDomain
	}
}

func tooLowGuidance(label string, min float64) string {
	d := domainFor(label)
	return strings.TrimSpace(fmt.Sprintf("%s must be at least %s. %s", d.subject, withUnit(min, d.unit), d.typical))
}

func tooHighGuidance(label string, max float64) string {
	d := domainFor(label)
	return strings.TrimSpace(fmt.Sprintf("%s cannot exceed %s. %s", d.subject, withUnit(max, d.unit), d.typical))
}

func withUnit(v float64, unit string) string {
	if unit == "" {
		return formatNumber(v)
	}
	return formatNumber(v) + " " + unit
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
