// Package estimation defines a pluggable production-rate calculator and the timeline synthesis built on it.
//
// Each fleet's throughput is produced by one specific Calculator, results are aggregated by the Engine,
// and Synthesize turns the excavation and hauling rates into a CalculationResult.
package estimation
