// Package calculators provides concrete Calculator implementations for the estimation engine.
//
// Rate formulas turn one unit's capacity and cycle time into cubic yards per hour. The fleet
// calculators sum those rates over the active units of one kind, so the engine returns one
// excavation rate and one hauling rate for the timeline synthesizer.
package calculators
