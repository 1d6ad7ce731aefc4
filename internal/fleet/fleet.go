// Package fleet edits the equipment lists of a project.
//
// Every operation returns a new slice and leaves its input untouched, so callers can keep
// the previous list around. A fleet never becomes empty through Remove.
package fleet

import (
	"slices"
)

// Unit is anything that can live in a fleet list: raw form entries and validated equipment alike.
type Unit[E any] interface {
	Identity() string
	Active() bool
	WithActive(active bool) E
}

// Add appends unit unless the fleet already holds limit entries.
func Add[E Unit[E]](units []E, unit E, kind string, limit int) ([]E, error) {
	if len(units) >= limit {
		return nil, NewErrFleetFull(kind, limit)
	}
	out := make([]E, 0, len(units)+1)
	out = append(out, units...)
	return append(out, unit), nil
}

// Remove drops the first entry with the given id. Removing the last entry, or an unknown id, is a no-op.
func Remove[E Unit[E]](units []E, id string) []E {
	i := index(units, id)
	if len(units) <= 1 || i < 0 {
		return slices.Clone(units)
	}
	return slices.Delete(slices.Clone(units), i, i+1)
}

// SetActive toggles whether a unit takes part in fleet aggregation.
func SetActive[E Unit[E]](units []E, id string, active bool, kind string) ([]E, error) {
	i := index(units, id)
	if i < 0 {
		return nil, NewErrUnitNotFound(kind, id)
	}
	out := slices.Clone(units)
	out[i] = out[i].WithActive(active)
	return out, nil
}

// Update replaces the entry whose id matches unit.
func Update[E Unit[E]](units []E, unit E, kind string) ([]E, error) {
	i := index(units, unit.Identity())
	if i < 0 {
		return nil, NewErrUnitNotFound(kind, unit.Identity())
	}
	out := slices.Clone(units)
	out[i] = unit
	return out, nil
}

// ActiveCount is the number of units that contribute to the fleet rate.
func ActiveCount[E Unit[E]](units []E) int {
	n := 0
	for _, u := range units {
		if u.Active() {
			n++
		}
	}
	return n
}

func index[E Unit[E]](units []E, id string) int {
	return slices.IndexFunc(units, func(u E) bool {
		return u.Identity() == id
	})
}
