package fleet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meshed/PondDiggingCalculator-sub003/internal/config"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/estimation"
	"github.com/Meshed/PondDiggingCalculator-sub003/internal/validation"
)

func TestDefaults(t *testing.T) {
	t.Parallel()
	settings := config.DefaultSettings()

	excavators := DefaultExcavators(settings)
	require.Len(t, excavators, 1)
	assert.Equal(t, "Excavator 1", excavators[0].Name)
	assert.Equal(t, "2.5", excavators[0].BucketCapacity)
	assert.Equal(t, "2", excavators[0].CycleTime)
	assert.True(t, excavators[0].IsActive)
	assert.NotEmpty(t, excavators[0].ID)

	trucks := DefaultTrucks(settings)
	require.Len(t, trucks, 1)
	assert.Equal(t, "Truck 1", trucks[0].Name)
	assert.Equal(t, "12", trucks[0].Capacity)
	assert.Equal(t, "15", trucks[0].RoundTripTime)

	project := DefaultProject(settings)
	assert.Equal(t, validation.RawProject{WorkHours: "8", PondLength: "50", PondWidth: "30", PondDepth: "6"}, project)

	// the defaults must pass the default validation rules
	_, err := validation.ValidateExcavators(settings.Validation, excavators)
	assert.NoError(t, err)
	_, err = validation.ValidateTrucks(settings.Validation, trucks)
	assert.NoError(t, err)
	_, err = validation.ValidateProject(settings.Validation, project)
	assert.NoError(t, err)
}

func TestAddExcavator_HonorsLimit(t *testing.T) {
	t.Parallel()
	settings := config.DefaultSettings()
	settings.FleetLimits.MaxExcavators = 3

	units := DefaultExcavators(settings)
	var err error
	for i := 0; i < 2; i++ {
		units, err = AddExcavator(units, settings)
		require.NoError(t, err)
	}
	require.Len(t, units, 3)
	assert.Equal(t, "Excavator 3", units[2].Name)
	assert.NotEqual(t, units[1].ID, units[2].ID)

	full, err := AddExcavator(units, settings)
	var fullErr *ErrFleetFull
	require.True(t, errors.As(err, &fullErr))
	assert.Contains(t, err.Error(), "limited to 3")
	assert.Nil(t, full)
	assert.Len(t, units, 3)
}

func TestAddTruck_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	settings := config.DefaultSettings()

	original := DefaultTrucks(settings)
	grown, err := AddTruck(original, settings)
	require.NoError(t, err)
	assert.Len(t, original, 1)
	assert.Len(t, grown, 2)
	assert.Equal(t, "Truck 2", grown[1].Name)
}

func TestRemove(t *testing.T) {
	t.Parallel()
	units := []estimation.Truck{{ID: "a", IsActive: true}, {ID: "b", IsActive: true}, {ID: "c"}}

	out := Remove(units, "b")
	assert.Equal(t, []estimation.Truck{{ID: "a", IsActive: true}, {ID: "c"}}, out)
	assert.Len(t, units, 3)

	assert.Equal(t, units, Remove(units, "missing"))

	last := []estimation.Truck{{ID: "only"}}
	assert.Equal(t, last, Remove(last, "only"), "the last unit of a kind is never removed")
}

func TestRemove_SharedIDDropsOneEntry(t *testing.T) {
	t.Parallel()
	// ids are optional in project files, so several entries may share a blank id
	units := []validation.RawExcavator{{Name: "first"}, {Name: "second"}}

	out := Remove(units, "")
	require.Len(t, out, 1)
	assert.Equal(t, "second", out[0].Name)

	assert.Len(t, Remove(out, ""), 1)
}

func TestSetActive(t *testing.T) {
	t.Parallel()
	units := []validation.RawExcavator{{ID: "a", IsActive: true}, {ID: "b", IsActive: true}}

	out, err := SetActive(units, "b", false, estimation.KindExcavator)
	require.NoError(t, err)
	assert.False(t, out[1].IsActive)
	assert.True(t, units[1].IsActive)
	assert.Equal(t, 1, ActiveCount(out))
	assert.Len(t, out, 2, "deactivation keeps the unit in the list")

	_, err = SetActive(units, "zzz", true, estimation.KindExcavator)
	var notFound *ErrUnitNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "excavator zzz")
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	units := []validation.RawTruck{{ID: "a", Capacity: "12"}, {ID: "b", Capacity: "12"}}

	out, err := Update(units, validation.RawTruck{ID: "b", Capacity: "20"}, estimation.KindTruck)
	require.NoError(t, err)
	assert.Equal(t, "20", out[1].Capacity)
	assert.Equal(t, "12", units[1].Capacity)

	_, err = Update(units, validation.RawTruck{ID: "c"}, estimation.KindTruck)
	var notFound *ErrUnitNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestActiveCount(t *testing.T) {
	t.Parallel()
	assert.Zero(t, ActiveCount[estimation.Excavator](nil))
	assert.Equal(t, 2, ActiveCount([]estimation.Excavator{{IsActive: true}, {}, {IsActive: true}}))
}
